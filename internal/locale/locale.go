package locale

import "strings"

// Code is one of the languages the assistant can answer in
type Code string

const (
	English Code = "en"
	German  Code = "de"

	Default = English
)

// Keys of the fixed response phrases
const (
	KeyOffers        = "offers"
	KeyAnd           = "and"
	KeyNoDay         = "noday"
	KeyClosedWeekend = "closed_weekend"
	KeyFailed        = "failed"
)

var strs = map[Code]map[string]string{
	English: {
		KeyOffers:        "offers",
		KeyAnd:           "and",
		KeyNoDay:         "Sorry, you need to tell me a specific day.",
		KeyClosedWeekend: "The canteen is closed on weekends.",
		KeyFailed:        "Sorry, I couldn't get the meals for that day. May the canteen be closed on that day?",
	},
	German: {
		KeyOffers:        "bietet",
		KeyAnd:           "und",
		KeyNoDay:         "Bitte nenne mir einen Tag.",
		KeyClosedWeekend: "Die Mensa ist am Wochenende geschlossen.",
		KeyFailed:        "Sorry, ich konnte den Speiseplan nicht abrufen. Hat die Mensa an diesem Tag vielleicht geschlossen?",
	},
}

// Resolve maps an arbitrary locale string (e.g. "de-DE", "en-us", "") to a supported language.
// Anything containing "de" in any case is German, everything else English.
func Resolve(loc string) Code {
	if strings.Contains(strings.ToLower(loc), string(German)) {
		return German
	}
	return English
}

// T returns the phrase for key in the given language.
// Falls back to English, then to the key itself.
func T(code Code, key string) string {
	if m, ok := strs[code]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := strs[Default][key]; ok {
		return v
	}
	return key
}

// Supported lists the languages with a strings table
func Supported() []Code {
	return []Code{English, German}
}

//This project is the webhook backend of the OpenSourceDUTH canteen assistant. It answers "what is served on day D" from open canteen data.
//Mensa Webhook Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
