// Package dates turns relative day expressions ("tomorrow", "montag") into calendar dates.
//
// A resolved date is a time.Time at midnight UTC carrying only year, month and day.
// The canteen's timezone is only used to decide which calendar day "today" is.
package dates

import (
	"strings"
	"time"

	"mensa/internal/locale"
)

// Layout is the ISO date format used for cache keys and upstream URLs
const Layout = "2006-01-02"

type rule func(today time.Time) time.Time

var vocabulary = map[locale.Code]map[string]rule{
	locale.English: {
		"tomorrow":  addDays(1),
		"monday":    next(time.Monday),
		"tuesday":   next(time.Tuesday),
		"wednesday": next(time.Wednesday),
		"thursday":  next(time.Thursday),
		"friday":    next(time.Friday),
		"saturday":  next(time.Saturday),
		"sunday":    next(time.Sunday),
	},
	locale.German: {
		"morgen":     addDays(1),
		"montag":     next(time.Monday),
		"dienstag":   next(time.Tuesday),
		"mittwoch":   next(time.Wednesday),
		"donnerstag": next(time.Thursday),
		"freitag":    next(time.Friday),
		"samstag":    next(time.Saturday),
		"sonntag":    next(time.Sunday),
	},
}

// Resolve maps a day token in the given language to a date relative to today.
// Unknown tokens, including the empty string, resolve to today.
func Resolve(token string, lang locale.Code, today time.Time) time.Time {
	today = Date(today)
	if r, ok := vocabulary[lang][strings.ToLower(token)]; ok {
		return r(today)
	}
	return today
}

func addDays(n int) rule {
	return func(today time.Time) time.Time {
		return today.AddDate(0, 0, n)
	}
}

// next never returns today: asking for "monday" on a monday means the one a week later
func next(wd time.Weekday) rule {
	return func(today time.Time) time.Time {
		delta := (int(wd) - int(today.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return today.AddDate(0, 0, delta)
	}
}

// Date drops the time of day, keeping the calendar date t shows in its own location
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now as seen in loc
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Date(now.In(loc))
}

// IsWeekday reports whether d falls on Monday to Friday
func IsWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Format renders d as YYYY-MM-DD
func Format(d time.Time) string {
	return d.Format(Layout)
}

// Tokens returns the recognised day tokens of a language
func Tokens(lang locale.Code) []string {
	out := make([]string, 0, len(vocabulary[lang]))
	for token := range vocabulary[lang] {
		out = append(out, token)
	}
	return out
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
