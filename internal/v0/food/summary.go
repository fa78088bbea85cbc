package food

import (
	"regexp"
	"strings"

	"mensa/internal/locale"
	"mensa/internal/openmensa"
)

// linePattern selects the categories that are serving lines
var linePattern = regexp.MustCompile(`(?i)Linie|L6`)

type mealLine struct {
	category string
	names    []string
}

// BuildSummary renders the serving lines of a listing as one sentence per line, e.g.
// "Linie 2 offers Currywurst mit Pommes and Kartoffelsuppe mit Brot. ".
// Returns "" when no line has a qualifying meal.
func BuildSummary(meals []openmensa.Meal, lang locale.Code) string {
	var lines []*mealLine
	byCategory := make(map[string]*mealLine)

	for _, meal := range meals {
		if !linePattern.MatchString(meal.Category) {
			continue
		}
		if !isMealName(meal.Name) {
			continue
		}

		line, ok := byCategory[meal.Category]
		if !ok {
			line = &mealLine{category: meal.Category}
			byCategory[meal.Category] = line
			lines = append(lines, line)
		}
		line.names = append(line.names, stripAnnotations(meal.Name))
	}

	offers := locale.T(lang, locale.KeyOffers)
	and := " " + locale.T(lang, locale.KeyAnd) + " "

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line.category)
		sb.WriteString(" ")
		sb.WriteString(offers)
		sb.WriteString(" ")
		sb.WriteString(strings.Join(line.names, and))
		sb.WriteString(". ")
	}
	return sb.String()
}

// isMealName drops side dishes and labels: a meal has more than two words and starts with A-Z
func isMealName(name string) bool {
	if len(strings.Fields(name)) <= 2 {
		return false
	}
	return name[0] >= 'A' && name[0] <= 'Z'
}

// stripAnnotations cuts allergen and additive markers like "[1,2,a]"
func stripAnnotations(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
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
