package dates

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mensa/internal/locale"
)

// 2024-01-01 is a Monday
func monday() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	wednesday := day(2024, 1, 3)

	tests := []struct {
		name  string
		token string
		lang  locale.Code
		today time.Time
		want  time.Time
	}{
		{name: "tomorrow", token: "tomorrow", lang: locale.English, today: wednesday, want: day(2024, 1, 4)},
		{name: "morgen", token: "morgen", lang: locale.German, today: wednesday, want: day(2024, 1, 4)},
		{name: "tomorrow across month end", token: "tomorrow", lang: locale.English, today: day(2024, 1, 31), want: day(2024, 2, 1)},
		{name: "case insensitive", token: "FrEiTaG", lang: locale.German, today: wednesday, want: day(2024, 1, 5)},
		{name: "later this week", token: "friday", lang: locale.English, today: wednesday, want: day(2024, 1, 5)},
		{name: "earlier weekday wraps", token: "monday", lang: locale.English, today: wednesday, want: day(2024, 1, 8)},
		{name: "same weekday is a week later", token: "mittwoch", lang: locale.German, today: wednesday, want: day(2024, 1, 10)},
		{name: "sunday", token: "sonntag", lang: locale.German, today: wednesday, want: day(2024, 1, 7)},
		{name: "unknown token", token: "someday", lang: locale.English, today: wednesday, want: wednesday},
		{name: "empty token", token: "", lang: locale.German, today: wednesday, want: wednesday},
		{name: "token of the other language", token: "montag", lang: locale.English, today: wednesday, want: wednesday},
		{name: "unsupported language", token: "monday", lang: locale.Code("fr"), today: wednesday, want: wednesday},
		{name: "time of day is dropped", token: "", lang: locale.English, today: time.Date(2024, 1, 3, 23, 59, 0, 0, time.UTC), want: wednesday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.token, tt.lang, tt.today))
		})
	}
}

func TestResolveWeekdayNeverReturnsToday(t *testing.T) {
	for _, lang := range locale.Supported() {
		for _, token := range Tokens(lang) {
			for i := 0; i < 7; i++ {
				today := monday().AddDate(0, 0, i)
				got := Resolve(token, lang, today)

				diff := int(got.Sub(today).Hours() / 24)
				require.GreaterOrEqualf(t, diff, 1, "%s/%s on %s", lang, token, today.Weekday())
				require.LessOrEqualf(t, diff, 7, "%s/%s on %s", lang, token, today.Weekday())
			}
		}
	}
}

func TestResolveUnknownTokenIsToday(t *testing.T) {
	for _, lang := range append(locale.Supported(), locale.Code("xx")) {
		for _, token := range []string{"", "yesterday", "gestern", "next week", "2024-01-05"} {
			for i := 0; i < 7; i++ {
				today := monday().AddDate(0, 0, i)
				assert.Equal(t, today, Resolve(token, lang, today))
			}
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	today := day(2024, 2, 29)
	first := Resolve("thursday", locale.English, today)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve("thursday", locale.English, today))
	}
}

func TestToday(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Berlin
	now := time.Date(2024, 1, 3, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, day(2024, 1, 4), Today(now, berlin))
	assert.Equal(t, day(2024, 1, 3), Today(now, nil))
}

func TestIsWeekday(t *testing.T) {
	for i := 0; i < 7; i++ {
		d := monday().AddDate(0, 0, i)
		assert.Equal(t, i < 5, IsWeekday(d), d.Weekday().String())
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2024-03-09", Format(day(2024, 3, 9)))
}
