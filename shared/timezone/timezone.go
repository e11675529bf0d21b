package timezone

import (
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"studio/config"

	"github.com/rs/zerolog/log"
)

var location = load(config.Get().App.Timezone)

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, using UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

func GetLocation() *time.Location {
	return location
}

func Now() time.Time {
	return time.Now().In(location)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location)
}

// Parse reads value as a wall clock in the application timezone unless it carries an offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay is local midnight of the day t falls on.
func StartOfDay(t time.Time) time.Time {
	return At(t, 0, 0, 0)
}

// At is the instant the local wall clock reads hour:minute:second on the day of date.
func At(date time.Time, hour, minute, second int) time.Time {
	year, month, day := ToAppTime(date).Date()

	return time.Date(year, month, day, hour, minute, second, 0, location)
}
