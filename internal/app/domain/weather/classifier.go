package weather

import (
	"strings"
	"time"

	"github.com/FACorreiaa/go-wander/internal/app/models"
)

// Classify maps a raw reading onto the discrete categories used for
// preference matching. Pure function; every input lands in a defined band.
// Preference creation and suggestion generation must both go through here so
// stored rows and live classifications never drift apart.
func Classify(reading models.WeatherReading) models.WeatherCategory {
	return models.WeatherCategory{
		Temperature: temperatureBand(reading.Temp),
		Time:        timeBand(localHour(reading.Dt, reading.Timezone)),
		Condition:   strings.ToLower(reading.Condition),
	}
}

func temperatureBand(temp float64) models.TemperatureBand {
	switch {
	case temp <= 10:
		return models.TempCold
	case temp >= 25:
		return models.TempHot
	default:
		return models.TempMedium
	}
}

func timeBand(hour int) models.TimeBand {
	switch {
	case hour >= 5 && hour < 12:
		return models.TimeMorning
	case hour >= 12 && hour < 17:
		return models.TimeNoon
	case hour >= 17 && hour < 21:
		return models.TimeEvening
	case hour >= 21 || hour < 1:
		return models.TimeNight
	default:
		return models.TimeAfterMidnight
	}
}

// localHour shifts the observation timestamp by the provider's timezone
// offset and reads the hour in UTC, giving the hour local to the reading.
func localHour(dt int64, timezoneOffset int) int {
	return time.Unix(dt+int64(timezoneOffset), 0).UTC().Hour()
}

// TemperatureLabel is the narrative temperature wording used only inside
// prompt text. Its thresholds intentionally differ from temperatureBand;
// the two classifications are maintained separately.
func TemperatureLabel(temp float64) string {
	switch {
	case temp < 10:
		return "Cold"
	case temp < 20:
		return "Cool"
	case temp < 30:
		return "Warm"
	default:
		return "Hot"
	}
}

// TimeOfDayLabel is the narrative time-of-day wording used only inside
// prompt text.
func TimeOfDayLabel(dt int64, timezoneOffset int) string {
	hour := localHour(dt, timezoneOffset)
	switch {
	case hour < 5:
		return "Night"
	case hour < 12:
		return "Morning"
	case hour < 17:
		return "Afternoon"
	default:
		return "Evening"
	}
}
