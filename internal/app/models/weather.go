package models

// TemperatureBand buckets a metric temperature for preference matching.
type TemperatureBand string

const (
	TempCold   TemperatureBand = "cold"
	TempMedium TemperatureBand = "medium"
	TempHot    TemperatureBand = "hot"
)

// TimeBand buckets the local hour of day for preference matching.
type TimeBand string

const (
	TimeMorning       TimeBand = "morning"
	TimeNoon          TimeBand = "noon"
	TimeEvening       TimeBand = "evening"
	TimeNight         TimeBand = "night"
	TimeAfterMidnight TimeBand = "after midnight"
)

// WeatherReading is a normalized current-weather observation as returned by
// the weather provider. It is never mutated after fetch.
type WeatherReading struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Dt          int64   `json:"dt"`
	Timezone    int     `json:"timezone"`
}

// WeatherCategory is the discrete classification derived from a reading.
// It drives preference matching and is never persisted on its own.
type WeatherCategory struct {
	Temperature TemperatureBand `json:"temperature"`
	Time        TimeBand        `json:"time"`
	Condition   string          `json:"condition"`
}
