package models

import (
	"time"

	"github.com/google/uuid"
)

// UserPreference is a favorited suggestion together with the weather
// classification it was accepted under. Immutable except for deletion.
type UserPreference struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"user_id"`
	Weather     string          `json:"weather"`
	Temperature TemperatureBand `json:"temperature"`
	Time        TimeBand        `json:"time"`
	Activity    string          `json:"activity"`
	PlaceName   string          `json:"place_name"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Address     string          `json:"address"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreatePreferenceRequest is the payload for favoriting a suggestion. The
// raw reading is classified server-side so preference rows and suggestion
// matching always use the same categorization.
type CreatePreferenceRequest struct {
	Weather   WeatherReading `json:"weather"`
	Activity  string         `json:"activity"`
	PlaceName string         `json:"place_name"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Address   string         `json:"address"`
}
