package models

// Position is a latitude/longitude pair inside a model reply.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Suggestion is the validated output of one generation call. Address is
// attached by the orchestrator after validation, never by the model.
type Suggestion struct {
	Name          string   `json:"name"`
	Distance      float64  `json:"distance"`
	Tag           string   `json:"tag"`
	ActivityToDo  string   `json:"activity_to_do"`
	Reason        string   `json:"reason"`
	Position      Position `json:"position"`
	SuggestedTime string   `json:"suggestedTime"`
	Address       string   `json:"address,omitempty"`
}

// HistoryEntry is the per-user anti-repetition record of one accepted
// suggestion. Process-scoped only; lost on restart.
type HistoryEntry struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}
