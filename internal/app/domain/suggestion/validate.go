package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-wander/internal/app/models"
)

// rawSuggestion decodes the model reply with optional fields kept as
// pointers so missing keys are distinguishable from zero values.
type rawSuggestion struct {
	Name         string   `json:"name"`
	Distance     *float64 `json:"distance"`
	Tag          string   `json:"tag"`
	ActivityToDo string   `json:"activity_to_do"`
	Reason       string   `json:"reason"`
	Position     *struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"position"`
	SuggestedTime string `json:"suggestedTime"`
}

// ParseAndValidate turns the model's raw reply into a Suggestion or rejects
// it with ErrMalformedSuggestion. The tag must be one of the requested
// category keys; the specific place name is deliberately not checked against
// the fetched candidates.
func ParseAndValidate(rawText string, placesByCategory models.PlacesByCategory) (*models.Suggestion, error) {
	cleaned := cleanJSONResponse(rawText)

	var raw rawSuggestion
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedSuggestion, err)
	}

	switch {
	case raw.Name == "":
		return nil, fmt.Errorf("%w: missing name", models.ErrMalformedSuggestion)
	case raw.Distance == nil:
		return nil, fmt.Errorf("%w: missing distance", models.ErrMalformedSuggestion)
	case !tagRequested(raw.Tag, placesByCategory):
		return nil, fmt.Errorf("%w: tag %q was not requested", models.ErrMalformedSuggestion, raw.Tag)
	case raw.Position == nil:
		return nil, fmt.Errorf("%w: missing position", models.ErrMalformedSuggestion)
	case raw.Position.Lat == nil || *raw.Position.Lat == 0:
		return nil, fmt.Errorf("%w: missing position.lat", models.ErrMalformedSuggestion)
	case raw.Position.Lon == nil || *raw.Position.Lon == 0:
		return nil, fmt.Errorf("%w: missing position.lon", models.ErrMalformedSuggestion)
	case raw.SuggestedTime == "":
		return nil, fmt.Errorf("%w: missing suggestedTime", models.ErrMalformedSuggestion)
	}

	return &models.Suggestion{
		Name:          raw.Name,
		Distance:      *raw.Distance,
		Tag:           raw.Tag,
		ActivityToDo:  raw.ActivityToDo,
		Reason:        raw.Reason,
		Position:      models.Position{Lat: *raw.Position.Lat, Lon: *raw.Position.Lon},
		SuggestedTime: raw.SuggestedTime,
	}, nil
}

func tagRequested(tag string, placesByCategory models.PlacesByCategory) bool {
	_, ok := placesByCategory[tag]
	return ok
}

// cleanJSONResponse strips markdown code fences and extracts the outermost
// JSON object from a model reply.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}

	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}

	// Find the matching closing brace by counting braces.
	braceCount := 0
	var lastValidBrace int
	for i := firstBrace; i < len(response); i++ {
		switch response[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				lastValidBrace = i
			}
		}
		if braceCount == 0 && lastValidBrace > 0 {
			break
		}
	}

	if braceCount != 0 {
		lastBrace := strings.LastIndex(response, "}")
		if lastBrace == -1 || lastBrace <= firstBrace {
			return response
		}
		lastValidBrace = lastBrace
	}

	return strings.TrimSpace(response[firstBrace : lastValidBrace+1])
}
