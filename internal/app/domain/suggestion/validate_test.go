package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-wander/internal/app/models"
)

var validateCandidates = models.PlacesByCategory{
	"cafe": {{Name: "Blue Bottle", Distance: 0.27, Lat: 40.74, Lon: -73.98, Tag: "cafe"}},
	"park": {{Name: "Central Park", Distance: 1.2, Lat: 40.78, Lon: -73.96, Tag: "park"}},
}

const validReply = `{
  "name": "Blue Bottle",
  "distance": 0.27,
  "tag": "cafe",
  "activity_to_do": "Relaxing in a cozy cafe",
  "reason": "Cold evening calls for a warm drink",
  "position": {"lat": 40.74, "lon": -73.98},
  "suggestedTime": "8:00-22:00"
}`

func TestParseAndValidateAcceptsCompleteReply(t *testing.T) {
	suggestion, err := ParseAndValidate(validReply, validateCandidates)
	require.NoError(t, err)

	assert.Equal(t, "Blue Bottle", suggestion.Name)
	assert.Equal(t, 0.27, suggestion.Distance)
	assert.Equal(t, "cafe", suggestion.Tag)
	assert.Equal(t, "Relaxing in a cozy cafe", suggestion.ActivityToDo)
	assert.Equal(t, models.Position{Lat: 40.74, Lon: -73.98}, suggestion.Position)
	assert.Equal(t, "8:00-22:00", suggestion.SuggestedTime)
}

func TestParseAndValidateStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validReply + "\n```"
	suggestion, err := ParseAndValidate(fenced, validateCandidates)
	require.NoError(t, err)
	assert.Equal(t, "Blue Bottle", suggestion.Name)
}

func TestParseAndValidateExtractsObjectFromChatter(t *testing.T) {
	chatty := "Here is my recommendation:\n" + validReply + "\nEnjoy your visit!"
	suggestion, err := ParseAndValidate(chatty, validateCandidates)
	require.NoError(t, err)
	assert.Equal(t, "Blue Bottle", suggestion.Name)
}

func TestParseAndValidateRejectsInvalidJSON(t *testing.T) {
	_, err := ParseAndValidate("not json at all", validateCandidates)
	assert.ErrorIs(t, err, models.ErrMalformedSuggestion)
}

func TestParseAndValidateRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{
			name:  "missing name",
			reply: `{"distance": 0.27, "tag": "cafe", "position": {"lat": 40.74, "lon": -73.98}, "suggestedTime": "8:00-22:00"}`,
		},
		{
			name:  "missing distance",
			reply: `{"name": "Blue Bottle", "tag": "cafe", "position": {"lat": 40.74, "lon": -73.98}, "suggestedTime": "8:00-22:00"}`,
		},
		{
			name:  "missing position",
			reply: `{"name": "Blue Bottle", "distance": 0.27, "tag": "cafe", "suggestedTime": "8:00-22:00"}`,
		},
		{
			name:  "missing position lon",
			reply: `{"name": "Blue Bottle", "distance": 0.27, "tag": "cafe", "position": {"lat": 40.74}, "suggestedTime": "8:00-22:00"}`,
		},
		{
			name:  "zero position lat",
			reply: `{"name": "Blue Bottle", "distance": 0.27, "tag": "cafe", "position": {"lat": 0, "lon": -73.98}, "suggestedTime": "8:00-22:00"}`,
		},
		{
			name:  "missing suggestedTime",
			reply: `{"name": "Blue Bottle", "distance": 0.27, "tag": "cafe", "position": {"lat": 40.74, "lon": -73.98}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAndValidate(tc.reply, validateCandidates)
			assert.ErrorIs(t, err, models.ErrMalformedSuggestion)
		})
	}
}

func TestParseAndValidateRejectsForeignTag(t *testing.T) {
	reply := `{"name": "City Museum", "distance": 0.5, "tag": "museum", "position": {"lat": 40.74, "lon": -73.98}, "suggestedTime": "9:00-17:00"}`
	_, err := ParseAndValidate(reply, validateCandidates)
	assert.ErrorIs(t, err, models.ErrMalformedSuggestion)
	assert.Contains(t, err.Error(), "museum")
}

func TestParseAndValidateAcceptsUnlistedPlaceName(t *testing.T) {
	// The tag must be one of the requested categories but the name is not
	// checked against the fetched candidates.
	reply := `{"name": "Some Other Cafe", "distance": 0.4, "tag": "cafe", "position": {"lat": 40.75, "lon": -73.97}, "suggestedTime": "8:00-20:00"}`
	suggestion, err := ParseAndValidate(reply, validateCandidates)
	require.NoError(t, err)
	assert.Equal(t, "Some Other Cafe", suggestion.Name)
}

func TestCleanJSONResponse(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"fenced json", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"leading chatter", "Sure! {\"a\": {\"b\": 2}} done", `{"a": {"b": 2}}`},
		{"no object", "no braces here", "no braces here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cleanJSONResponse(tc.input))
		})
	}
}
