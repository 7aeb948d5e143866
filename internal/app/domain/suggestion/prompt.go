package suggestion

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/FACorreiaa/go-wander/internal/app/domain/places"
	"github.com/FACorreiaa/go-wander/internal/app/domain/weather"
	"github.com/FACorreiaa/go-wander/internal/app/models"
)

// BuildPrompt renders the full generation request: current weather, matched
// preferences, the candidate places grouped by category, and the exclusion
// history. The model has no grounding beyond this text, so field content and
// ordering are fixed; changing them changes the shape of the answers.
func BuildPrompt(reading models.WeatherReading, prefs []models.UserPreference, placesByCategory models.PlacesByCategory, history []models.HistoryEntry) string {
	var b strings.Builder

	b.WriteString("Analyze the following weather conditions, user preferences, and nearby places to provide ONE personalized recommendation:\n")
	b.WriteString("**Current Weather:**\n")
	fmt.Fprintf(&b, "- Temperature: %.1f°C (%s)\n", reading.Temp, weather.TemperatureLabel(reading.Temp))
	fmt.Fprintf(&b, "- Conditions: %s\n", reading.Description)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", reading.Humidity)
	fmt.Fprintf(&b, "- Wind Speed: %.1f m/s\n", reading.WindSpeed)
	fmt.Fprintf(&b, "- Feels Like: %.1f°C\n", reading.FeelsLike)
	fmt.Fprintf(&b, "- Time of Day: %s\n", weather.TimeOfDayLabel(reading.Dt, reading.Timezone))

	if len(prefs) > 0 {
		b.WriteString("\n**User Preferences:**\n")
		for _, p := range prefs {
			fmt.Fprintf(&b, "- Prefers %s during %s weather at %s (%s)\n",
				p.Activity, p.Weather, p.Time, p.Temperature)
		}
	}

	b.WriteString("\n**Available Places within 5km:**\n")
	b.WriteString(formatPlacesWithCategories(placesByCategory))

	b.WriteString("\n\n**Previous Suggestions (DO NOT REPEAT THESE):**\n")
	if len(history) > 0 {
		for _, h := range history {
			fmt.Fprintf(&b, "- %s (%s)\n", h.Name, h.Tag)
		}
	} else {
		b.WriteString("None\n")
	}

	b.WriteString("\n**DO NOT GIVE SUGGESTIONS WITH THESE TAGS:**\n")
	if excluded := excludedTags(history); len(excluded) > 0 {
		for _, tag := range excluded {
			fmt.Fprintf(&b, "- (%s)\n", tag)
		}
	} else {
		b.WriteString("None\n")
	}

	b.WriteString("\n**Recommendation Guidelines:**\n")
	b.WriteString("1. Prioritize user preferences when relevant to current conditions\n")
	b.WriteString("2. Select ONE best option considering all factors\n")
	b.WriteString("3. Never suggest places from previous suggestions\n")
	b.WriteString("4. Match place tags to weather conditions and preferences:\n")
	b.WriteString("   - café/restaurant for cold/rainy or user preferences\n")
	b.WriteString("   - beach/pool for hot days or user preferences\n")
	b.WriteString("   - park/viewpoints for mild weather or user preferences\n")
	b.WriteString("5. Suggest opening time based on type:\n")
	b.WriteString("   - Restaurants/cafes: Appropriate meal times\n")
	b.WriteString("   - Nature spots: Best daylight hours for current weather\n")
	fmt.Fprintf(&b, "6. Consider current time zone (%d)\n", reading.Timezone)

	b.WriteString("\n**Required Response Format:**\n")
	b.WriteString(`{
  "name": "Place Name",
  "distance": 0.27,
  "tag": "cafe",
  "activity_to_do": "Relaxing in a cozy cafe",
  "reason": "Combined weather and preference justification",
  "position": {
    "lat": 40.7481846,
    "lon": -73.985687
  },
  "suggestedTime": "8:00-22:00"
}`)

	return b.String()
}

// formatPlacesWithCategories renders each category block as [TAG] followed
// by its candidates in provider order. Category blocks appear in the fixed
// fetch order, with any tags outside the known set appended alphabetically.
func formatPlacesWithCategories(placesByCategory models.PlacesByCategory) string {
	tags := make([]string, 0, len(placesByCategory))
	for _, tag := range places.DefaultCategories {
		if _, ok := placesByCategory[tag]; ok {
			tags = append(tags, tag)
		}
	}
	var extras []string
	for tag := range placesByCategory {
		if !slices.Contains(places.DefaultCategories, tag) {
			extras = append(extras, tag)
		}
	}
	sort.Strings(extras)
	tags = append(tags, extras...)

	blocks := make([]string, 0, len(tags))
	for _, tag := range tags {
		var b strings.Builder
		fmt.Fprintf(&b, "[%s]", strings.ToUpper(tag))
		for _, place := range placesByCategory[tag] {
			fmt.Fprintf(&b, "\n- %s (%.2fkm)\n  Position: %v,%v",
				place.Name, place.Distance, place.Lat, place.Lon)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// excludedTags deduplicates history tags preserving first-seen order.
func excludedTags(history []models.HistoryEntry) []string {
	seen := make(map[string]bool, len(history))
	var tags []string
	for _, h := range history {
		if !seen[h.Tag] {
			seen[h.Tag] = true
			tags = append(tags, h.Tag)
		}
	}
	return tags
}
