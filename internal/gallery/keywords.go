package gallery

import (
	"context"
	"fmt"
	"strings"

	"portfolio/internal/contextutil"
)

// smartKeywords maps common search terms to related tag terms. It is used
// whenever the remote analyzer is unavailable.
var smartKeywords = map[string][]string{
	// People & emotions
	"people":   {"portraits", "group", "children", "flower-girls", "candid"},
	"kids":     {"children", "flower-girls", "innocence", "youth"},
	"children": {"flower-girls", "kids", "innocence", "youth"},
	"family":   {"children", "candid", "life", "joy"},
	"couple":   {"wedding", "romance", "love", "bridal"},
	"bride":    {"wedding", "bridal", "elegance", "dress"},
	"groom":    {"wedding", "formal", "suit"},

	// Moods
	"happy":    {"joy", "celebration", "smile", "cheerful"},
	"elegant":  {"elegance", "formal", "sophisticated", "classic"},
	"romantic": {"romance", "wedding", "love", "intimate"},
	"fun":      {"celebration", "joy", "festival", "party"},
	"peaceful": {"serenity", "calm", "nature", "ethereal"},

	// Styles
	"artistic":    {"creative", "abstract", "experimental", "unique"},
	"documentary": {"candid", "street", "real", "authentic"},
	"portrait":    {"portraits", "people", "face", "expression"},
	"landscape":   {"nature", "seascape", "outdoor", "scenic"},
	"macro":       {"close-up", "details", "intimate"},
	"model":       {"portrait", "fashion", "window-light", "grace"},

	// Events & occasions
	"party":       {"celebration", "festival", "event", "gathering"},
	"ceremony":    {"wedding", "formal", "traditional", "ritual"},
	"celebration": {"festival", "party", "joy", "event"},
	"wedding":     {"bridal", "ceremony", "bouquet", "cake"},
	"festival":    {"celebration", "holi", "vintage", "colors"},
	"sport":       {"athlete", "parkour", "training", "focus"},

	// Visual elements
	"water":    {"waves", "seascape", "ocean", "flow"},
	"ocean":    {"seascape", "waves", "coastal", "water"},
	"nature":   {"seascape", "rocks", "coastal", "natural-light"},
	"movement": {"motion", "dynamic", "action", "flow"},
	"fashion":  {"style", "dress", "outfit", "clothing"},
	"flowers":  {"bouquet", "floral", "nature", "decoration"},
	"city":     {"urban", "street", "buildings", "metropolitan"},
	"street":   {"urban", "candid", "documentary", "walking"},

	// Colors
	"colorful":        {"vibrant", "bright", "festival", "celebration"},
	"black and white": {"monochrome", "classic", "timeless", "artistic"},
	"vintage":         {"classic", "retro", "traditional", "timeless"},

	// Technique
	"blur":  {"motion", "movement", "dynamic", "artistic"},
	"sharp": {"clear", "crisp", "detailed", "precise"},
	"light": {"window-light", "natural-light", "light-trails", "shadows"},
	"night": {"light-trails", "long-exposure", "motion", "dark"},
}

// SmartKeywords returns the related terms for term. Unknown terms map to
// themselves.
func SmartKeywords(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if related, ok := smartKeywords[term]; ok {
		out := make([]string, len(related))
		copy(out, related)
		return out
	}
	return []string{term}
}

// Expansion is the keyword set derived for a query plus a short description
// of what the user is looking for.
type Expansion struct {
	Keywords []string `json:"keywords"`
	Intent   string   `json:"intent"`
}

// Expander derives related keywords for a free-text query.
type Expander interface {
	Expand(ctx context.Context, query string) (Expansion, error)
}

// LocalExpander expands queries using the smart keyword table.
type LocalExpander struct{}

// Expand never fails.
func (LocalExpander) Expand(_ context.Context, query string) (Expansion, error) {
	return Expansion{
		Keywords: SmartKeywords(query),
		Intent:   fmt.Sprintf("Finding photos related to %q using smart search", strings.TrimSpace(query)),
	}, nil
}

// FallbackExpander tries Primary first and silently switches to Fallback on
// any error.
type FallbackExpander struct {
	Primary  Expander
	Fallback Expander
}

// Expand implements Expander.
func (f FallbackExpander) Expand(ctx context.Context, query string) (Expansion, error) {
	if f.Primary != nil {
		exp, err := f.Primary.Expand(ctx, query)
		if err == nil {
			return exp, nil
		}
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "keyword expansion fell back to smart keywords", "error", err)
	}
	return f.Fallback.Expand(ctx, query)
}
