package gallery

import (
	"context"
	"strings"
)

// MinExpandLength is the shortest normalized query that is matched against
// tags and keyword expansions. Shorter queries only match the text fields.
const MinExpandLength = 3

// NormalizeQuery lowercases and trims a raw search query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Filter returns the photos matching query, preserving the input order.
//
// A photo matches when the query is a substring of its title, category,
// description or event. For queries of at least MinExpandLength characters a
// photo also matches when any tag contains the query, one of its smart
// keywords, or one of the extra keywords. An empty query returns every photo.
func Filter(photos []Photo, query string, extra []string) []Photo {
	q := NormalizeQuery(query)
	if q == "" {
		out := make([]Photo, len(photos))
		copy(out, photos)
		return out
	}

	var needles []string
	if len(q) >= MinExpandLength {
		needles = append(needles, q)
		needles = append(needles, lowerAll(SmartKeywords(q))...)
		needles = append(needles, lowerAll(extra)...)
	}

	out := make([]Photo, 0, len(photos))
	for _, p := range photos {
		if matchesText(p, q) || matchesTags(p.Tags, needles) {
			out = append(out, p)
		}
	}
	return out
}

func matchesText(p Photo, q string) bool {
	for _, field := range []string{p.Title, p.Category, p.Description, p.Event} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesTags(tags, needles []string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		for _, n := range needles {
			if n != "" && strings.Contains(tag, n) {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Result is the outcome of a gallery search.
type Result struct {
	Query    string   `json:"query"`
	Keywords []string `json:"keywords"`
	Intent   string   `json:"intent,omitempty"`
	Photos   []Photo  `json:"photos"`
	Count    int      `json:"count"`
}

// Search expands query with exp and filters photos with the result. Queries
// shorter than MinExpandLength are never sent to the expander.
func Search(ctx context.Context, exp Expander, photos []Photo, query string) (Result, error) {
	q := NormalizeQuery(query)
	res := Result{Query: q, Keywords: []string{}}
	if len(q) >= MinExpandLength && exp != nil {
		expansion, err := exp.Expand(ctx, q)
		if err != nil {
			return Result{}, err
		}
		res.Keywords = lowerAll(expansion.Keywords)
		res.Intent = expansion.Intent
	}
	res.Photos = Filter(photos, q, res.Keywords)
	res.Count = len(res.Photos)
	return res, nil
}
