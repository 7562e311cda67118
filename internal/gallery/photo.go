// Package gallery holds the photo catalog model and the keyword search used
// by both the API server and the Go client.
package gallery

import (
	"strings"
	"time"
)

// Photo is a single gallery entry, either compiled in or uploaded.
//
// swagger:model Photo
type Photo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Event       string    `json:"event,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Src         string    `json:"src"`
	FullSrc     string    `json:"fullSrc"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// ParseTags splits a comma separated tag string, trimming whitespace and
// discarding empty entries. The result is never nil.
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags trims every tag and drops the empty ones.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
