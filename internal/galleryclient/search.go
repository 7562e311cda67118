package galleryclient

import (
	"context"
	"sync"
	"time"

	"portfolio/internal/gallery"
)

// DefaultDebounce is how long Search waits after the last keystroke before
// asking for an analysis.
const DefaultDebounce = 1000 * time.Millisecond

// PhotoSource provides the photos a Search filters. *Catalog implements it.
type PhotoSource interface {
	Photos() []gallery.Photo
}

// State is a snapshot of a Search.
type State struct {
	Query     string
	Keywords  []string
	Intent    string
	Analyzing bool
	Results   []gallery.Photo
}

// Search is the debounced, sequenced keyword search behind a search box.
//
// Every fired analysis gets an increasing sequence number and a response is
// only applied when it is newer than the last applied one and still answers
// the current query, so a slow answer for an old query never overwrites a
// newer result.
type Search struct {
	ctx      context.Context
	source   PhotoSource
	expander gallery.Expander
	debounce time.Duration

	mu       sync.Mutex
	query    string
	keywords []string
	intent   string
	timer    *time.Timer
	issued   uint64
	applied  uint64
	inflight map[uint64]struct{}
	closed   bool
}

// SearchOption configures a Search.
type SearchOption func(*Search)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) SearchOption {
	return func(s *Search) { s.debounce = d }
}

// NewSearch creates a search over source. remote may be nil, in which case
// only the smart keyword table is used. ctx bounds every analysis call.
func NewSearch(ctx context.Context, source PhotoSource, remote gallery.Expander, opts ...SearchOption) *Search {
	s := &Search{
		ctx:    ctx,
		source: source,
		expander: gallery.FallbackExpander{
			Primary:  remote,
			Fallback: gallery.LocalExpander{},
		},
		debounce: DefaultDebounce,
		inflight: make(map[uint64]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Input records a new query. Short queries clear the expansion at once;
// longer ones schedule an analysis after the debounce delay.
func (s *Search) Input(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.query = q
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len(gallery.NormalizeQuery(q)) < gallery.MinExpandLength {
		s.keywords = nil
		s.intent = ""
		// Anything still in flight is now stale.
		s.applied = s.issued
		return
	}

	s.timer = time.AfterFunc(s.debounce, func() { s.analyze(q) })
}

func (s *Search) analyze(q string) {
	s.mu.Lock()
	// The timer may have fired just before Input moved on to another query.
	if s.closed || q != s.query {
		s.mu.Unlock()
		return
	}
	s.issued++
	seq := s.issued
	s.inflight[seq] = struct{}{}
	s.mu.Unlock()

	exp, err := s.expander.Expand(s.ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, seq)
	if err != nil || s.ctx.Err() != nil || seq <= s.applied || q != s.query {
		return
	}
	s.applied = seq
	s.keywords = exp.Keywords
	s.intent = exp.Intent
}

// analyzing reports whether an analysis that could still be applied is in
// flight. Callers hold s.mu.
func (s *Search) analyzing() bool {
	for seq := range s.inflight {
		if seq > s.applied {
			return true
		}
	}
	return false
}

// State returns the current query, expansion and the filtered catalog.
func (s *Search) State() State {
	s.mu.Lock()
	st := State{
		Query:     s.query,
		Keywords:  append([]string(nil), s.keywords...),
		Intent:    s.intent,
		Analyzing: s.analyzing(),
	}
	s.mu.Unlock()

	st.Results = gallery.Filter(s.source.Photos(), st.Query, st.Keywords)
	return st
}

// Close stops any pending analysis. Input is ignored afterwards.
func (s *Search) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
