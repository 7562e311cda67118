package galleryclient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/gallery"
)

const testDebounce = 20 * time.Millisecond

type staticSource []gallery.Photo

func (s staticSource) Photos() []gallery.Photo { return s }

// scriptedExpander answers each query through fn and counts the calls.
type scriptedExpander struct {
	calls   atomic.Int32
	mu      sync.Mutex
	queries []string
	fn      func(ctx context.Context, q string) (gallery.Expansion, error)
}

func (e *scriptedExpander) Expand(ctx context.Context, q string) (gallery.Expansion, error) {
	e.calls.Add(1)
	e.mu.Lock()
	e.queries = append(e.queries, q)
	e.mu.Unlock()
	return e.fn(ctx, q)
}

func (e *scriptedExpander) seen() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.queries...)
}

func testPhotos() staticSource {
	return staticSource{
		{ID: 1, Title: "Harbor at dusk", Category: "street", Tags: []string{"sea"}},
		{ID: 2, Title: "Grandma", Category: "portraits", Tags: []string{"family", "kids"}},
		{ID: 3, Title: "Finish line", Category: "events", Tags: []string{"marathon"}},
	}
}

func TestSearch_ShortQueryClearsWithoutRemoteCall(t *testing.T) {
	exp := &scriptedExpander{fn: func(context.Context, string) (gallery.Expansion, error) {
		return gallery.Expansion{Keywords: []string{"x"}}, nil
	}}
	s := NewSearch(context.Background(), testPhotos(), exp, WithDebounce(testDebounce))
	defer s.Close()

	s.Input("st")
	st := s.State()
	assert.Empty(t, st.Keywords)
	assert.Empty(t, st.Intent)
	assert.False(t, st.Analyzing)
	assert.Equal(t, []int64{1}, ids(st.Results), "short queries still match text fields")

	time.Sleep(5 * testDebounce)
	assert.Zero(t, exp.calls.Load())
}

func TestSearch_Debounces(t *testing.T) {
	exp := &scriptedExpander{fn: func(_ context.Context, q string) (gallery.Expansion, error) {
		return gallery.Expansion{Keywords: []string{"kids"}, Intent: "Looking for " + q}, nil
	}}
	s := NewSearch(context.Background(), testPhotos(), exp, WithDebounce(testDebounce))
	defer s.Close()

	for _, q := range []string{"fam", "fami", "famil", "family"} {
		s.Input(q)
	}

	require.Eventually(t, func() bool { return s.State().Intent != "" }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDebounce)

	assert.Equal(t, []string{"family"}, exp.seen(), "only the last query is analyzed")
	st := s.State()
	assert.Equal(t, "Looking for family", st.Intent)
	assert.Equal(t, []string{"kids"}, st.Keywords)
	assert.False(t, st.Analyzing)
	assert.Equal(t, []int64{2}, ids(st.Results))
}

func TestSearch_DropsStaleResponses(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	exp := &scriptedExpander{fn: func(_ context.Context, q string) (gallery.Expansion, error) {
		if q == "slow query" {
			started <- struct{}{}
			<-release
			return gallery.Expansion{Keywords: []string{"stale"}, Intent: "stale"}, nil
		}
		return gallery.Expansion{Keywords: []string{"marathon"}, Intent: "fresh"}, nil
	}}
	s := NewSearch(context.Background(), testPhotos(), exp, WithDebounce(testDebounce))
	defer s.Close()

	s.Input("slow query")
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("slow analysis never started")
	}
	assert.True(t, s.State().Analyzing)

	s.Input("fast query")
	require.Eventually(t, func() bool { return s.State().Intent == "fresh" }, time.Second, 5*time.Millisecond)

	close(release)
	require.Eventually(t, func() bool { return exp.calls.Load() == 2 && !s.State().Analyzing }, time.Second, 5*time.Millisecond)
	time.Sleep(testDebounce)

	st := s.State()
	assert.Equal(t, "fresh", st.Intent, "late answer for an older query must be ignored")
	assert.Equal(t, []string{"marathon"}, st.Keywords)
}

func TestSearch_ShortQueryInvalidatesInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	exp := &scriptedExpander{fn: func(context.Context, string) (gallery.Expansion, error) {
		started <- struct{}{}
		<-release
		return gallery.Expansion{Keywords: []string{"late"}, Intent: "late"}, nil
	}}
	s := NewSearch(context.Background(), testPhotos(), exp, WithDebounce(testDebounce))
	defer s.Close()

	s.Input("sunset")
	<-started
	s.Input("")
	close(release)

	require.Eventually(t, func() bool { return !s.State().Analyzing }, time.Second, 5*time.Millisecond)
	st := s.State()
	assert.Empty(t, st.Intent)
	assert.Empty(t, st.Keywords)
	assert.Len(t, st.Results, 3, "empty query shows everything")
}

func TestSearch_AnalyzingWhileNewerCallInFlight(t *testing.T) {
	releaseFirst := make(chan struct{})
	releaseSecond := make(chan struct{})
	started := make(chan string, 2)
	exp := &scriptedExpander{fn: func(_ context.Context, q string) (gallery.Expansion, error) {
		started <- q
		if q == "first query" {
			<-releaseFirst
			return gallery.Expansion{Keywords: []string{"sea"}, Intent: "first"}, nil
		}
		<-releaseSecond
		return gallery.Expansion{Keywords: []string{"marathon"}, Intent: "second"}, nil
	}}
	s := NewSearch(context.Background(), testPhotos(), exp, WithDebounce(testDebounce))
	defer s.Close()

	s.Input("first query")
	require.Equal(t, "first query", <-started)
	s.Input("second query")
	require.Equal(t, "second query", <-started)

	close(releaseFirst)
	require.Eventually(t, func() bool { return len(exp.seen()) == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(testDebounce)

	st := s.State()
	assert.True(t, st.Analyzing, "the newer call is still running")
	assert.Empty(t, st.Intent, "an answer for an abandoned query is not applied")

	close(releaseSecond)
	require.Eventually(t, func() bool { return s.State().Intent == "second" }, time.Second, 5*time.Millisecond)
	assert.False(t, s.State().Analyzing)
}

func TestSearch_FiredTimerAfterShortQuery(t *testing.T) {
	exp := &scriptedExpander{fn: func(context.Context, string) (gallery.Expansion, error) {
		return gallery.Expansion{Keywords: []string{"kids"}, Intent: "family"}, nil
	}}
	s := NewSearch(context.Background(), testPhotos(), exp, WithDebounce(time.Hour))
	defer s.Close()

	s.Input("family")
	s.Input("gr")
	// A timer callback that already fired before the short query arrived.
	s.analyze("family")

	st := s.State()
	assert.Zero(t, exp.calls.Load())
	assert.Empty(t, st.Keywords)
	assert.Empty(t, st.Intent)
	assert.False(t, st.Analyzing)
}

func TestSearch_FallsBackToSmartKeywords(t *testing.T) {
	exp := &scriptedExpander{fn: func(context.Context, string) (gallery.Expansion, error) {
		return gallery.Expansion{}, ErrFallback
	}}
	s := NewSearch(context.Background(), testPhotos(), exp, WithDebounce(testDebounce))
	defer s.Close()

	s.Input("family")
	require.Eventually(t, func() bool { return s.State().Intent != "" }, time.Second, 5*time.Millisecond)

	st := s.State()
	assert.Equal(t, gallery.SmartKeywords("family"), st.Keywords)
	assert.Contains(t, st.Intent, "smart search")
	assert.False(t, st.Analyzing)
	assert.Equal(t, []int64{2}, ids(st.Results))
}

func TestSearch_NilRemoteUsesSmartKeywords(t *testing.T) {
	s := NewSearch(context.Background(), testPhotos(), nil, WithDebounce(testDebounce))
	defer s.Close()

	s.Input("sport")
	require.Eventually(t, func() bool { return len(s.State().Keywords) > 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, gallery.SmartKeywords("sport"), s.State().Keywords)
}

func TestSearch_CloseCancelsPending(t *testing.T) {
	exp := &scriptedExpander{fn: func(context.Context, string) (gallery.Expansion, error) {
		return gallery.Expansion{}, errors.New("should not be called")
	}}
	s := NewSearch(context.Background(), testPhotos(), exp, WithDebounce(testDebounce))

	s.Input("harbor")
	s.Close()
	s.Input("another")
	time.Sleep(5 * testDebounce)

	assert.Zero(t, exp.calls.Load())
	assert.Equal(t, "harbor", s.State().Query)
}

func ids(photos []gallery.Photo) []int64 {
	out := make([]int64, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.ID)
	}
	return out
}
