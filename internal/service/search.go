package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analyzer.go -package=mocks portfolio/internal/service Analyzer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_service.go -package=mocks -mock_names=SearchService=MockSearchService portfolio/internal/service SearchService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio/internal/contextutil"
	"portfolio/internal/gallery"
	"portfolio/internal/llm"
)

// Analyzer derives search keywords from a natural language query.
// This interface is defined from the service layer's perspective (consumer-first).
type Analyzer interface {
	Analyze(ctx context.Context, query string) (llm.Analysis, error)
}

// SearchService provides query analysis and gallery search.
type SearchService interface {
	// Analyze asks the remote analyzer for keywords. Errors are ErrNotConfigured,
	// ErrRateLimited or ErrUnavailable so callers can fall back.
	Analyze(ctx context.Context, query string) (llm.Analysis, error)
	// Search filters the merged catalog, expanding the query remotely when
	// possible and with smart keywords otherwise.
	Search(ctx context.Context, query string) (gallery.Result, error)
}

// searchService implements SearchService.
type searchService struct {
	analyzer Analyzer
	photos   PhotoService
}

// NewSearchService creates a new SearchService. analyzer may be nil when no
// remote analyzer is configured.
func NewSearchService(analyzer Analyzer, photos PhotoService) SearchService {
	return &searchService{analyzer: analyzer, photos: photos}
}

func (s *searchService) Analyze(ctx context.Context, query string) (llm.Analysis, error) {
	logger := contextutil.LoggerFromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return llm.Analysis{}, &ValidationError{Field: "query", Message: "Query is required"}
	}
	if s.analyzer == nil {
		return llm.Analysis{}, ErrNotConfigured
	}

	analysis, err := s.analyzer.Analyze(ctx, query)
	if err != nil {
		logger.WarnContext(ctx, "remote analysis failed", "error", err)
		return llm.Analysis{}, mapAnalyzerError(err)
	}

	logger.InfoContext(ctx, "query analyzed", "query_length", len(query), "keywords", len(analysis.Keywords))
	return analysis, nil
}

func mapAnalyzerError(err error) error {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return fmt.Errorf("%w: %w", ErrNotConfigured, err)
	case errors.Is(err, llm.ErrRateLimited):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

func (s *searchService) Search(ctx context.Context, query string) (gallery.Result, error) {
	photos, err := s.photos.Catalog(ctx)
	if err != nil {
		return gallery.Result{}, WrapError(err, "failed to load catalog")
	}

	exp := gallery.FallbackExpander{Fallback: gallery.LocalExpander{}}
	if s.analyzer != nil {
		exp.Primary = analyzerExpander{s.analyzer}
	}
	return gallery.Search(ctx, exp, photos, query)
}

type analyzerExpander struct {
	a Analyzer
}

func (e analyzerExpander) Expand(ctx context.Context, query string) (gallery.Expansion, error) {
	a, err := e.a.Analyze(ctx, query)
	if err != nil {
		return gallery.Expansion{}, err
	}
	return gallery.Expansion{Keywords: a.Keywords, Intent: a.Intent}, nil
}
