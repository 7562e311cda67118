package service_test

import (
	"errors"
	"fmt"
	"testing"

	"portfolio/internal/gallery"
	"portfolio/internal/llm"
	"portfolio/internal/service"
	"portfolio/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

func TestSearchService_Analyze(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		mockSetup func(a *mocks.MockAnalyzer)
		want      []string
		wantErr   error
	}{
		{
			name:  "successful analysis",
			query: "happy couples",
			mockSetup: func(a *mocks.MockAnalyzer) {
				a.EXPECT().Analyze(gomock.Any(), "happy couples").
					Return(llm.Analysis{Keywords: []string{"wedding", "joy"}, Intent: "couples"}, nil)
			},
			want: []string{"wedding", "joy"},
		},
		{
			name:      "empty query",
			query:     "   ",
			mockSetup: func(a *mocks.MockAnalyzer) {},
			wantErr:   &service.ValidationError{},
		},
		{
			name:  "rate limited",
			query: "kids",
			mockSetup: func(a *mocks.MockAnalyzer) {
				a.EXPECT().Analyze(gomock.Any(), "kids").Return(llm.Analysis{}, fmt.Errorf("%w: 429", llm.ErrRateLimited))
			},
			wantErr: service.ErrRateLimited,
		},
		{
			name:  "not configured",
			query: "kids",
			mockSetup: func(a *mocks.MockAnalyzer) {
				a.EXPECT().Analyze(gomock.Any(), "kids").Return(llm.Analysis{}, llm.ErrNotConfigured)
			},
			wantErr: service.ErrNotConfigured,
		},
		{
			name:  "unavailable",
			query: "kids",
			mockSetup: func(a *mocks.MockAnalyzer) {
				a.EXPECT().Analyze(gomock.Any(), "kids").Return(llm.Analysis{}, errors.New("connection refused"))
			},
			wantErr: service.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			analyzer := mocks.NewMockAnalyzer(ctrl)
			tt.mockSetup(analyzer)
			svc := service.NewSearchService(analyzer, mocks.NewMockPhotoService(ctrl))

			got, err := svc.Analyze(testContext(), tt.query)

			if tt.wantErr != nil {
				var v *service.ValidationError
				if errors.As(tt.wantErr, &v) {
					if !errors.As(err, &v) {
						t.Errorf("Analyze() error = %v, want ValidationError", err)
					}
					return
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Analyze() unexpected error: %v", err)
			}
			if fmt.Sprint(got.Keywords) != fmt.Sprint(tt.want) {
				t.Errorf("Analyze() keywords = %v, want %v", got.Keywords, tt.want)
			}
		})
	}
}

func TestSearchService_Analyze_NoAnalyzer(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewSearchService(nil, mocks.NewMockPhotoService(ctrl))

	if _, err := svc.Analyze(testContext(), "kids"); !errors.Is(err, service.ErrNotConfigured) {
		t.Errorf("Analyze() error = %v, want ErrNotConfigured", err)
	}
}

func TestSearchService_Search(t *testing.T) {
	catalog := []gallery.Photo{
		{ID: 1, Title: "Bridal Grace", Category: "wedding", Tags: []string{"bride"}},
		{ID: 2, Title: "Parkour Focus", Category: "events", Tags: []string{"athlete"}},
	}

	tests := []struct {
		name      string
		query     string
		mockSetup func(a *mocks.MockAnalyzer, p *mocks.MockPhotoService)
		wantIDs   []int64
	}{
		{
			name:  "remote keywords",
			query: "sports",
			mockSetup: func(a *mocks.MockAnalyzer, p *mocks.MockPhotoService) {
				p.EXPECT().Catalog(gomock.Any()).Return(catalog, nil)
				a.EXPECT().Analyze(gomock.Any(), "sports").Return(llm.Analysis{Keywords: []string{"athlete"}}, nil)
			},
			wantIDs: []int64{2},
		},
		{
			name:  "falls back to smart keywords",
			query: "bride",
			mockSetup: func(a *mocks.MockAnalyzer, p *mocks.MockPhotoService) {
				p.EXPECT().Catalog(gomock.Any()).Return(catalog, nil)
				a.EXPECT().Analyze(gomock.Any(), "bride").Return(llm.Analysis{}, llm.ErrRateLimited)
			},
			wantIDs: []int64{1},
		},
		{
			name:  "short query skips analyzer",
			query: "pa",
			mockSetup: func(a *mocks.MockAnalyzer, p *mocks.MockPhotoService) {
				p.EXPECT().Catalog(gomock.Any()).Return(catalog, nil)
			},
			wantIDs: []int64{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			analyzer := mocks.NewMockAnalyzer(ctrl)
			photos := mocks.NewMockPhotoService(ctrl)
			tt.mockSetup(analyzer, photos)

			res, err := service.NewSearchService(analyzer, photos).Search(testContext(), tt.query)
			if err != nil {
				t.Fatalf("Search() unexpected error: %v", err)
			}
			var got []int64
			for _, p := range res.Photos {
				got = append(got, p.ID)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.wantIDs) {
				t.Errorf("Search() ids = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}
