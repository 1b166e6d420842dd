package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ImageSource finds a picture URL for a free-text query.
type ImageSource interface {
	Name() string
	// Queries lists the queries to try for a place, most specific first.
	Queries(city, country, state string) []string
	Search(ctx context.Context, query string) (string, error)
}

// ImageChain implements weather.ImageFinder by trying each source's queries
// in order until one yields a URL.
type ImageChain struct {
	sources []ImageSource
	logger  *slog.Logger
}

func NewImageChain(logger *slog.Logger, sources ...ImageSource) *ImageChain {
	return &ImageChain{
		sources: sources,
		logger:  logger.With("component", "image"),
	}
}

func (c *ImageChain) FetchImage(ctx context.Context, city, country, state string) string {
	var attempts []attempt
	for _, s := range c.sources {
		for _, q := range s.Queries(city, country, state) {
			attempts = append(attempts, attempt{
				name: s.Name() + ":" + q,
				run: func(ctx context.Context) (string, error) {
					return s.Search(ctx, q)
				},
			})
		}
	}
	return firstNonEmpty(ctx, c.logger, attempts)
}

// UnsplashSource searches Unsplash photos. It needs an access key.
type UnsplashSource struct {
	accessKey string
	baseURL   string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

func NewUnsplashSource(httpCfg HTTPClientConfig, accessKey string) *UnsplashSource {
	return &UnsplashSource{
		accessKey: accessKey,
		baseURL:   "https://api.unsplash.com/search/photos",
		httpCfg:   httpCfg,
		circuit:   newCircuitBreaker("unsplash"),
	}
}

func (u *UnsplashSource) Name() string { return "unsplash" }

func (u *UnsplashSource) Queries(city, country, state string) []string {
	queries := make([]string, 0, 3)
	if state != "" {
		queries = append(queries, joinNonEmpty(" ", city, state, country))
	}
	if country != "" {
		queries = append(queries, joinNonEmpty(" ", city, country))
	}
	return append(queries, city)
}

func (u *UnsplashSource) Search(ctx context.Context, query string) (string, error) {
	if u.accessKey == "" {
		return "", fmt.Errorf("unsplash: %w", errNoAPIKey)
	}
	values := url.Values{}
	values.Set("query", query)
	values.Set("per_page", "1")
	values.Set("orientation", "landscape")
	rawURL := u.baseURL + "?" + values.Encode()

	build := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Client-ID "+u.accessKey)
		return req, nil
	}

	var payload struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := getJSON(ctx, u.httpCfg, u.circuit, build, &payload); err != nil {
		return "", fmt.Errorf("unsplash: %w", err)
	}
	if len(payload.Results) == 0 {
		return "", nil
	}
	return payload.Results[0].URLs.Regular, nil
}

// WikipediaSource uses the lead image of a Wikipedia article.
type WikipediaSource struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWikipediaSource(httpCfg HTTPClientConfig) *WikipediaSource {
	return &WikipediaSource{
		baseURL: "https://en.wikipedia.org/api/rest_v1/page/summary/",
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("wikipedia"),
	}
}

func (w *WikipediaSource) Name() string { return "wikipedia" }

func (w *WikipediaSource) Queries(city, _, _ string) []string { return []string{city} }

func (w *WikipediaSource) Search(ctx context.Context, query string) (string, error) {
	title := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(query), " ", "_"))

	var payload struct {
		OriginalImage *struct {
			Source string `json:"source"`
		} `json:"originalimage"`
		Thumbnail *struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}
	if err := getJSON(ctx, w.httpCfg, w.circuit, getRequest(w.baseURL+title), &payload); err != nil {
		return "", fmt.Errorf("wikipedia: %w", err)
	}
	switch {
	case payload.OriginalImage != nil && payload.OriginalImage.Source != "":
		return payload.OriginalImage.Source, nil
	case payload.Thumbnail != nil:
		return payload.Thumbnail.Source, nil
	}
	return "", nil
}

var (
	_ weather.ImageFinder = (*ImageChain)(nil)
	_ ImageSource         = (*UnsplashSource)(nil)
	_ ImageSource         = (*WikipediaSource)(nil)
)
