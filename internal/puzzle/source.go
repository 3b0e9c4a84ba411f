package puzzle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/heartquiz/heartgame-go/internal/model"
)

// Source provides challenge/solution pairs for game rounds
type Source interface {
	// Fetch retrieves one puzzle. Fails with model.ErrSourceUnavailable
	// when the provider cannot be reached or responds with an error.
	Fetch(ctx context.Context) (*model.Puzzle, error)
}

// Config holds configuration for the HTTP puzzle source
type Config struct {
	// URL is the provider endpoint returning JSON puzzles
	URL string
	// Timeout bounds a single fetch; the round registry must never block
	// on a slow provider
	Timeout time.Duration
}

// DefaultConfig returns default puzzle source configuration
func DefaultConfig() Config {
	return Config{
		URL:     "http://marcconrad.com/uob/heart/api.php?out=json&base64=yes",
		Timeout: 10 * time.Second,
	}
}

// HTTPSource fetches puzzles from an external image-puzzle provider
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// Ensure HTTPSource implements Source
var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates a new HTTP-backed puzzle source
func NewHTTPSource(cfg Config) *HTTPSource {
	if cfg.URL == "" {
		cfg.URL = DefaultConfig().URL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &HTTPSource{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// providerResponse mirrors the provider's JSON payload. Some deployments
// name the image field "image", others "question".
type providerResponse struct {
	Image    string          `json:"image"`
	Question string          `json:"question"`
	Solution json.RawMessage `json:"solution"`
}

// Fetch implements Source against the HTTP provider
func (s *HTTPSource) Fetch(ctx context.Context) (*model.Puzzle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", model.ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned HTTP %d", model.ErrSourceUnavailable, resp.StatusCode)
	}

	var payload providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", model.ErrSourceUnavailable, err)
	}

	image := payload.Image
	if image == "" {
		image = payload.Question
	}
	solution, err := decodeSolution(payload.Solution)
	if err != nil || image == "" || solution == "" {
		return nil, fmt.Errorf("%w: incomplete puzzle payload", model.ErrSourceUnavailable)
	}

	return &model.Puzzle{
		ImageBase64: image,
		Solution:    solution,
	}, nil
}

// decodeSolution accepts the solution as either a JSON string or a bare
// number; the provider has served both over time
func decodeSolution(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing solution")
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		return "", err
	}
	return asNumber.String(), nil
}
