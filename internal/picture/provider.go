// Package picture assigns profile pictures from an external photo catalog.
//
// Lookups go to the Lorem Picsum id/info API. When the lookup cannot produce
// a usable URL the provider builds a seeded placeholder URL instead, so a
// caller always receives a picture.
package picture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL     = "https://picsum.photos"
	DefaultTimeout     = 5 * time.Second
	CatalogSize        = 1000
	MaxOptions         = 30
	placeholderSize    = 400
	placeholderBaseURL = "https://picsum.photos/seed"
)

var (
	ErrLookupFailed = errors.New("picture lookup failed")
	ErrInvalidCount = fmt.Errorf("count must be between 1 and %d", MaxOptions)
)

// Option is a synthetic picture choice rendered at several sizes.
type Option struct {
	ID   string `json:"id"`
	URLs URLs   `json:"urls"`
}

type URLs struct {
	Thumb   string `json:"thumb"`
	Small   string `json:"small"`
	Regular string `json:"regular"`
	Full    string `json:"full"`
}

type imageInfo struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	DownloadURL string `json:"download_url"`
}

type Provider struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	pick    func() int
	seed    func() string
}

type ProviderOption func(*Provider)

// WithBaseURL points lookups at another catalog host.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithTimeout(timeout time.Duration) ProviderOption {
	return func(p *Provider) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

func NewProvider(client *http.Client, opts ...ProviderOption) *Provider {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	p := &Provider{
		client:  client,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		pick:    func() int { return rand.IntN(CatalogSize) + 1 },
		seed:    func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProfilePicture returns a photo URL from the catalog, or a placeholder URL
// when the catalog cannot be reached. It never returns an empty URL.
func (p *Provider) ProfilePicture(ctx context.Context) (string, bool) {
	id := p.pick()

	url, err := p.lookup(ctx, id)
	if err != nil {
		fallback := placeholderURL(p.seed(), placeholderSize)
		slog.Warn("profile picture lookup failed, using placeholder",
			"image_id", id,
			"error", err,
			"fallback_url", fallback,
		)
		return fallback, true
	}

	return url, false
}

func (p *Provider) lookup(ctx context.Context, id int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/id/%d/info", p.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrLookupFailed, resp.StatusCode)
	}

	var info imageInfo
	err = json.NewDecoder(resp.Body).Decode(&info)
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrLookupFailed, err)
	}
	if strings.TrimSpace(info.DownloadURL) == "" {
		return "", fmt.Errorf("%w: response has no download_url", ErrLookupFailed)
	}

	return info.DownloadURL, nil
}

// Random returns one placeholder option without touching the network.
func (p *Provider) Random() Option {
	return newOption(p.seed())
}

// Options returns count placeholder options, each with its own seed.
func (p *Provider) Options(count int) ([]Option, error) {
	if count < 1 || count > MaxOptions {
		return nil, ErrInvalidCount
	}

	options := make([]Option, 0, count)
	for range count {
		options = append(options, newOption(p.seed()))
	}
	return options, nil
}

func newOption(seed string) Option {
	return Option{
		ID: seed,
		URLs: URLs{
			Thumb:   placeholderURL(seed, 200),
			Small:   placeholderURL(seed, 400),
			Regular: placeholderURL(seed, 1080),
			Full:    placeholderURL(seed, 2000),
		},
	}
}

func placeholderURL(seed string, size int) string {
	return fmt.Sprintf("%s/%s/%d/%d", placeholderBaseURL, seed, size, size)
}
