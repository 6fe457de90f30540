// Package media tells videos from images behind a URL without downloading
// them. Results are cached per URL for the lifetime of the Detector.
package media

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gabapcia/blockfeed/internal/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/singleflight"
)

type Type string

const (
	TypeVideo   Type = "video"
	TypeImage   Type = "image"
	TypeUnknown Type = "unknown"
)

// sniffSize is the prefix fetched when the server does not declare a usable
// content type. It matches the read limit of mimetype.
const sniffSize = 3072

// StripQuery reduces a URL to its origin and path. Unparseable input is
// returned untouched.
func StripQuery(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host + u.EscapedPath()
}

func typeOf(contentType string) Type {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.HasPrefix(mediaType, "video/"):
		return TypeVideo
	case strings.HasPrefix(mediaType, "image/"):
		return TypeImage
	default:
		return TypeUnknown
	}
}

// Detector detects media types.
type Detector interface {
	// Detect returns the media type behind rawURL. Failures yield
	// TypeUnknown, which is cached like any other answer.
	Detect(ctx context.Context, rawURL string) Type
}

type detector struct {
	client *retryablehttp.Client
	sniff  bool

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]Type
}

var _ Detector = (*detector)(nil)

func (d *detector) Detect(ctx context.Context, rawURL string) Type {
	key := StripQuery(rawURL)
	if key == "" {
		return TypeUnknown
	}

	d.mu.RLock()
	cached, ok := d.cache[key]
	d.mu.RUnlock()
	if ok {
		return cached
	}

	v, _, _ := d.group.Do(key, func() (any, error) {
		t := d.probe(ctx, key)

		d.mu.Lock()
		d.cache[key] = t
		d.mu.Unlock()

		return t, nil
	})
	return v.(Type)
}

func (d *detector) probe(ctx context.Context, target string) Type {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return TypeUnknown
	}

	res, err := d.client.Do(req)
	if err != nil {
		logger.Debug(ctx, "media probe failed", "url", target, "error", err)
		return TypeUnknown
	}
	res.Body.Close()

	contentType := res.Header.Get("Content-Type")
	if t := typeOf(contentType); t != TypeUnknown || !d.sniff || !isGeneric(contentType) {
		return t
	}

	return d.sniffType(ctx, target)
}

// isGeneric reports whether contentType says nothing about the payload.
func isGeneric(contentType string) bool {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	return mediaType == "" || mediaType == "application/octet-stream" || mediaType == "binary/octet-stream"
}

// sniffType reads the first bytes of target and detects their type.
// Gateways often serve IPFS content without a content type.
func (d *detector) sniffType(ctx context.Context, target string) Type {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return TypeUnknown
	}
	req.Header.Set("Range", "bytes=0-3071")

	res, err := d.client.Do(req)
	if err != nil {
		logger.Debug(ctx, "media sniff failed", "url", target, "error", err)
		return TypeUnknown
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return TypeUnknown
	}

	head, err := io.ReadAll(io.LimitReader(res.Body, sniffSize))
	if err != nil || len(head) == 0 {
		return TypeUnknown
	}

	return typeOf(mimetype.Detect(head).String())
}

// Cached returns the cached answer for rawURL without probing.
func (d *detector) Cached(rawURL string) (Type, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.cache[StripQuery(rawURL)]
	return t, ok
}

type config struct {
	sniff bool
}

type Option func(*config)

// NewDetector creates a Detector probing through client.
func NewDetector(client *retryablehttp.Client, opts ...Option) *detector {
	cfg := config{sniff: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &detector{
		client: client,
		sniff:  cfg.sniff,
		cache:  make(map[string]Type),
	}
}

// WithSniffing toggles content sniffing for responses without a usable
// content type. Enabled by default.
func WithSniffing(enabled bool) Option {
	return func(c *config) {
		c.sniff = enabled
	}
}
