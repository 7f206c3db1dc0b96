// Package images resolves recipe image references into displayable
// bytes through the CORS relay in front of the image CDN.
package images

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/logger"
)

// DefaultTargetWidth is the rendition width preferred for export.
const DefaultTargetWidth = 700

// Compile-time interface check.
var _ domain.ImageResolver = (*Resolver)(nil)

// ResolverOption configures the Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(h *http.Client) ResolverOption {
	return func(r *Resolver) { r.http = h }
}

// Resolver fetches image bytes through a relay prefix. Every failure is
// soft: a recipe without pictures is still a recipe.
type Resolver struct {
	relayURL string
	http     *http.Client
	log      *logger.Logger
}

// NewResolver creates an image resolver. relayURL is the proxy prefix
// the rewritten image address is appended to.
func NewResolver(relayURL string, log *logger.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		relayURL: relayURL,
		http:     &http.Client{Timeout: 20 * time.Second},
		log:      log,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Nearest picks the rendition whose width is closest to target, ties
// broken by first occurrence. ok is false for an empty set.
func Nearest(images []domain.RecipeImage, target int) (best domain.RecipeImage, ok bool) {
	for i, img := range images {
		if i == 0 || abs(img.Width-target) < abs(best.Width-target) {
			best = img
		}
	}
	return best, len(images) > 0
}

// Resolve fetches the rendition nearest targetWidth. An empty image set
// or any fetch failure yields (nil, nil).
func (r *Resolver) Resolve(ctx context.Context, images []domain.RecipeImage, targetWidth int) ([]byte, error) {
	best, ok := Nearest(images, targetWidth)
	if !ok {
		return nil, nil
	}

	addr := r.relayURL + relayPath(best.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		r.log.Warn("image request for %s: %v", best.URL, err)
		return nil, nil
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Warn("image fetch %s: %v", best.URL, err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Warn("image fetch %s: status %d", best.URL, resp.StatusCode)
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		r.log.Warn("image read %s: %v", best.URL, err)
		return nil, nil
	}
	r.log.Debug("resolved image %s (%d bytes)", best.URL, len(data))
	return data, nil
}

// relayPath rewrites an image URL into the form the relay expects:
// scheme stripped, port 443 pinned after the host.
func relayPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(raw, "https://")
	}
	return u.Host + ":443" + u.Path
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
