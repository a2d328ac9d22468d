// ABOUTME: Image probing so the link fallback chain can observe load failures.
// ABOUTME: The HTTP prober fetches headers and accepts only image responses.

package render

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/harper/scraps/internal/models"
)

// Prober checks whether a URL serves a loadable image. A nil error means
// the image loaded; any error advances the fallback chain.
type Prober interface {
	ProbeImage(ctx context.Context, url string) error
}

// HTTPProber probes with a real request, the terminal equivalent of an
// image element's load/error events.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber returns a prober with a short per-probe timeout so one
// slow URL cannot stall a whole board render.
func NewHTTPProber() *HTTPProber {
	return &HTTPProber{
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// ProbeImage fetches the URL and verifies it answers with an image
// content type. The body is not read; headers are enough to decide.
func (p *HTTPProber) ProbeImage(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build image request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("fetch image: not an image (%s)", ct)
	}
	return nil
}

// probeURL returns the image URL an unsettled link state wants loaded.
func probeURL(l *models.Link, st LinkState) string {
	switch st {
	case LinkTryingDirectImage:
		return l.URL
	case LinkTryingPreview:
		return l.PreviewImage
	}
	return ""
}

// SettleLink walks the fallback chain for a link scrap, probing each
// image-bearing step, until it reaches a state that renders without a
// pending load. The probe errors are the chain's failure signals and are
// deliberately dropped.
func SettleLink(ctx context.Context, p Prober, l *models.Link) LinkState {
	st := firstLinkState(l)
	for !st.Settled() {
		if err := p.ProbeImage(ctx, probeURL(l, st)); err == nil {
			return st
		}
		st = AdvanceLink(l, st)
	}
	return st
}

// SettleImage reports the flags for an image scrap after probing its URL.
func SettleImage(ctx context.Context, p Prober, img *models.Image) Flags {
	if err := p.ProbeImage(ctx, img.URL); err != nil {
		return Flags{ImageFailed: true}
	}
	return Flags{}
}
