// ABOUTME: Tests for the HTTP image prober and chain settlement.
// ABOUTME: Uses httptest servers and a scripted prober.

package render

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harper/scraps/internal/models"
)

// scriptedProber fails every URL listed in failures.
type scriptedProber struct {
	failures map[string]bool
}

func (p *scriptedProber) ProbeImage(ctx context.Context, url string) error {
	if p.failures[url] {
		return errors.New("load failed")
	}
	return nil
}

func TestHTTPProberAcceptsImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewHTTPProber()
	assert.NoError(t, p.ProbeImage(context.Background(), srv.URL))
}

func TestHTTPProberRejectsNonImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewHTTPProber()
	assert.Error(t, p.ProbeImage(context.Background(), srv.URL))
}

func TestHTTPProberRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p := NewHTTPProber()
	assert.Error(t, p.ProbeImage(context.Background(), srv.URL))
}

func TestSettleLinkDirectImageSucceeds(t *testing.T) {
	l := &models.Link{URL: "https://example.com/pic.jpg"}
	p := &scriptedProber{failures: map[string]bool{}}

	st := SettleLink(context.Background(), p, l)
	assert.Equal(t, LinkTryingDirectImage, st)
}

func TestSettleLinkFallsToPreviewThenPlain(t *testing.T) {
	l := &models.Link{
		URL:          "https://example.com/page",
		PreviewImage: "https://example.com/preview.png",
	}

	p := &scriptedProber{failures: map[string]bool{l.URL: true}}
	assert.Equal(t, LinkTryingPreview, SettleLink(context.Background(), p, l))

	p.failures[l.PreviewImage] = true
	assert.Equal(t, LinkPlain, SettleLink(context.Background(), p, l))
}

func TestSettleLinkEmbedNeedsNoProbe(t *testing.T) {
	l := &models.Link{URL: "https://example.com", EmbedHTML: "<iframe></iframe>"}
	p := &scriptedProber{failures: map[string]bool{l.URL: true}}

	assert.Equal(t, LinkTryingEmbed, SettleLink(context.Background(), p, l))
}

func TestSettleImage(t *testing.T) {
	img := &models.Image{URL: "https://example.com/a.png"}

	ok := &scriptedProber{failures: map[string]bool{}}
	assert.False(t, SettleImage(context.Background(), ok, img).ImageFailed)

	bad := &scriptedProber{failures: map[string]bool{img.URL: true}}
	assert.True(t, SettleImage(context.Background(), bad, img).ImageFailed)
}
