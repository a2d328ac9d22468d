// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates card layout, detail rendering, and fallbacks.

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/render"
)

func noteScrap(content string) models.Scrap {
	return models.Scrap{
		ID:        uuid.New(),
		UserID:    "u",
		Type:      models.TypeNote,
		CreatedAt: time.Now(),
		Note:      &models.Note{Content: content},
	}
}

func TestFormatCardNote(t *testing.T) {
	scrap := noteScrap("remember the milk")
	res := render.Resolve(scrap, render.Flags{})

	output := FormatCard(scrap, res)

	if !strings.Contains(output, scrap.ID.String()[:6]) {
		t.Error("expected output to contain ID prefix")
	}
	if !strings.Contains(output, "remember the milk") {
		t.Error("expected output to contain note content")
	}
}

func TestFormatCardClampsLongNote(t *testing.T) {
	scrap := noteScrap(strings.Repeat("line\n", render.NoteClampLines+4))
	res := render.Resolve(scrap, render.Flags{})

	output := FormatCard(scrap, res)

	if !strings.Contains(output, "show") {
		t.Error("expected expand affordance for clamped note")
	}
	if got := strings.Count(output, "line"); got > render.NoteClampLines {
		t.Errorf("expected at most %d content lines, got %d", render.NoteClampLines, got)
	}
}

func TestFormatCardImagePlaceholder(t *testing.T) {
	scrap := models.Scrap{
		ID:        uuid.New(),
		UserID:    "u",
		Type:      models.TypeImage,
		CreatedAt: time.Now(),
		Image:     &models.Image{URL: "https://example.com/gone.png"},
	}
	res := render.Resolve(scrap, render.Flags{ImageFailed: true})

	output := FormatCard(scrap, res)

	if !strings.Contains(output, "image not available") {
		t.Error("expected placeholder message")
	}
	if strings.Contains(output, "gone.png") {
		t.Error("failed image URL should not be shown as the body")
	}
}

func TestFormatCardLinkMetadata(t *testing.T) {
	scrap := models.Scrap{
		ID:        uuid.New(),
		UserID:    "u",
		Type:      models.TypeLink,
		CreatedAt: time.Now(),
		Link: &models.Link{
			URL:  "https://example.com/film",
			Meta: &models.LinkMeta{Title: "A Film", Rating: "8.1", Tags: []string{"drama", "classic"}},
		},
	}
	res := render.Resolve(scrap, render.Flags{})

	output := FormatCard(scrap, res)

	if !strings.Contains(output, "A Film") {
		t.Error("expected metadata title")
	}
	if !strings.Contains(output, "8.1") {
		t.Error("expected rating")
	}
	if !strings.Contains(output, "drama") {
		t.Error("expected tags")
	}
}

func TestFormatCardUnknownTypeIsEmpty(t *testing.T) {
	scrap := models.Scrap{ID: uuid.New(), UserID: "u", Type: models.Type("gif"), CreatedAt: time.Now()}
	res := render.Resolve(scrap, render.Flags{})

	if output := FormatCard(scrap, res); output != "" {
		t.Errorf("expected empty output for unknown type, got %q", output)
	}
}

func TestFormatDetailNote(t *testing.T) {
	scrap := noteScrap("# Hello\n\nThis is **bold** text.")
	res := render.Resolve(scrap, render.Flags{})

	output, err := FormatDetail(scrap, res, 80)
	if err != nil {
		t.Fatalf("failed to format detail: %v", err)
	}
	if output == "" {
		t.Error("expected non-empty output")
	}
	if !strings.Contains(output, scrap.ID.String()) {
		t.Error("expected full ID in detail header")
	}
}

func TestFormatDetailCode(t *testing.T) {
	scrap := models.Scrap{
		ID:        uuid.New(),
		UserID:    "u",
		Type:      models.TypeCode,
		CreatedAt: time.Now(),
		Code:      &models.Code{Language: "", Code: "echo hi"},
	}
	res := render.Resolve(scrap, render.Flags{})

	output, err := FormatDetail(scrap, res, 80)
	if err != nil {
		t.Fatalf("failed to format detail: %v", err)
	}
	if !strings.Contains(output, "text") {
		t.Error("expected plain-text language fallback label")
	}
}

func TestFormatMarkdown(t *testing.T) {
	output, err := FormatMarkdown("# Hello\n\nplain", 80)
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}
	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestFormatEmptyBoard(t *testing.T) {
	if !strings.Contains(FormatEmptyBoard(), "No scraps yet") {
		t.Error("expected empty-board message")
	}
}
