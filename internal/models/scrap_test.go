// ABOUTME: Tests for the Scrap tagged union and its wire codec.
// ABOUTME: Validates the one-payload-per-type invariant and JSON round trips.

package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateMatchingPayload(t *testing.T) {
	s := Scrap{
		ID:        uuid.New(),
		UserID:    "user-1",
		Type:      TypeNote,
		CreatedAt: time.Now(),
		Note:      &Note{Content: "hello"},
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid scrap, got %v", err)
	}
}

func TestValidateRejectsMismatchedPayload(t *testing.T) {
	s := Scrap{
		ID:   uuid.New(),
		Type: TypeNote,
		Code: &Code{Code: "fmt.Println()"},
	}
	err := s.Validate()
	if !errors.Is(err, ErrInvalidScrap) {
		t.Errorf("expected ErrInvalidScrap, got %v", err)
	}
}

func TestValidateRejectsMultiplePayloads(t *testing.T) {
	s := Scrap{
		ID:    uuid.New(),
		Type:  TypeImage,
		Image: &Image{URL: "https://example.com/a.png"},
		Note:  &Note{Content: "extra"},
	}
	if err := s.Validate(); !errors.Is(err, ErrInvalidScrap) {
		t.Errorf("expected ErrInvalidScrap, got %v", err)
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	s := Scrap{ID: uuid.New(), Type: "gif", Note: &Note{Content: "x"}}
	if err := s.Validate(); !errors.Is(err, ErrInvalidScrap) {
		t.Errorf("expected ErrInvalidScrap, got %v", err)
	}
}

func TestWireRoundTripLink(t *testing.T) {
	orig := Scrap{
		ID:        uuid.New(),
		UserID:    "user-1",
		Type:      TypeLink,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Link: &Link{
			URL:          "https://example.com/post",
			Title:        "A post",
			PreviewImage: "https://example.com/preview.jpg",
			Meta: &LinkMeta{
				Title:  "Example Post",
				Rating: "4.5",
				Tags:   []string{"go", "sync"},
			},
		},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Scrap
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ID != orig.ID || got.UserID != orig.UserID || got.Type != orig.Type {
		t.Errorf("header mismatch: got %+v", got)
	}
	if got.Link == nil || got.Link.URL != orig.Link.URL {
		t.Fatalf("link payload lost: %+v", got.Link)
	}
	if got.Link.Meta == nil || got.Link.Meta.Title != "Example Post" {
		t.Errorf("metadata lost: %+v", got.Link.Meta)
	}
	if got.Note != nil || got.Image != nil || got.Code != nil {
		t.Error("unexpected extra payloads after decode")
	}
}

func TestWireUnknownTypeKeepsNoPayload(t *testing.T) {
	raw := []byte(`{"id":"` + uuid.NewString() + `","user_id":"u","type":"gif","created_at":"2025-01-02T03:04:05Z"}`)

	var got Scrap
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Note != nil || got.Image != nil || got.Link != nil || got.Code != nil {
		t.Error("expected no payload for unknown type")
	}
}

func TestTitleFallbacks(t *testing.T) {
	cases := []struct {
		name  string
		scrap Scrap
		want  string
	}{
		{"note", Scrap{Type: TypeNote, Note: &Note{Content: "x"}}, "Note"},
		{"image with title", Scrap{Type: TypeImage, Image: &Image{URL: "u", Title: "Sunset"}}, "Sunset"},
		{"link with title", Scrap{Type: TypeLink, Link: &Link{URL: "u", Title: "Docs"}}, "Docs"},
		{"link without title", Scrap{Type: TypeLink, Link: &Link{URL: "https://x.test"}}, "https://x.test"},
		{"code", Scrap{Type: TypeCode, Code: &Code{Language: "go", Code: "x"}}, "go"},
	}

	for _, tc := range cases {
		if got := tc.scrap.Title(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
