// ABOUTME: Tests for Draft constructors and validation.
// ABOUTME: Covers per-type required fields and trimming behavior.

package models

import (
	"errors"
	"testing"
)

func TestDraftConstructors(t *testing.T) {
	d := NewNoteDraft("  hello  ")
	if d.Type != TypeNote || d.Note == nil || d.Note.Content != "hello" {
		t.Errorf("unexpected note draft: %+v", d)
	}

	d = NewLinkDraft(" https://example.com ", " Title ")
	if d.Link == nil || d.Link.URL != "https://example.com" || d.Link.Title != "Title" {
		t.Errorf("unexpected link draft: %+v", d)
	}
}

func TestDraftValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		ok    bool
	}{
		{"valid note", NewNoteDraft("content"), true},
		{"empty note", NewNoteDraft("   "), false},
		{"valid image", NewImageDraft("https://x.test/a.png", ""), true},
		{"empty image url", NewImageDraft("", "title"), false},
		{"valid link", NewLinkDraft("https://x.test", ""), true},
		{"empty link url", NewLinkDraft("", ""), false},
		{"valid code", NewCodeDraft("", "print(1)"), true},
		{"empty code", NewCodeDraft("python", "  "), false},
	}

	for _, tc := range cases {
		err := tc.draft.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidScrap) {
			t.Errorf("%s: expected ErrInvalidScrap, got %v", tc.name, err)
		}
	}
}

func TestMaterializeCarriesPayload(t *testing.T) {
	d := NewCodeDraft("go", "fmt.Println(42)")
	s := d.Materialize("user-9")

	if s.UserID != "user-9" || s.Type != TypeCode {
		t.Errorf("unexpected scrap header: %+v", s)
	}
	if s.Code == nil || s.Code.Language != "go" {
		t.Errorf("payload not carried: %+v", s.Code)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("materialized scrap should validate: %v", err)
	}
}
