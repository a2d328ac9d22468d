// ABOUTME: Scrap model: a tagged union over note, image, link, and code payloads.
// ABOUTME: Exactly one payload is populated, matching the scrap's declared type.

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type identifies which payload a scrap carries.
type Type string

const (
	TypeNote  Type = "note"
	TypeImage Type = "image"
	TypeLink  Type = "link"
	TypeCode  Type = "code"
)

var ErrInvalidScrap = errors.New("invalid scrap")

// Known reports whether t is one of the four scrap types.
func (t Type) Known() bool {
	switch t {
	case TypeNote, TypeImage, TypeLink, TypeCode:
		return true
	}
	return false
}

// Note is free-form text content.
type Note struct {
	Content string `json:"content"`
}

// Image is a remote image with an optional caption.
type Image struct {
	URL   string `json:"image_url"`
	Title string `json:"image_title,omitempty"`
}

// LinkMeta is structured metadata fetched for a link (title, rating, tags).
type LinkMeta struct {
	Title  string   `json:"meta_title"`
	Rating string   `json:"meta_rating,omitempty"`
	Tags   []string `json:"meta_tags,omitempty"`
}

// Link is a saved URL plus whatever preview material was captured for it.
type Link struct {
	URL          string    `json:"url"`
	Title        string    `json:"title,omitempty"`
	PreviewImage string    `json:"preview_image,omitempty"`
	EmbedHTML    string    `json:"embed_html,omitempty"`
	Meta         *LinkMeta `json:"meta,omitempty"`
}

// Code is a source snippet with an optional language hint.
type Code struct {
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

// Scrap is one saved curation item. ID and CreatedAt are server-assigned
// and immutable; exactly one payload pointer is non-nil, matching Type.
type Scrap struct {
	ID        uuid.UUID
	UserID    string
	Type      Type
	CreatedAt time.Time

	Note  *Note
	Image *Image
	Link  *Link
	Code  *Code
}

// Validate checks the one-payload-per-type invariant.
func (s *Scrap) Validate() error {
	return validatePayloads(s.Type, s.Note, s.Image, s.Link, s.Code)
}

func validatePayloads(t Type, note *Note, image *Image, link *Link, code *Code) error {
	if !t.Known() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidScrap, t)
	}

	count := 0
	for _, set := range []bool{note != nil, image != nil, link != nil, code != nil} {
		if set {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("%w: %d payloads populated, want exactly 1", ErrInvalidScrap, count)
	}

	var match bool
	switch t {
	case TypeNote:
		match = note != nil
	case TypeImage:
		match = image != nil
	case TypeLink:
		match = link != nil
	case TypeCode:
		match = code != nil
	}
	if !match {
		return fmt.Errorf("%w: payload does not match type %q", ErrInvalidScrap, t)
	}
	return nil
}

// Title returns the best display title for the scrap.
func (s *Scrap) Title() string {
	switch {
	case s.Image != nil && s.Image.Title != "":
		return s.Image.Title
	case s.Link != nil && s.Link.Title != "":
		return s.Link.Title
	case s.Link != nil:
		return s.Link.URL
	case s.Code != nil && s.Code.Language != "":
		return s.Code.Language
	}
	if s.Type.Known() {
		return string(s.Type[0]-'a'+'A') + string(s.Type[1:])
	}
	return string(s.Type)
}

// wireScrap is the flat record shape used by the remote store, with every
// type-specific column nullable.
type wireScrap struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      string     `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
	Content   *string    `json:"content,omitempty"`
	ImageURL  *string    `json:"image_url,omitempty"`
	ImgTitle  *string    `json:"image_title,omitempty"`
	URL       *string    `json:"url,omitempty"`
	Title     *string    `json:"title,omitempty"`
	Preview   *string    `json:"preview_image,omitempty"`
	EmbedHTML *string    `json:"embed_html,omitempty"`
	MetaTitle *string    `json:"meta_title,omitempty"`
	MetaScore *string    `json:"meta_rating,omitempty"`
	MetaTags  []string   `json:"meta_tags,omitempty"`
	Language  *string    `json:"language,omitempty"`
	Code      *string    `json:"code,omitempty"`
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// MarshalJSON encodes the scrap as a flat wire record.
func (s Scrap) MarshalJSON() ([]byte, error) {
	w := wireScrap{
		ID:        s.ID.String(),
		UserID:    s.UserID,
		Type:      string(s.Type),
		CreatedAt: s.CreatedAt,
	}
	switch {
	case s.Note != nil:
		w.Content = &s.Note.Content
	case s.Image != nil:
		w.ImageURL = &s.Image.URL
		w.ImgTitle = strPtr(s.Image.Title)
	case s.Link != nil:
		w.URL = &s.Link.URL
		w.Title = strPtr(s.Link.Title)
		w.Preview = strPtr(s.Link.PreviewImage)
		w.EmbedHTML = strPtr(s.Link.EmbedHTML)
		if s.Link.Meta != nil {
			w.MetaTitle = strPtr(s.Link.Meta.Title)
			w.MetaScore = strPtr(s.Link.Meta.Rating)
			w.MetaTags = s.Link.Meta.Tags
		}
	case s.Code != nil:
		w.Language = strPtr(s.Code.Language)
		w.Code = &s.Code.Code
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a flat wire record into the tagged union.
func (s *Scrap) UnmarshalJSON(data []byte) error {
	var w wireScrap
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := uuid.Parse(w.ID)
	if err != nil {
		return fmt.Errorf("parse scrap ID: %w", err)
	}

	*s = Scrap{
		ID:        id,
		UserID:    w.UserID,
		Type:      Type(w.Type),
		CreatedAt: w.CreatedAt,
	}
	switch s.Type {
	case TypeNote:
		s.Note = &Note{Content: deref(w.Content)}
	case TypeImage:
		s.Image = &Image{URL: deref(w.ImageURL), Title: deref(w.ImgTitle)}
	case TypeLink:
		s.Link = &Link{
			URL:          deref(w.URL),
			Title:        deref(w.Title),
			PreviewImage: deref(w.Preview),
			EmbedHTML:    deref(w.EmbedHTML),
		}
		if w.MetaTitle != nil {
			s.Link.Meta = &LinkMeta{
				Title:  deref(w.MetaTitle),
				Rating: deref(w.MetaScore),
				Tags:   w.MetaTags,
			}
		}
	case TypeCode:
		s.Code = &Code{Language: deref(w.Language), Code: deref(w.Code)}
	}
	// Unknown types keep all payloads nil; the renderer shows nothing for them.
	return nil
}
