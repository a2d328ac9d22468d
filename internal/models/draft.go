// ABOUTME: Draft is the form-submission shape for a new scrap.
// ABOUTME: Carries only the fields relevant to its type; server assigns id and timestamp.

package models

import "strings"

// Draft holds the fields submitted for a new scrap, before the store has
// assigned an ID and creation timestamp.
type Draft struct {
	Type Type

	Note  *Note
	Image *Image
	Link  *Link
	Code  *Code
}

// NewNoteDraft builds a note draft from raw text.
func NewNoteDraft(content string) Draft {
	return Draft{Type: TypeNote, Note: &Note{Content: strings.TrimSpace(content)}}
}

// NewImageDraft builds an image draft.
func NewImageDraft(url, title string) Draft {
	return Draft{Type: TypeImage, Image: &Image{URL: strings.TrimSpace(url), Title: strings.TrimSpace(title)}}
}

// NewLinkDraft builds a link draft.
func NewLinkDraft(url, title string) Draft {
	return Draft{Type: TypeLink, Link: &Link{URL: strings.TrimSpace(url), Title: strings.TrimSpace(title)}}
}

// NewCodeDraft builds a code draft. The language hint may be empty.
func NewCodeDraft(language, code string) Draft {
	return Draft{Type: TypeCode, Code: &Code{Language: strings.TrimSpace(language), Code: code}}
}

// Validate checks the one-payload-per-type invariant and that the
// required field for the type is non-empty.
func (d *Draft) Validate() error {
	if err := validatePayloads(d.Type, d.Note, d.Image, d.Link, d.Code); err != nil {
		return err
	}

	switch d.Type {
	case TypeNote:
		if strings.TrimSpace(d.Note.Content) == "" {
			return errEmptyField("content")
		}
	case TypeImage:
		if d.Image.URL == "" {
			return errEmptyField("image url")
		}
	case TypeLink:
		if d.Link.URL == "" {
			return errEmptyField("link url")
		}
	case TypeCode:
		if strings.TrimSpace(d.Code.Code) == "" {
			return errEmptyField("code")
		}
	}
	return nil
}

func errEmptyField(name string) error {
	return &emptyFieldError{field: name}
}

type emptyFieldError struct {
	field string
}

func (e *emptyFieldError) Error() string {
	return "scrap " + e.field + " cannot be empty"
}

func (e *emptyFieldError) Unwrap() error {
	return ErrInvalidScrap
}

// Materialize copies the draft's payload onto a scrap owned by userID.
// The store fills in ID and CreatedAt.
func (d *Draft) Materialize(userID string) Scrap {
	return Scrap{
		UserID: userID,
		Type:   d.Type,
		Note:   d.Note,
		Image:  d.Image,
		Link:   d.Link,
		Code:   d.Code,
	}
}
