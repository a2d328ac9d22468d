// ABOUTME: Resolver maps one scrap to a render variant, with no side effects.
// ABOUTME: Link scraps walk an explicit fallback state machine on image failures.

package render

import (
	"strings"

	"github.com/harper/scraps/internal/models"
)

// Variant is the closed set of presentation outcomes for one scrap.
type Variant string

const (
	VariantNone             Variant = "none"
	VariantNote             Variant = "note"
	VariantImage            Variant = "image"
	VariantImagePlaceholder Variant = "image_placeholder"
	VariantCode             Variant = "code"
	VariantLinkDirectImage  Variant = "link_direct_image"
	VariantLinkEmbed        Variant = "link_embed"
	VariantLinkMetadata     Variant = "link_metadata"
	VariantLinkPreview      Variant = "link_preview"
	VariantLinkPlain        Variant = "link_plain"
)

// LinkState is the position in the link fallback chain. Image-bearing
// states can fail asynchronously and advance; the rest are settled.
type LinkState int

const (
	LinkUnattempted LinkState = iota
	LinkTryingDirectImage
	LinkTryingEmbed
	LinkTryingMetadata
	LinkTryingPreview
	LinkPlain
)

func (st LinkState) String() string {
	switch st {
	case LinkUnattempted:
		return "unattempted"
	case LinkTryingDirectImage:
		return "direct-image"
	case LinkTryingEmbed:
		return "embed"
	case LinkTryingMetadata:
		return "metadata"
	case LinkTryingPreview:
		return "preview"
	case LinkPlain:
		return "plain"
	}
	return "unknown"
}

// Settled reports whether the state needs no asynchronous load to confirm.
func (st LinkState) Settled() bool {
	switch st {
	case LinkTryingEmbed, LinkTryingMetadata, LinkPlain:
		return true
	}
	return false
}

const (
	// NoteClampLines is how many note lines a card shows before clamping.
	NoteClampLines = 6
	// CodeClampLines is how many code lines a card shows before clamping.
	CodeClampLines = 10
)

// Flags carries the transient per-render failure signals. It lives
// outside the scrap record; re-rendering with fresh flags retries the
// chain from the start.
type Flags struct {
	// ImageFailed marks that the image scrap's URL failed to load.
	ImageFailed bool
	// LinkState is the current position in the link fallback chain.
	// Zero value (LinkUnattempted) means nothing has been tried yet.
	LinkState LinkState
}

// Resolution is what the caller renders for one scrap.
type Resolution struct {
	Variant Variant
	// LinkState is the (possibly advanced) chain position for link scraps.
	LinkState LinkState
	// Expandable is set when a clamped note or code body has more lines
	// than the card shows.
	Expandable bool
	// CardClickable is set when clicking the whole card opens the detail
	// view. Links keep their own click targets instead.
	CardClickable bool
}

func hasEmbed(l *models.Link) bool {
	return l != nil && strings.TrimSpace(l.EmbedHTML) != ""
}

func hasMeta(l *models.Link) bool {
	return l != nil && l.Meta != nil && strings.TrimSpace(l.Meta.Title) != ""
}

func hasPreview(l *models.Link) bool {
	return l != nil && strings.TrimSpace(l.PreviewImage) != ""
}

// firstLinkState picks the first step of the chain for a link scrap. The
// URL itself is only tried as an image when neither embed markup nor a
// metadata title is present.
func firstLinkState(l *models.Link) LinkState {
	switch {
	case !hasEmbed(l) && !hasMeta(l):
		return LinkTryingDirectImage
	case hasEmbed(l):
		return LinkTryingEmbed
	case hasMeta(l):
		return LinkTryingMetadata
	}
	return LinkPlain
}

// AdvanceLink moves the chain one step after the current attempt failed.
// LinkPlain is terminal and returns itself.
func AdvanceLink(l *models.Link, st LinkState) LinkState {
	switch st {
	case LinkUnattempted:
		return firstLinkState(l)
	case LinkTryingDirectImage:
		if hasEmbed(l) {
			return LinkTryingEmbed
		}
		fallthrough
	case LinkTryingEmbed:
		if hasMeta(l) {
			return LinkTryingMetadata
		}
		fallthrough
	case LinkTryingMetadata:
		if hasPreview(l) {
			return LinkTryingPreview
		}
		fallthrough
	case LinkTryingPreview:
		return LinkPlain
	}
	return LinkPlain
}

// Resolve computes the render variant for one scrap. It is a pure
// function of the record and the flags; a scrap whose type is unknown
// resolves to nothing rather than failing.
func Resolve(scrap models.Scrap, flags Flags) Resolution {
	switch scrap.Type {
	case models.TypeNote:
		if scrap.Note == nil {
			return Resolution{Variant: VariantNone}
		}
		return Resolution{
			Variant:       VariantNote,
			Expandable:    lineCount(scrap.Note.Content) > NoteClampLines,
			CardClickable: true,
		}

	case models.TypeImage:
		if scrap.Image == nil {
			return Resolution{Variant: VariantNone}
		}
		// A failed image never falls through to other fields.
		if flags.ImageFailed {
			return Resolution{Variant: VariantImagePlaceholder, CardClickable: true}
		}
		return Resolution{Variant: VariantImage, CardClickable: true}

	case models.TypeCode:
		if scrap.Code == nil {
			return Resolution{Variant: VariantNone}
		}
		return Resolution{
			Variant:       VariantCode,
			Expandable:    lineCount(scrap.Code.Code) > CodeClampLines,
			CardClickable: true,
		}

	case models.TypeLink:
		if scrap.Link == nil {
			return Resolution{Variant: VariantNone}
		}
		st := flags.LinkState
		if st == LinkUnattempted {
			st = firstLinkState(scrap.Link)
		}
		return Resolution{
			Variant:   linkVariant(st),
			LinkState: st,
		}
	}

	return Resolution{Variant: VariantNone}
}

func linkVariant(st LinkState) Variant {
	switch st {
	case LinkTryingDirectImage:
		return VariantLinkDirectImage
	case LinkTryingEmbed:
		return VariantLinkEmbed
	case LinkTryingMetadata:
		return VariantLinkMetadata
	case LinkTryingPreview:
		return VariantLinkPreview
	}
	return VariantLinkPlain
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// Clamp returns at most n lines of s and whether anything was cut.
func Clamp(s string, n int) (string, bool) {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s, false
	}
	return strings.Join(lines[:n], "\n"), true
}
