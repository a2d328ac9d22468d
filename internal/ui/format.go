// ABOUTME: Terminal UI formatting for scrap output.
// ABOUTME: Uses glamour for markdown, chroma for code, fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/render"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

const imagePlaceholder = "image not available"

// FormatCard renders the grid-card view of one scrap for the resolved
// variant. Variants that resolve to nothing produce an empty string.
func FormatCard(scrap models.Scrap, res render.Resolution) string {
	if res.Variant == render.VariantNone {
		return ""
	}

	var sb strings.Builder
	idPrefix := scrap.ID.String()[:6]
	sb.WriteString(fmt.Sprintf("  %s  %s %s\n",
		faint(idPrefix),
		bold(scrap.Title()),
		faint("["+string(scrap.Type)+"]")))

	body := cardBody(scrap, res)
	for _, line := range strings.Split(body, "\n") {
		sb.WriteString("         " + line + "\n")
	}
	if res.Expandable {
		sb.WriteString("         " + faint(fmt.Sprintf("… (show %s)", idPrefix)) + "\n")
	}

	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Added:"),
		faint(scrap.CreatedAt.Format("2006-01-02 15:04"))))

	return sb.String()
}

func cardBody(scrap models.Scrap, res render.Resolution) string {
	switch res.Variant {
	case render.VariantNote:
		clamped, _ := render.Clamp(scrap.Note.Content, render.NoteClampLines)
		return clamped

	case render.VariantImage:
		return cyan(scrap.Image.URL)
	case render.VariantImagePlaceholder:
		return faint(imagePlaceholder)

	case render.VariantCode:
		clamped, _ := render.Clamp(scrap.Code.Code, render.CodeClampLines)
		return highlight(clamped, scrap.Code.Language)

	case render.VariantLinkDirectImage, render.VariantLinkPreview:
		url := scrap.Link.URL
		if res.Variant == render.VariantLinkPreview {
			url = scrap.Link.PreviewImage
		}
		return cyan(url)
	case render.VariantLinkEmbed:
		return faint("[embed] ") + cyan(scrap.Link.URL)
	case render.VariantLinkMetadata:
		return metadataCard(scrap.Link)
	case render.VariantLinkPlain:
		return cyan(scrap.Link.URL)
	}
	return ""
}

// metadataCard lays out the structured metadata of a link scrap.
func metadataCard(l *models.Link) string {
	var sb strings.Builder
	sb.WriteString(bold(l.Meta.Title))
	if l.Meta.Rating != "" {
		sb.WriteString(faint(" ★ " + l.Meta.Rating))
	}
	sb.WriteString("\n")
	if len(l.Meta.Tags) > 0 {
		sb.WriteString(faint("Tags: ") + cyan(strings.Join(l.Meta.Tags, ", ")) + "\n")
	}
	sb.WriteString(cyan(l.URL))
	return sb.String()
}

// FormatDetail renders the enlarged view of one scrap with its full,
// unclamped content.
func FormatDetail(scrap models.Scrap, res render.Resolution, wordWrap int) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", bold(scrap.Title()), faint("["+string(scrap.Type)+"]")))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(scrap.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Added:"), faint(scrap.CreatedAt.Format("2006-01-02 15:04"))))
	sb.WriteString(Separator())

	switch scrap.Type {
	case models.TypeNote:
		out, err := FormatMarkdown(scrap.Note.Content, wordWrap)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)

	case models.TypeImage:
		if res.Variant == render.VariantImagePlaceholder {
			sb.WriteString(faint(imagePlaceholder) + "\n")
		} else {
			sb.WriteString(cyan(scrap.Image.URL) + "\n")
		}

	case models.TypeCode:
		lang := scrap.Code.Language
		if lang == "" {
			lang = "text"
		}
		sb.WriteString(faint(lang) + "\n")
		sb.WriteString(highlight(scrap.Code.Code, scrap.Code.Language) + "\n")

	case models.TypeLink:
		sb.WriteString(cardBody(scrap, res) + "\n")

	default:
		return "", fmt.Errorf("no detail view for type %q", scrap.Type)
	}

	return sb.String(), nil
}

// FormatMarkdown renders markdown for the terminal.
func FormatMarkdown(content string, wordWrap int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

// highlight syntax-colors code for the terminal, falling back to the raw
// text when the language is unknown or highlighting fails.
func highlight(code, language string) string {
	if language == "" {
		language = "text"
	}

	var sb strings.Builder
	if err := quick.Highlight(&sb, code, language, "terminal256", "monokai"); err != nil {
		return code
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatEmptyBoard is shown when the user has no scraps at all.
func FormatEmptyBoard() string {
	return faint("No scraps yet. Add one above!") + "\n"
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
