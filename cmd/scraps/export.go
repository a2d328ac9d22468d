// ABOUTME: Export command for backing up scraps.
// ABOUTME: Supports JSON and markdown-with-frontmatter export formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/scraps/internal/models"
)

type ExportScrap struct {
	ID           string    `json:"id" yaml:"id"`
	Type         string    `json:"type" yaml:"type"`
	CreatedAt    time.Time `json:"created_at" yaml:"created"`
	Content      string    `json:"content,omitempty" yaml:"content,omitempty"`
	ImageURL     string    `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	ImageTitle   string    `json:"image_title,omitempty" yaml:"image_title,omitempty"`
	URL          string    `json:"url,omitempty" yaml:"url,omitempty"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	PreviewImage string    `json:"preview_image,omitempty" yaml:"preview_image,omitempty"`
	EmbedHTML    string    `json:"embed_html,omitempty" yaml:"embed_html,omitempty"`
	MetaTitle    string    `json:"meta_title,omitempty" yaml:"meta_title,omitempty"`
	MetaRating   string    `json:"meta_rating,omitempty" yaml:"meta_rating,omitempty"`
	MetaTags     []string  `json:"meta_tags,omitempty" yaml:"meta_tags,omitempty"`
	Language     string    `json:"language,omitempty" yaml:"language,omitempty"`
	Code         string    `json:"code,omitempty" yaml:"code,omitempty"`
}

type ExportData struct {
	ExportedAt time.Time     `json:"exported_at"`
	Version    string        `json:"version"`
	Scraps     []ExportScrap `json:"scraps"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scraps",
	Long:  `Export scraps to JSON or markdown format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		prefix, _ := cmd.Flags().GetString("scrap")

		var scraps []models.Scrap
		if prefix != "" {
			scrap, err := st.GetByPrefix(cmd.Context(), userID, prefix)
			if err != nil {
				return fmt.Errorf("failed to get scrap: %w", err)
			}
			scraps = []models.Scrap{scrap}
		} else {
			scraps = brd.Scraps()
		}

		switch format {
		case "json":
			return exportJSON(scraps, outputPath)
		case "md":
			return exportMarkdown(scraps, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func toExport(scrap models.Scrap) ExportScrap {
	e := ExportScrap{
		ID:        scrap.ID.String(),
		Type:      string(scrap.Type),
		CreatedAt: scrap.CreatedAt,
	}
	switch scrap.Type {
	case models.TypeNote:
		e.Content = scrap.Note.Content
	case models.TypeImage:
		e.ImageURL = scrap.Image.URL
		e.ImageTitle = scrap.Image.Title
	case models.TypeLink:
		e.URL = scrap.Link.URL
		e.Title = scrap.Link.Title
		e.PreviewImage = scrap.Link.PreviewImage
		e.EmbedHTML = scrap.Link.EmbedHTML
		if scrap.Link.Meta != nil {
			e.MetaTitle = scrap.Link.Meta.Title
			e.MetaRating = scrap.Link.Meta.Rating
			e.MetaTags = scrap.Link.Meta.Tags
		}
	case models.TypeCode:
		e.Language = scrap.Code.Language
		e.Code = scrap.Code.Code
	}
	return e
}

func exportJSON(scraps []models.Scrap, outputPath string) error {
	export := ExportData{
		ExportedAt: time.Now(),
		Version:    "1.0",
	}
	for _, scrap := range scraps {
		export.Scraps = append(export.Scraps, toExport(scrap))
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported %d scraps to %s\n", len(export.Scraps), outputPath)
	return nil
}

// exportMarkdown writes one .md file per scrap with YAML frontmatter.
func exportMarkdown(scraps []models.Scrap, outputPath string) error {
	if outputPath == "" {
		outputPath = "."
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, scrap := range scraps {
		front, err := yaml.Marshal(toExport(scrap))
		if err != nil {
			return fmt.Errorf("failed to marshal frontmatter: %w", err)
		}

		var sb strings.Builder
		sb.WriteString("---\n")
		sb.Write(front)
		sb.WriteString("---\n\n")
		sb.WriteString(scrapBody(scrap))

		filename := filepath.Join(outputPath, scrap.ID.String()[:6]+".md")
		if err := os.WriteFile(filename, []byte(sb.String()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
	}

	fmt.Printf("Exported %d scraps to %s\n", len(scraps), outputPath)
	return nil
}

func scrapBody(scrap models.Scrap) string {
	switch scrap.Type {
	case models.TypeNote:
		return scrap.Note.Content + "\n"
	case models.TypeImage:
		return fmt.Sprintf("![%s](%s)\n", scrap.Image.Title, scrap.Image.URL)
	case models.TypeLink:
		return fmt.Sprintf("<%s>\n", scrap.Link.URL)
	case models.TypeCode:
		return fmt.Sprintf("```%s\n%s\n```\n", scrap.Code.Language, scrap.Code.Code)
	}
	return ""
}

func init() {
	exportCmd.Flags().String("format", "json", "export format (json or md)")
	exportCmd.Flags().String("output", "", "output file (json) or directory (md)")
	exportCmd.Flags().String("scrap", "", "export a single scrap by ID prefix")
	rootCmd.AddCommand(exportCmd)
}
