// ABOUTME: Import command for restoring scraps from a JSON export.
// ABOUTME: Each imported scrap is inserted fresh under the current identifier.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import scraps",
	Long:  `Import scraps from a JSON export file. Records get new IDs and timestamps under your current identifier.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0]) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		var export ExportData
		if err := json.Unmarshal(data, &export); err != nil {
			return fmt.Errorf("failed to parse import file: %w", err)
		}

		imported := 0
		for _, e := range export.Scraps {
			draft, err := draftFromExport(e)
			if err != nil {
				fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("skipping %s: %v", e.ID, err)))
				continue
			}
			if _, err := brd.Add(cmd.Context(), draft); err != nil {
				fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("skipping %s: %v", e.ID, err)))
				continue
			}
			imported++
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d of %d scraps", imported, len(export.Scraps))))
		return nil
	},
}

func draftFromExport(e ExportScrap) (models.Draft, error) {
	switch models.Type(e.Type) {
	case models.TypeNote:
		return models.NewNoteDraft(e.Content), nil
	case models.TypeImage:
		return models.NewImageDraft(e.ImageURL, e.ImageTitle), nil
	case models.TypeLink:
		draft := models.NewLinkDraft(e.URL, e.Title)
		draft.Link.PreviewImage = e.PreviewImage
		draft.Link.EmbedHTML = e.EmbedHTML
		if e.MetaTitle != "" {
			draft.Link.Meta = &models.LinkMeta{
				Title:  e.MetaTitle,
				Rating: e.MetaRating,
				Tags:   e.MetaTags,
			}
		}
		return draft, nil
	case models.TypeCode:
		return models.NewCodeDraft(e.Language, e.Code), nil
	}
	return models.Draft{}, fmt.Errorf("unknown scrap type: %s", e.Type)
}

func init() {
	rootCmd.AddCommand(importCmd)
}
