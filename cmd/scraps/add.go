// ABOUTME: Add command for saving new scraps to the board.
// ABOUTME: One subcommand per scrap type; note and code support file or $EDITOR input.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a scrap",
	Long:  `Save a new scrap to the board. Pick the subcommand matching the content type.`,
}

var addNoteCmd = &cobra.Command{
	Use:   "note [content]",
	Short: "Add a note scrap",
	Long:  `Save a text note. Content can be given inline, via --file, or through $EDITOR.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var inline string
		if len(args) == 1 {
			inline = args[0]
		}
		content, err := readBody(cmd, inline)
		if err != nil {
			return err
		}

		return addScrap(cmd, models.NewNoteDraft(content))
	},
}

var addImageCmd = &cobra.Command{
	Use:   "image <url>",
	Short: "Add an image scrap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		return addScrap(cmd, models.NewImageDraft(args[0], title))
	},
}

var addLinkCmd = &cobra.Command{
	Use:   "link <url>",
	Short: "Add a link scrap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		return addScrap(cmd, models.NewLinkDraft(args[0], title))
	},
}

var addCodeCmd = &cobra.Command{
	Use:   "code [snippet]",
	Short: "Add a code scrap",
	Long:  `Save a code snippet. The snippet can be given inline, via --file, or through $EDITOR.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")

		var inline string
		if len(args) == 1 {
			inline = args[0]
		}
		code, err := readBody(cmd, inline)
		if err != nil {
			return err
		}

		return addScrap(cmd, models.NewCodeDraft(language, code))
	},
}

func addScrap(cmd *cobra.Command, draft models.Draft) error {
	scrap, err := brd.Add(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to add scrap: %w", err)
	}

	fmt.Println(ui.Success(fmt.Sprintf("Created %s scrap %s", scrap.Type, scrap.ID.String()[:6])))
	return nil
}

// readBody resolves the scrap body from an inline argument, --file, or
// $EDITOR, in that order.
func readBody(cmd *cobra.Command, inline string) (string, error) {
	if inline != "" {
		return inline, nil
	}

	fileFlag, _ := cmd.Flags().GetString("file")
	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	content, err := openEditor("")
	if err != nil {
		return "", fmt.Errorf("failed to open editor: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("content cannot be empty")
	}
	return content, nil
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "scraps-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	addNoteCmd.Flags().String("file", "", "read content from file")
	addImageCmd.Flags().String("title", "", "display title")
	addLinkCmd.Flags().String("title", "", "display title")
	addCodeCmd.Flags().String("language", "", "syntax highlighting language")
	addCodeCmd.Flags().String("file", "", "read snippet from file")

	addCmd.AddCommand(addNoteCmd, addImageCmd, addLinkCmd, addCodeCmd)
	rootCmd.AddCommand(addCmd)
}
