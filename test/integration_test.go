// ABOUTME: Integration tests for scraps CLI commands.
// ABOUTME: Tests full workflow from add to delete against the local backend.

package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

var scrapsBin string

func TestMain(m *testing.M) {
	// Build scraps binary
	cmd := exec.Command("go", "build", "-o", "bin/scraps", "./cmd/scraps")
	cmd.Dir = ".."
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	wd, _ := os.Getwd()
	scrapsBin = filepath.Join(wd, "..", "bin", "scraps")

	os.Exit(m.Run())
}

func TestAddListShowDelete(t *testing.T) {
	home := t.TempDir()

	// Add a note
	out, err := runScraps(home, "add", "note", "Test content here")
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Created note scrap") {
		t.Errorf("expected 'Created note scrap' in output: %s", out)
	}

	// List scraps
	out, err = runScraps(home, "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Test content here") {
		t.Errorf("expected note content in list: %s", out)
	}

	// Extract ID prefix from list output
	lines := strings.Split(out, "\n")
	var idPrefix string
	for _, line := range lines {
		if strings.Contains(line, "Test content") {
			fields := strings.Fields(line)
			if len(fields) > 0 && len(fields[0]) == 6 {
				idPrefix = fields[0]
				break
			}
		}
	}

	if idPrefix == "" {
		t.Fatal("could not extract ID prefix")
	}

	// Show scrap
	out, err = runScraps(home, "show", idPrefix)
	if err != nil {
		t.Fatalf("show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Test content") {
		t.Errorf("expected 'Test content' in show: %s", out)
	}

	// Delete scrap
	out, err = runScraps(home, "rm", idPrefix, "--force")
	if err != nil {
		t.Fatalf("rm failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Deleted") {
		t.Errorf("expected 'Deleted' in output: %s", out)
	}

	// Board is empty again
	out, _ = runScraps(home, "list")
	if !strings.Contains(out, "No scraps yet") {
		t.Errorf("expected empty-board message: %s", out)
	}
}

func TestTypeFilter(t *testing.T) {
	home := t.TempDir()

	_, _ = runScraps(home, "add", "note", "a note body")
	_, _ = runScraps(home, "add", "link", "https://example.com/article")

	out, _ := runScraps(home, "list", "--type", "link")
	if !strings.Contains(out, "example.com/article") {
		t.Errorf("expected link in filtered list: %s", out)
	}
	if strings.Contains(out, "a note body") {
		t.Errorf("did not expect note in link filter: %s", out)
	}
}

func TestWhoamiIsStable(t *testing.T) {
	home := t.TempDir()

	first, err := runScraps(home, "whoami")
	if err != nil {
		t.Fatalf("whoami failed: %v\n%s", err, first)
	}
	if _, err := uuid.Parse(strings.TrimSpace(first)); err != nil {
		t.Errorf("expected UUID from whoami: %s", first)
	}

	second, _ := runScraps(home, "whoami")
	if first != second {
		t.Errorf("identifier changed between runs: %q vs %q", first, second)
	}
}

func TestExportJSON(t *testing.T) {
	home := t.TempDir()

	_, _ = runScraps(home, "add", "code", "--language", "go", "fmt.Println()")

	outFile := filepath.Join(home, "export.json")
	out, err := runScraps(home, "export", "--format", "json", "--output", outFile)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "fmt.Println()") {
		t.Errorf("expected code in export: %s", data)
	}
}

// runScraps invokes the binary with config and data isolated under home.
func runScraps(home string, args ...string) (string, error) {
	cmd := exec.Command(scrapsBin, args...) //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(home, "config"),
		"XDG_DATA_HOME="+filepath.Join(home, "data"),
		"NO_COLOR=1",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
