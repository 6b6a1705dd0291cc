package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPreviewText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "semaine_36.md")
	content := "## Lundi 02 septembre\n\n- 8h30-9h25 - s213 - 2nde 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "semaine_37.md")

	got := previewText([]string{path, missing})

	if !strings.Contains(got, "--- "+path+" ---") {
		t.Errorf("preview misses the file header:\n%s", got)
	}
	if !strings.Contains(got, content) {
		t.Errorf("preview misses the file content:\n%s", got)
	}
	if !strings.Contains(got, "--- "+missing+" ---") || !strings.Contains(got, "unreadable") {
		t.Errorf("preview must report unreadable files:\n%s", got)
	}
}
