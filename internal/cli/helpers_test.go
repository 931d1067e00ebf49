package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vvka-141/babynames/internal/testing/fixtures"
)

// writeSourceTree creates <root>/<year>/girl_boy_names_*.csv files on disk.
func writeSourceTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}
	return root
}

func sampleTree(t *testing.T) string {
	return writeSourceTree(t, map[string]string{
		"2020/girl_boy_names_2020.csv": fixtures.RankingCSV(
			fixtures.Row(1, "Emma", "Liam"),
			fixtures.Row(2, "Olivia", "Noah"),
		),
		"2021/girl_boy_names_2021.csv": fixtures.RankingCSV(
			fixtures.Row(1, "Olivia", "Liam"),
			fixtures.Row(2, "Ava", ""),
		),
		"2021/girl_boy_names_broken.csv": "Rank,Girl Name,Boy Name\none,Mia,Leo\n",
	})
}
