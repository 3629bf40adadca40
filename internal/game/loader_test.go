package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSymbols_SingleFile(t *testing.T) {
	path := createTempFile(t, "🐶\n🐱\n\n🐭\n")

	symbols, err := LoadSymbols([]string{path})
	if err != nil {
		t.Fatalf("LoadSymbols failed: %v", err)
	}

	want := []string{"🐶", "🐱", "🐭"}
	if len(symbols) != len(want) {
		t.Fatalf("Expected %d symbols, got %d: %v", len(want), len(symbols), symbols)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("Symbol %d: expected %q, got %q", i, want[i], symbols[i])
		}
	}
}

func TestLoadSymbols_CommentsAndSeparators(t *testing.T) {
	content := `# animals
  A
---
B
----------------
# trailing comment
C`
	path := createTempFile(t, content)

	symbols, err := LoadSymbols([]string{path})
	if err != nil {
		t.Fatalf("LoadSymbols failed: %v", err)
	}
	if len(symbols) != 3 || symbols[0] != "A" || symbols[1] != "B" || symbols[2] != "C" {
		t.Errorf("Unexpected symbols %q", symbols)
	}
}

func TestLoadSymbols_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("A\nB\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("C\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	symbols, err := LoadSymbols([]string{dir})
	if err != nil {
		t.Fatalf("LoadSymbols failed: %v", err)
	}
	if len(symbols) != 3 {
		t.Errorf("Expected 3 symbols, got %d: %v", len(symbols), symbols)
	}
}

func TestLoadSymbols_MissingPath(t *testing.T) {
	_, err := LoadSymbols([]string{filepath.Join(t.TempDir(), "nope.txt")})
	if err == nil {
		t.Error("Expected error for missing path")
	}
}

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbols.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
