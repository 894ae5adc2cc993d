package autocert

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestZipFiles(t *testing.T) {
	dir := t.TempDir()

	var files []string
	for _, name := range []string{"John Doe-Certificate-aaaaaa.pdf", "Jane Smith-Certificate-bbbbbb.pdf"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("%PDF "+name), 0644); err != nil {
			t.Fatal(err)
		}
		files = append(files, path)
	}

	zipPath := filepath.Join(t.TempDir(), "certificates.zip")
	if err := ZipFiles(files, zipPath); err != nil {
		t.Fatalf("ZipFiles failed: %v", err)
	}

	archive, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer archive.Close()

	var names []string
	for _, f := range archive.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)

	expected := []string{"Jane Smith-Certificate-bbbbbb.pdf", "John Doe-Certificate-aaaaaa.pdf"}
	if len(names) != len(expected) || names[0] != expected[0] || names[1] != expected[1] {
		t.Errorf("expected %v, got %v", expected, names)
	}
}
