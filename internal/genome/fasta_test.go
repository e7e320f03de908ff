package genome

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFasta(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.fasta")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fasta: %v", err)
	}
	return path
}

func TestReadFirstFASTA(t *testing.T) {
	path := writeFasta(t, ">seq1 test\natgatg\nTAA\n>seq2\nGGG\n")
	got, err := ReadFirstFASTA(path)
	if err != nil {
		t.Fatalf("read fasta: %v", err)
	}
	if got != "ATGATGTAA" {
		t.Fatalf("first sequence = %q, want %q", got, "ATGATGTAA")
	}
}

func TestReadFirstFASTANoHeader(t *testing.T) {
	path := writeFasta(t, "atgtaa\n")
	got, err := ReadFirstFASTA(path)
	if err != nil {
		t.Fatalf("read fasta: %v", err)
	}
	if got != "ATGTAA" {
		t.Fatalf("sequence = %q, want %q", got, "ATGTAA")
	}
}

func TestReadFirstFASTAEmpty(t *testing.T) {
	path := writeFasta(t, ">only a header\n")
	if _, err := ReadFirstFASTA(path); !errors.Is(err, ErrEmptyFASTA) {
		t.Fatalf("expected ErrEmptyFASTA, got %v", err)
	}
}

func TestReadFirstFASTAMissingFile(t *testing.T) {
	if _, err := ReadFirstFASTA(filepath.Join(t.TempDir(), "missing.fasta")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
