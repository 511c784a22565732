package fs

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/testutil"
)

func readAll(t *testing.T, src *LineFile) []string {
	t.Helper()
	var out []string
	for {
		r, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		out = append(out, string(r))
	}
}

func TestLineFile_Next(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty file", "", nil},
		{"lf terminated", "a\nb\nc\n", []string{"a", "b", "c"}},
		{"missing final newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"only newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, "events.log", tt.content)
			src, err := OpenLineFile(path, 0)
			if err != nil {
				t.Fatalf("OpenLineFile() error = %v", err)
			}
			defer src.Close()

			got := readAll(t, src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}

			n, err := CountLines(path, 0)
			if err != nil {
				t.Fatalf("CountLines() error = %v", err)
			}
			if n != len(tt.want) {
				t.Errorf("CountLines() = %d, want %d", n, len(tt.want))
			}
		})
	}
}

func TestLineFile_RecordsAreStable(t *testing.T) {
	path := testutil.WriteFile(t, "events.log", "first\nsecond\n")
	src, err := OpenLineFile(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	first, _ := src.Next(context.Background())
	if _, err := src.Next(context.Background()); err != nil {
		t.Fatal(err)
	}
	if string(first) != "first" {
		t.Errorf("first record changed to %q after reading the next line", first)
	}
}

func TestOpenLineFile_Missing(t *testing.T) {
	_, err := OpenLineFile(filepath.Join(t.TempDir(), "nope.log"), 0)
	if !errors.Is(err, domain.ErrSource) {
		t.Fatalf("OpenLineFile() error = %v, want ErrSource", err)
	}
}

func TestLineFile_LineTooLong(t *testing.T) {
	path := testutil.WriteFile(t, "events.log", "ok\n"+strings.Repeat("x", 100)+"\n")
	src, err := OpenLineFile(path, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	if r, err := src.Next(context.Background()); err != nil || string(r) != "ok" {
		t.Fatalf("Next() = %q, %v", r, err)
	}
	if _, err := src.Next(context.Background()); !errors.Is(err, domain.ErrSource) {
		t.Fatalf("Next() error = %v, want ErrSource", err)
	}
}
