package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"testing"

	"github.com/bft-labs/lineship/internal/domain"
	"github.com/bft-labs/lineship/internal/testutil"
)

func collect(t *testing.T, a *Assembler) [][]string {
	t.Helper()
	var out [][]string
	for {
		b, err := a.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		recs := make([]string, 0, b.Size())
		for _, r := range b.Records {
			recs = append(recs, string(r))
		}
		out = append(out, recs)
	}
}

func lines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("line-%d", i)
	}
	return out
}

func TestAssembler_BatchShapes(t *testing.T) {
	tests := []struct {
		name      string
		records   int
		batchSize int
		wantSizes []int
	}{
		{"empty source", 0, 3, nil},
		{"single record", 1, 3, []int{1}},
		{"exact multiple", 6, 3, []int{3, 3}},
		{"short final batch", 7, 3, []int{3, 3, 1}},
		{"batch size one", 3, 1, []int{1, 1, 1}},
		{"batch larger than input", 2, 100, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := lines(tt.records)
			a, err := NewAssembler(testutil.NewSliceSource(input...), tt.batchSize)
			if err != nil {
				t.Fatalf("NewAssembler() error = %v", err)
			}

			batches := collect(t, a)

			var sizes []int
			var flat []string
			for _, b := range batches {
				sizes = append(sizes, len(b))
				flat = append(flat, b...)
			}
			if !reflect.DeepEqual(sizes, tt.wantSizes) {
				t.Errorf("batch sizes = %v, want %v", sizes, tt.wantSizes)
			}
			if tt.records > 0 && !reflect.DeepEqual(flat, input) {
				t.Errorf("concatenated batches = %v, want %v", flat, input)
			}
		})
	}
}

func TestAssembler_Properties(t *testing.T) {
	for records := 1; records <= 25; records++ {
		for size := 1; size <= 8; size++ {
			input := lines(records)
			a, err := NewAssembler(testutil.NewSliceSource(input...), size)
			if err != nil {
				t.Fatalf("NewAssembler() error = %v", err)
			}
			batches := collect(t, a)

			var flat []string
			for i, b := range batches {
				if len(b) == 0 {
					t.Fatalf("records=%d size=%d: batch %d is empty", records, size, i)
				}
				if i < len(batches)-1 && len(b) != size {
					t.Fatalf("records=%d size=%d: batch %d has %d records", records, size, i, len(b))
				}
				if len(b) > size {
					t.Fatalf("records=%d size=%d: batch %d exceeds size", records, size, i)
				}
				flat = append(flat, b...)
			}
			if !reflect.DeepEqual(flat, input) {
				t.Fatalf("records=%d size=%d: order not preserved", records, size)
			}
		}
	}
}

func TestAssembler_EOFIsSticky(t *testing.T) {
	a, err := NewAssembler(testutil.NewSliceSource("a"), 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Next(context.Background()); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := a.Next(context.Background()); !errors.Is(err, io.EOF) {
			t.Fatalf("Next() after exhaustion error = %v, want io.EOF", err)
		}
	}
}

func TestAssembler_PropagatesSourceError(t *testing.T) {
	readErr := errors.New("disk gone")
	src := testutil.NewSliceSource("a", "b", "c", "d")
	src.FailAt = 3
	src.Err = readErr

	a, err := NewAssembler(src, 2)
	if err != nil {
		t.Fatal(err)
	}

	if b, err := a.Next(context.Background()); err != nil || b.Size() != 2 {
		t.Fatalf("first Next() = %v, %v", b, err)
	}
	if _, err := a.Next(context.Background()); !errors.Is(err, readErr) {
		t.Fatalf("Next() error = %v, want %v", err, readErr)
	}
}

func TestNewAssembler_RejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewAssembler(testutil.NewSliceSource(), size); !errors.Is(err, domain.ErrConfig) {
			t.Errorf("NewAssembler(size=%d) error = %v, want ErrConfig", size, err)
		}
	}
}

func TestAssembler_HugeBatchSize(t *testing.T) {
	for _, size := range []int{math.MaxInt32, math.MaxInt} {
		a, err := NewAssembler(testutil.NewSliceSource("a", "b", "c"), size)
		if err != nil {
			t.Fatalf("NewAssembler(size=%d) error = %v", size, err)
		}
		got := collect(t, a)
		want := [][]string{{"a", "b", "c"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("size=%d: batches = %v, want %v", size, got, want)
		}
	}
}

func TestAssembler_GrowsPastPrealloc(t *testing.T) {
	input := lines(maxPrealloc + 500)
	a, err := NewAssembler(testutil.NewSliceSource(input...), maxPrealloc+100)
	if err != nil {
		t.Fatal(err)
	}
	got := collect(t, a)
	if len(got) != 2 || len(got[0]) != maxPrealloc+100 || len(got[1]) != 400 {
		t.Fatalf("batch sizes = %d batches, want [%d 400]", len(got), maxPrealloc+100)
	}
	if got[1][399] != input[len(input)-1] {
		t.Errorf("last record = %q, want %q", got[1][399], input[len(input)-1])
	}
}
