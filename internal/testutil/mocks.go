// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bft-labs/lineship/internal/domain"
)

// SliceSource is an in-memory LineSource.
type SliceSource struct {
	Lines []string

	// FailAt makes Next return Err once this many records were read (when Err is set)
	FailAt int
	Err    error

	pos    int
	Closed bool
}

// NewSliceSource returns a source yielding lines in order.
func NewSliceSource(lines ...string) *SliceSource {
	return &SliceSource{Lines: lines}
}

func (s *SliceSource) Next(ctx context.Context) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil && s.pos == s.FailAt {
		return nil, s.Err
	}
	if s.pos >= len(s.Lines) {
		return nil, io.EOF
	}
	r := domain.Record(s.Lines[s.pos])
	s.pos++
	return r, nil
}

func (s *SliceSource) Close() error {
	s.Closed = true
	return nil
}

// MockSink records every frame it is given.
type MockSink struct {
	mu sync.Mutex

	Frames     [][]byte
	ShouldFail bool
	// FailAfter makes Send fail once this many frames were accepted (when ShouldFail is set)
	FailAfter int
	CloseErr  error
	Closed    bool
	SinkKind  domain.TransportKind
}

func (m *MockSink) Send(ctx context.Context, frame domain.Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return domain.ErrSessionClosed
	}
	if m.ShouldFail && len(m.Frames) >= m.FailAfter {
		return errors.Join(domain.ErrTransport, errors.New("mock send failed"))
	}
	m.Frames = append(m.Frames, append([]byte(nil), frame...))
	return nil
}

func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.CloseErr
}

func (m *MockSink) Kind() domain.TransportKind {
	return m.SinkKind
}

// GetFrames returns a copy of the accepted frames.
func (m *MockSink) GetFrames() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.Frames...)
}

// Lines splits newline-delimited payloads back into records.
func Lines(payloads ...[]byte) []string {
	var out []string
	for _, p := range payloads {
		s := strings.TrimSuffix(string(p), "\n")
		if s == "" && len(p) == 0 {
			continue
		}
		out = append(out, strings.Split(s, "\n")...)
	}
	return out
}

// WriteFile creates name under a temp dir with the given content and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
