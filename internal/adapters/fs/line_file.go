package fs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bft-labs/lineship/internal/domain"
)

// DefaultMaxLineBytes bounds the length of a single input line.
const DefaultMaxLineBytes = 1 << 20 // 1MB

const initialBufSize = 64 << 10

// LineFile implements ports.LineSource over a text file.
// Lines end with "\n" or "\r\n"; the last line may lack a terminator.
type LineFile struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
}

// OpenLineFile opens path for reading. maxLineBytes <= 0 selects DefaultMaxLineBytes.
func OpenLineFile(path string, maxLineBytes int) (*LineFile, error) {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrSource, path, err)
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, min(initialBufSize, maxLineBytes)), maxLineBytes)
	sc.Split(scanLines)

	return &LineFile{path: path, file: f, scanner: sc}, nil
}

// Next returns the next line. Returns io.EOF at end of file.
func (l *LineFile) Next(ctx context.Context) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrSource, l.path, err)
		}
		return nil, io.EOF
	}
	// The scanner reuses its buffer; records must stay valid after the next scan.
	return domain.Record(bytes.Clone(l.scanner.Bytes())), nil
}

// Close closes the underlying file.
func (l *LineFile) Close() error {
	return l.file.Close()
}

// CountLines returns the number of records OpenLineFile would yield for path.
func CountLines(path string, maxLineBytes int) (int, error) {
	src, err := OpenLineFile(path, maxLineBytes)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	n := 0
	for src.scanner.Scan() {
		n++
	}
	if err := src.scanner.Err(); err != nil {
		return n, fmt.Errorf("%w: read %s: %w", domain.ErrSource, path, err)
	}
	return n, nil
}

// scanLines works like bufio.ScanLines, except that a final line without a
// terminator is returned verbatim, including a trailing \r.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[:i], []byte{'\r'}), nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
