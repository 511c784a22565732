// Package report renders replay statistics and progress for humans.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bft-labs/lineship/internal/domain"
)

const barWidth = 50

// WriteStats prints the totals of a run.
func WriteStats(w io.Writer, s domain.RunStats) error {
	_, err := fmt.Fprintf(w,
		"Total events sent: %d\nTotal time: %.2f seconds\nAverage events per second: %.2f\n",
		s.RecordsSent, s.Elapsed.Seconds(), s.Rate())
	return err
}

// Progress draws a single-line progress indicator as batches are sent.
// With a known total it draws a bar, otherwise a running count.
type Progress struct {
	mu    sync.Mutex
	out   io.Writer
	total int
	sent  int
	drawn bool
}

// NewProgress creates a progress indicator. total <= 0 means unknown.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// OnBatchSent advances the indicator.
func (p *Progress) OnBatchSent(records, bytesSent int, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent += records
	p.draw()
}

// OnSendError ends the progress line so the error is printed on its own line.
func (p *Progress) OnSendError(err error, records int) {
	p.Finish()
}

// Finish terminates the progress line if anything was drawn.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		fmt.Fprintln(p.out)
		p.drawn = false
	}
}

// Reset clears the count for another run over the same total.
func (p *Progress) Reset(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.sent = 0
}

func (p *Progress) draw() {
	p.drawn = true
	if p.total <= 0 {
		fmt.Fprintf(p.out, "\rSent: %d events", p.sent)
		return
	}
	pct := p.sent * 100 / p.total
	if pct > 100 {
		pct = 100
	}
	filled := pct / 2
	fmt.Fprintf(p.out, "\rProgress: [%s%s] %d%%",
		strings.Repeat("=", filled), strings.Repeat(" ", barWidth-filled), pct)
}
