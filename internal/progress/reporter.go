package progress

import (
	"fmt"
	"io"
	"time"
)

const DefaultMinInterval = 80 * time.Millisecond

// Reporter renders a single status line that is rewritten in place:
//
//	checked 3 of 10 |  42% (1.2 MiB / 2.9 MiB)
//
// File boundaries redraw immediately; byte updates redraw at most once per
// MinInterval. The final line is terminated with a newline.
type Reporter struct {
	w           io.Writer
	minInterval time.Duration
	now         func() time.Time

	totalFiles   int
	checkedFiles int

	inFile      bool
	currentSize int64
	currentRead int64

	lastDraw time.Time
}

type Option func(*Reporter)

func WithMinInterval(d time.Duration) Option {
	return func(r *Reporter) { r.minInterval = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

func NewReporter(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		w:           w,
		minInterval: DefaultMinInterval,
		now:         time.Now,
		currentSize: UnknownSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reporter) OverallStarted(totalFiles int) {
	r.totalFiles = totalFiles
	r.draw(true, false)
}

func (r *Reporter) FileStarted(path string, size int64) {
	r.inFile = true
	r.currentSize = size
	if size < 0 {
		r.currentSize = UnknownSize
	}
	r.currentRead = 0
	r.draw(true, false)
}

func (r *Reporter) BytesAdvanced(n int64) {
	if n > 0 {
		r.currentRead += n
	}
	r.draw(false, false)
}

func (r *Reporter) FileFinished() {
	r.checkedFiles++
	r.inFile = false
	r.currentSize = UnknownSize
	r.currentRead = 0
	r.draw(true, false)
}

func (r *Reporter) OverallFinished() {
	r.draw(true, true)
}

// Line returns the current status text without any control characters.
func (r *Reporter) Line() string {
	line := fmt.Sprintf("checked %d of %d", r.checkedFiles, r.totalFiles)
	if !r.inFile || r.currentSize == UnknownSize {
		return line
	}

	size := r.currentSize
	if size == 0 {
		return line + " | 100% (0 B / 0 B)"
	}

	read := r.currentRead
	if read > size {
		read = size
	}
	pct := int(read * 100 / size)
	return fmt.Sprintf("%s | %3d%% (%s / %s)", line, pct, formatBytes(read), formatBytes(size))
}

func (r *Reporter) draw(force, endline bool) {
	now := r.now()
	if !force && !r.lastDraw.IsZero() && now.Sub(r.lastDraw) < r.minInterval {
		return
	}
	r.lastDraw = now

	text := "\r" + r.Line()
	if endline {
		text += "\n"
	}
	_, _ = io.WriteString(r.w, text)
}

var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// formatBytes renders n in IEC units, with one decimal for anything above plain bytes.
func formatBytes(n int64) string {
	x := float64(n)
	i := 0
	for x >= 1024 && i < len(byteUnits)-1 {
		x /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", x, byteUnits[i])
}
