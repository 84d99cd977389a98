package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar renders per-file byte progress with a progressbar.ProgressBar.
type Bar struct {
	w        io.Writer
	throttle time.Duration

	bar          *progressbar.ProgressBar
	totalFiles   int
	checkedFiles int
}

func NewBar(w io.Writer) *Bar {
	return &Bar{w: w, throttle: DefaultMinInterval}
}

func (b *Bar) describe() string {
	return fmt.Sprintf("checked %d of %d", b.checkedFiles, b.totalFiles)
}

func (b *Bar) OverallStarted(totalFiles int) {
	b.totalFiles = totalFiles
}

func (b *Bar) FileStarted(path string, size int64) {
	total := size
	if total <= 0 {
		// progressbar uses -1 for an indeterminate spinner
		total = -1
	}

	b.bar = progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetDescription(b.describe()),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(b.throttle),
		progressbar.OptionClearOnFinish(),
	)
	_ = b.bar.RenderBlank()
}

func (b *Bar) BytesAdvanced(n int64) {
	if n <= 0 || b.bar == nil {
		return
	}
	_ = b.bar.Add64(n)
}

func (b *Bar) FileFinished() {
	b.checkedFiles++
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	b.bar = nil
}

func (b *Bar) OverallFinished() {
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
	_, _ = fmt.Fprintf(b.w, "\r%s\n", b.describe())
}
