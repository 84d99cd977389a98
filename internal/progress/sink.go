package progress

// UnknownSize is passed to FileStarted when the file size could not be determined.
const UnknownSize int64 = -1

// Sink observes a verification run. Implementations are driven from a single
// goroutine and must not influence checksum computation.
type Sink interface {
	OverallStarted(totalFiles int)
	FileStarted(path string, size int64)
	BytesAdvanced(n int64)
	FileFinished()
	OverallFinished()
}

// Nop is a disabled sink.
type Nop struct{}

func (Nop) OverallStarted(int)        {}
func (Nop) FileStarted(string, int64) {}
func (Nop) BytesAdvanced(int64)       {}
func (Nop) FileFinished()             {}
func (Nop) OverallFinished()          {}

type multi []Sink

// Multi forwards every event to each non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) OverallStarted(total int) {
	for _, s := range m {
		s.OverallStarted(total)
	}
}

func (m multi) FileStarted(path string, size int64) {
	for _, s := range m {
		s.FileStarted(path, size)
	}
}

func (m multi) BytesAdvanced(n int64) {
	for _, s := range m {
		s.BytesAdvanced(n)
	}
}

func (m multi) FileFinished() {
	for _, s := range m {
		s.FileFinished()
	}
}

func (m multi) OverallFinished() {
	for _, s := range m {
		s.OverallFinished()
	}
}
