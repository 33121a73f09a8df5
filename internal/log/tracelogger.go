package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// TraceLogger records every meta-model element a build creates, one line
// per element.
type TraceLogger interface {
	Log(kind, fqn string)
}

type traceLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTrace creates a new TraceLogger. If w is nil, the logger discards
// everything.
func NewTrace(w io.Writer) TraceLogger {
	return &traceLogger{w: w}
}

// Log emits "<time> <kind> <fqn>".
func (t *traceLogger) Log(kind, fqn string) {
	if t.w == nil {
		return
	}
	line := fmt.Sprintf("%s %-9s %s\n", time.Now().Format("2006/01/02 15:04:05"), kind, fqn)

	t.mu.Lock()
	_, _ = t.w.Write([]byte(line))
	t.mu.Unlock()
}
