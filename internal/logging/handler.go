package logging

import (
	"fmt"
	"io"
	"sync"
)

// historySize is the number of bytes of recent log output kept in memory by a StreamHandler
const historySize = 64 * 1024

// StreamHandler writes warnings and errors to its writer, and everything else only when verbose. Every emitted
// message is kept in a bounded history so it can be shown after an unexpected failure.
type StreamHandler struct {
	mu        sync.Mutex
	formatter Formatter
	out       io.Writer
	verbose   bool
	history   *ringBuffer
}

func NewStreamHandler(out io.Writer) *StreamHandler {
	return &StreamHandler{
		formatter: DefaultFormatter,
		out:       out,
		history:   newRingBuffer(historySize),
	}
}

func (l *StreamHandler) SetFormatter(f Formatter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.formatter = f
}

func (l *StreamHandler) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

func (l *StreamHandler) Output() io.Writer {
	return l.out
}

func (l *StreamHandler) Emit(ctx *MessageContext, message string, args ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.formatter.Format(ctx, message, args...) + "\n"
	l.history.Write([]byte(line))

	if !l.verbose && !alwaysShown(ctx.Level) {
		return nil
	}
	if _, err := io.WriteString(l.out, line); err != nil {
		return err
	}
	return nil
}

// Printf satifies a Logger interface allowing us to funnel our
// logging handlers to 3rd party libraries
func (l *StreamHandler) Printf(msg string, args ...interface{}) {
	logMsg := fmt.Sprintf("Third party log message: %s", msg)
	l.Emit(getContext("DEBUG", 1), logMsg, args...)
}

// History returns the most recent log lines, regardless of whether they were written out.
func (l *StreamHandler) History() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history.Read()
}

func (l *StreamHandler) Close() {}

func alwaysShown(level string) bool {
	switch level {
	case "WARNING", "ERROR", "CRITICAL":
		return true
	}
	return false
}
