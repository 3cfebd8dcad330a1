// A simple logging module that mimics the behavior of Python's logging module.
//
// All it does basically is wrap Go's logger with nice multi-level logging calls, and
// allows you to set the logging level of your app in runtime.
//
// Logging is done just like calling fmt.Sprintf:
//
//	logging.Info("This object is %s and that is %s", obj, that)
//
// example output:
//
//	[DEBUG 01:20:26.114 patch.go:52] Hashing target/repository/binary/...
//	[WARNING 01:20:26.201 patch.go:88] No artifact with id phasereditor2d.com.executable.cocoa.macosx.x86_64
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	DEBUG    = 1
	INFO     = 2
	WARNING  = 4
	WARN     = 4
	ERROR    = 8
	NOTICE   = 16 //notice is like info but for really important stuff ;)
	CRITICAL = 32
	QUIET    = ERROR | NOTICE | CRITICAL               //setting for errors only
	NORMAL   = INFO | WARN | ERROR | NOTICE | CRITICAL // default setting - all besides debug
	ALL      = 255
	NOTHING  = 0
)

var levelsAscending = []int{DEBUG, INFO, WARNING, ERROR, NOTICE, CRITICAL}

var LevelsByName = map[string]int{
	"DEBUG":    DEBUG,
	"INFO":     INFO,
	"WARNING":  WARN,
	"WARN":     WARN,
	"ERROR":    ERROR,
	"NOTICE":   NOTICE,
	"CRITICAL": CRITICAL,
	"QUIET":    QUIET,
	"NORMAL":   NORMAL,
	"ALL":      ALL,
	"NOTHING":  NOTHING,
}

var (
	mu    sync.RWMutex
	level = ALL
)

// Set the logging level.
//
// Contrary to Python that specifies a minimal level, this logger is set with a bit mask
// of active levels.
//
// e.g. for INFO and ERROR use:
//
//	SetLevel(logging.INFO | logging.ERROR)
//
// For everything but debug and info use:
//
//	SetLevel(logging.ALL &^ (logging.INFO | logging.DEBUG))
func SetLevel(l int) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

func enabled(l int) bool {
	mu.RLock()
	defer mu.RUnlock()
	return level&l != 0
}

// Set a minimal level for loggin, setting all levels higher than this level as well.
//
// the severity order is DEBUG, INFO, WARNING, ERROR, CRITICAL
func SetMinimalLevel(l int) {
	newLevel := 0
	for _, lvl := range levelsAscending {
		if lvl >= l {
			newLevel |= lvl
		}
	}
	SetLevel(newLevel)
}

// Set minimal level by string, useful for config files and command line arguments. Case insensitive.
//
// Possible level names are DEBUG, INFO, WARNING, ERROR, NOTICE, CRITICAL
func SetMinimalLevelByName(l string) error {
	l = strings.ToUpper(strings.TrimSpace(l))
	lvl, found := LevelsByName[l]
	if !found {
		return fmt.Errorf("invalid log level %q", l)
	}

	SetMinimalLevel(lvl)
	return nil
}

// LoggingHandler is a pluggable logger
type LoggingHandler interface {
	SetFormatter(Formatter)
	SetVerbose(bool)
	Output() io.Writer
	Emit(ctx *MessageContext, message string, args ...interface{}) error
	Printf(msg string, args ...interface{})
	Close()
}

var currentHandler LoggingHandler = NewStreamHandler(os.Stderr)

// Set the current handler of the library. We currently support one handler, but it might be nice to have more
func SetHandler(h LoggingHandler) {
	mu.Lock()
	defer mu.Unlock()
	currentHandler = h
}

func CurrentHandler() LoggingHandler {
	mu.RLock()
	defer mu.RUnlock()
	return currentHandler
}

type MessageContext struct {
	Level     string
	File      string
	Line      int
	TimeStamp time.Time
}

// get the stack (line + file) context to return the caller to the log
func getContext(level string, skipDepth int) *MessageContext {
	_, file, line, _ := runtime.Caller(skipDepth)
	file = path.Base(file)

	return &MessageContext{
		Level:     level,
		File:      file,
		TimeStamp: time.Now(),
		Line:      line,
	}
}

// format the message
func writeMessage(level string, msg string, args ...interface{}) {
	writeMessageDepth(4, level, msg, args...)
}

func writeMessageDepth(depth int, level string, msg string, args ...interface{}) {
	ctx := getContext(level, depth)

	// We go over the args, and replace any function pointer with the signature
	// func() interface{} with the return value of executing it now.
	// This allows lazy evaluation of arguments which are return values
	for i, arg := range args {
		if fn, ok := arg.(func() interface{}); ok {
			args[i] = fn()
		}
	}

	if err := CurrentHandler().Emit(ctx, msg, args...); err != nil {
		printLogError(err, ctx, msg, args...)
	}
}

func printLogError(err error, ctx *MessageContext, msg string, args ...interface{}) {
	errMsg := err.Error()
	errw := err
	for {
		errw = errors.Unwrap(errw)
		if errw == nil {
			break
		}
		errMsg += ": " + errw.Error()
	}
	fmt.Fprintf(os.Stderr, "Error writing log message: %s\n", errMsg)
	fmt.Fprintln(os.Stderr, DefaultFormatter.Format(ctx, msg, args...))
}

// Output debug logging messages
func Debug(msg string, args ...interface{}) {
	if enabled(DEBUG) {
		writeMessage("DEBUG", msg, args...)
	}
}

// output INFO level messages
func Info(msg string, args ...interface{}) {
	if enabled(INFO) {
		writeMessage("INFO", msg, args...)
	}
}

// Output WARNING level messages
func Warning(msg string, args ...interface{}) {
	if enabled(WARN) {
		writeMessage("WARNING", msg, args...)
	}
}

// Output ERROR level messages
func Error(msg string, args ...interface{}) {
	if enabled(ERROR) {
		writeMessage("ERROR", msg, args...)
	}
}

// Same as Error() but also returns a new formatted error object with the message regardless of logging level
func Errorf(msg string, args ...interface{}) error {
	err := fmt.Errorf(msg, args...)
	if enabled(ERROR) {
		writeMessage("ERROR", err.Error())
	}
	return err
}

// History returns the recent log output of the current handler, if it keeps any.
func History() string {
	h, ok := CurrentHandler().(interface{ History() string })
	if !ok {
		return ""
	}
	return h.History()
}

func Close() {
	CurrentHandler().Close()
}
