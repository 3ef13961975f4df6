package errors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes timestamped diagnostics while verbose mode is on and stays
// silent otherwise. Messages meant for the user go through ui.Printer instead.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
	now     func() time.Time
}

var std = NewLogger(os.Stderr, false)

// NewLogger creates a Logger writing to out.
func NewLogger(out io.Writer, verbose bool) *Logger {
	return &Logger{out: out, verbose: verbose, now: time.Now}
}

// Debug writes one "[HH:MM:SS] DEBUG: msg" line. API keys are masked.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.verbose {
		return
	}
	line := SanitizeErrorMessage(fmt.Sprintf(format, args...))
	fmt.Fprintf(l.out, "[%s] DEBUG: %s\n", l.now().Format("15:04:05"), line)
}

// LogAPIRequest records request metadata. Only the prompt length is logged, never its content.
func (l *Logger) LogAPIRequest(provider, endpoint, model string, promptLength int) {
	if endpoint == "" {
		endpoint = "(default)"
	}
	l.Debug("API request: provider=%s endpoint=%s model=%s prompt_length=%d",
		provider, endpoint, model, promptLength)
}

// LogAPIResponse records the outcome of a provider call.
func (l *Logger) LogAPIResponse(provider string, statusCode int, responseLength int, duration time.Duration) {
	l.Debug("API response: provider=%s status=%d response_length=%d duration=%s",
		provider, statusCode, responseLength, duration.Round(time.Millisecond))
}

func (l *Logger) setVerbose(verbose bool) {
	l.mu.Lock()
	l.verbose = verbose
	l.mu.Unlock()
}

func (l *Logger) isVerbose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

func (l *Logger) setOutput(w io.Writer) {
	l.mu.Lock()
	l.out = w
	l.mu.Unlock()
}

// SetVerbose turns diagnostics on or off for the process.
func SetVerbose(verbose bool) { std.setVerbose(verbose) }

// IsVerbose reports whether diagnostics are on.
func IsVerbose() bool { return std.isVerbose() }

// SetOutput redirects diagnostics, normally to the command's stderr.
func SetOutput(w io.Writer) { std.setOutput(w) }

// Debug logs through the process-wide logger.
func Debug(format string, args ...interface{}) {
	std.Debug(format, args...)
}

// LogAPIRequest logs request metadata through the process-wide logger.
func LogAPIRequest(provider, endpoint, model string, promptLength int) {
	std.LogAPIRequest(provider, endpoint, model, promptLength)
}

// LogAPIResponse logs response metadata through the process-wide logger.
func LogAPIResponse(provider string, statusCode int, responseLength int, duration time.Duration) {
	std.LogAPIResponse(provider, statusCode, responseLength, duration)
}

// MaskAPIKey masks an API key for safe display, showing only the last 4 characters.
func MaskAPIKey(apiKey string) string {
	if len(apiKey) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(apiKey)-4) + apiKey[len(apiKey)-4:]
}
