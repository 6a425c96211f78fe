package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"quill/types"
)

// Tracer logs user-function calls for debugging
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if a function name matches any of the filter
// patterns; no filters means trace everything
func (t *Tracer) matchesFilter(fnName string) bool {
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, fnName); matched {
			return true
		}
	}
	return false
}

// Call logs a user-function call
func (t *Tracer) Call(fnName string, args []types.Value) {
	if !t.enabled || !t.matchesFilter(fnName) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	argStrs := make([]string, len(args))
	for i, arg := range args {
		argStrs[i] = arg.String()
	}
	fmt.Fprintf(t.writer, "[TRACE] CALL %s(%s)\n", fnName, strings.Join(argStrs, ", "))
}

// Return logs a user-function return value
func (t *Tracer) Return(fnName string, result types.Value) {
	if !t.enabled || !t.matchesFilter(fnName) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] RETURN %s => %s\n", fnName, result.String())
}

// Exception logs an error escaping a user function
func (t *Tracer) Exception(fnName string, err *types.Error) {
	if !t.enabled || !t.matchesFilter(fnName) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.writer, "[TRACE] ERROR %s: %s\n", fnName, err.Error())
}

// Global convenience functions

// Call logs a user-function call using the global tracer
func Call(fnName string, args []types.Value) {
	if globalTracer != nil {
		globalTracer.Call(fnName, args)
	}
}

// Return logs a user-function return using the global tracer
func Return(fnName string, result types.Value) {
	if globalTracer != nil {
		globalTracer.Return(fnName, result)
	}
}

// Exception logs an escaping error using the global tracer
func Exception(fnName string, err *types.Error) {
	if globalTracer != nil {
		globalTracer.Exception(fnName, err)
	}
}
