package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Fields map[string]interface{}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

var (
	mu    sync.Mutex
	out   io.Writer = os.Stderr
	level           = LevelInfo
)

// SetOutput redirects log lines. Stdout carries protocol traffic, so callers
// should never point this at os.Stdout while serving. nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

func output(l Level, name, msg string, fields Fields) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	line := Fields{}
	for k, v := range fields {
		line[k] = v
	}
	line["level"] = name
	line["ts"] = time.Now().UTC().Format(time.RFC3339)
	line["msg"] = msg
	b, err := json.Marshal(line)
	if err != nil {
		// fallback to plain logging
		fmt.Fprintf(out, "%s: %s (%v)\n", name, msg, fields)
		return
	}
	out.Write(append(b, '\n'))
}

func Debug(msg string, fields Fields) {
	output(LevelDebug, "debug", msg, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(LevelInfo, "info", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	f := Fields{}
	for k, v := range fields {
		f[k] = v
	}
	if err != nil {
		f["error"] = err.Error()
	}
	output(LevelError, "error", msg, f)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	f := Fields{}
	for k, v := range fields {
		f[k] = v
	}
	if err != nil {
		f["error"] = err.Error()
	}
	output(LevelError+1, "fatal", msg, f)
	os.Exit(1)
}
