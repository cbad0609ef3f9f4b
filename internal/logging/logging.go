// ABOUTME: Logger setup for the CLI and MCP server.
// ABOUTME: Writes to stderr by default or to a rotating file through lumberjack.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params configures Setup.
type Params struct {
	Level string
	// File, when set, receives all log output instead of stderr.
	File string
	JSON bool
	// Output overrides stderr when File is empty.
	Output io.Writer
}

// Setup builds a logger for the given params.
func Setup(params Params) (*log.Logger, error) {
	level, err := GetLevel(params.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	if params.Output != nil {
		out = params.Output
	}
	if params.File != "" {
		w, err := fileWriter(params.File)
		if err != nil {
			return nil, err
		}
		out = w
	}

	opts := log.Options{
		Level:           level,
		ReportTimestamp: params.File != "",
		Prefix:          "sportplan",
	}
	if params.JSON {
		opts.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(out, opts), nil
}

func fileWriter(name string) (*lumberjack.Logger, error) {
	if !strings.HasSuffix(name, ".log") {
		name += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(name), 0750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   name,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  false,
		Compress:   true,
	}, nil
}

// GetLevel parses a level name. Empty means warn.
func GetLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		return log.WarnLevel, nil
	}
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}
