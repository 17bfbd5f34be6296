// Package logging builds the charmbracelet loggers used across climb.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Formats accepted by Config.Format.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Config describes where and how to log.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text, json or logfmt
	Prefix string

	// Console writes to stderr. With File also set, both receive every line.
	Console bool

	// File enables a rotating log file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig logs info and above to stderr as text.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     FormatText,
		Prefix:     "climb",
		Console:    true,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// ParseLevel converts a level name; an empty name means info.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: unknown level %q", s)
	}
	return lvl, nil
}

func parseFormatter(s string) (log.Formatter, error) {
	switch strings.ToLower(s) {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("logging: unknown format %q", s)
	}
}

// New builds a logger from cfg. The returned closer releases the log file and
// must be called on shutdown.
func New(cfg Config) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	formatter, err := parseFormatter(cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)
	if cfg.Console {
		writers = append(writers, os.Stderr)
	}
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		writers = append(writers, file)
		closer = file
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		Prefix:          cfg.Prefix,
		ReportTimestamp: true,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
