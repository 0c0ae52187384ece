package utils

import (
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000 Z07:00"

type utcFormatter struct {
	logrus.Formatter
}

func (f utcFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Time = entry.Time.UTC()
	return f.Formatter.Format(entry)
}

func newFormatter(json bool) logrus.Formatter {
	if json {
		return &utcFormatter{&logrus.JSONFormatter{TimestampFormat: timestampFormat}}
	}
	colors := !color.NoColor
	return &utcFormatter{&logrus.TextFormatter{
		TimestampFormat:  timestampFormat,
		FullTimestamp:    true,
		ForceColors:      colors,
		DisableColors:    !colors,
		QuoteEmptyFields: true,
	}}
}

// SetupLogging configures the standard logrus logger, writing to w.
func SetupLogging(w io.Writer, level string, json bool) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(newFormatter(json))
	logrus.SetOutput(w)
	return nil
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithMaxLevel returns a logger sharing l's output, formatter, hooks and
// fields but never more verbose than level. l itself is not modified.
func WithMaxLevel(l logrus.FieldLogger, level logrus.Level) logrus.FieldLogger {
	var base *logrus.Logger
	var fields logrus.Fields
	switch v := l.(type) {
	case *logrus.Logger:
		base = v
	case *logrus.Entry:
		base, fields = v.Logger, v.Data
	default:
		return l
	}

	clone := &logrus.Logger{
		Out:          base.Out,
		Formatter:    base.Formatter,
		Hooks:        base.Hooks,
		ReportCaller: base.ReportCaller,
		ExitFunc:     base.ExitFunc,
		Level:        min(level, base.GetLevel()),
	}
	return clone.WithFields(fields)
}
