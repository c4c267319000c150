// Package logger provides module-scoped JSON logging on top of gommon/log,
// the logger echo itself uses.
package logger

import (
	"io"
	"os"
	"regexp"

	"github.com/labstack/gommon/log"
)

const header = `{"time":"${time_rfc3339}","level":"${level}","module":"${prefix}"}`

// Fields are extra key/values attached to one log line.
type Fields = log.JSON

// Logger writes one JSON object per line, tagged with its module.
type Logger struct {
	base *log.Logger
}

var output io.Writer = os.Stdout

// SetOutput redirects every logger created afterwards; nil restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	output = w
}

// New creates a logger for the given module, e.g. "services/posts".
func New(module string) *Logger {
	l := log.New(module)
	l.SetHeader(header)
	l.SetLevel(log.INFO)
	l.SetOutput(output)
	return &Logger{base: l}
}

// Base exposes the underlying gommon logger so it can back echo's e.Logger.
func (l *Logger) Base() *log.Logger {
	return l.base
}

func (l *Logger) Info(msg string, fields ...Fields) {
	l.base.Infoj(entry(msg, nil, fields))
}

func (l *Logger) Warn(msg string, fields ...Fields) {
	l.base.Warnj(entry(msg, nil, fields))
}

func (l *Logger) Error(msg string, err error, fields ...Fields) {
	l.base.Errorj(entry(msg, err, fields))
}

func entry(msg string, err error, fields []Fields) log.JSON {
	j := log.JSON{"message": Anonymize(msg)}
	for _, f := range fields {
		for k, v := range f {
			if s, ok := v.(string); ok {
				v = Anonymize(s)
			}
			j[k] = v
		}
	}
	if err != nil {
		j["error"] = Anonymize(err.Error())
	}
	return j
}

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	tokenRegex = regexp.MustCompile(`eyJ[^\s"]+`)
)

// Anonymize replaces emails and JWT-looking tokens.
func Anonymize(s string) string {
	s = emailRegex.ReplaceAllString(s, "[REDACTED_EMAIL]")
	s = tokenRegex.ReplaceAllString(s, "[REDACTED_TOKEN]")
	return s
}
