package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[string]Level{
	"debug":   Debug,
	"info":    Info,
	"notice":  Notice,
	"warning": Warning,
	"error":   Error,
}

var levelMapping = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

// Plain format for non-terminal sinks; the colored variant is used for stdout.
var (
	plainFormat = logging.MustStringFormatter(
		`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
	)
	colorFormat = logging.MustStringFormatter(
		`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
	)
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The current verbosity.
var curLevel = Notice

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink. The current verbosity is preserved.
func SetSink(sink io.Writer) {
	format := plainFormat
	if sink == os.Stdout || sink == os.Stderr {
		format = colorFormat
	}

	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	logging.SetBackend(leveledBackend)
	SetLevel(curLevel)
}

// Set logger verbosity.
func SetLevel(level Level) {
	loggerLevel, ok := levelMapping[level]
	if !ok {
		loggerLevel = logging.NOTICE
	}
	curLevel = level
	leveledBackend.SetLevel(loggerLevel, "")
}

// Parse a level name (debug, info, notice, warning or error).
func ParseLevel(name string) (Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Notice, fmt.Errorf("log: unknown level '%s'", name)
	}
	return level, nil
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
