package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Printer writes messages at a fixed level.
type Printer struct {
	level logrus.Level
}

func (p Printer) Printf(format string, args ...interface{}) {
	logger.Logf(p.level, format, args...)
}

func (p Printer) Println(args ...interface{}) {
	logger.Logln(p.level, args...)
}

var (
	logger = logrus.New()

	Trace   = Printer{logrus.TraceLevel}
	Info    = Printer{logrus.InfoLevel}
	Warning = Printer{logrus.WarnLevel}
	Error   = Printer{logrus.ErrorLevel}
)

func init() {
	InitLog()
}

// InitLog configures the package loggers from the environment.
// DIGITPAD_TRACE=1 enables trace output, DIGITPAD_TRACE=0 silences info.
func InitLog() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch os.Getenv("DIGITPAD_TRACE") {
	case "1":
		logger.SetLevel(logrus.TraceLevel)
	case "0":
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects all log output, mostly for tests and the TUI.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Logger exposes the underlying logger for frameworks that take one.
func Logger() *logrus.Logger {
	return logger
}
