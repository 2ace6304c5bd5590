package log

import (
	raven "github.com/getsentry/raven-go"
	"github.com/sirupsen/logrus"
)

type sentryHook struct {
	client *raven.Client
}

func (h *sentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *sentryHook) Fire(e *logrus.Entry) error {
	tags := map[string]string{"level": e.Level.String()}
	h.client.CaptureMessage(e.Message, tags)
	return nil
}

// InitSentry forwards error entries to Sentry. An empty dsn is a no-op.
func InitSentry(dsn string) error {
	if dsn == "" {
		return nil
	}
	client, err := raven.New(dsn)
	if err != nil {
		return err
	}
	logger.AddHook(&sentryHook{client: client})
	Trace.Printf("sentry reporting enabled")
	return nil
}
