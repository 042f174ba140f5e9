package observe

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// reportingEnvs are the environments whose errors are forwarded to Sentry.
var reportingEnvs = map[string]bool{
	"production": true,
	"staging":    true,
}

// SentryHook is an io.Writer meant to sit next to stdout behind the zap core.
// It decodes JSON log records and captures error and fatal ones as Sentry events.
type SentryHook struct {
	appEnv  string
	appName string
	l       *Logger
}

func NewSentryHook(
	appEnv, appName string,
	maxErrorDepth int,
	isDebug bool,
	dsn string,
) *SentryHook {
	if dsn == "" {
		log.Println("Stacktracer init error: no DSN")
	}
	if maxErrorDepth == 0 {
		maxErrorDepth = _sentryMaxErrorDepth
	}
	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout
	if err := sentry.Init(
		sentry.ClientOptions{
			AttachStacktrace: true,
			Debug:            isDebug,
			Dsn:              dsn,
			Environment:      appEnv,
			MaxErrorDepth:    maxErrorDepth,
			ServerName:       appName,
			Transport:        sentryTransport,
		}); err != nil {

		log.Println("Stacktracer init error: ", err.Error())
	} else {
		log.Println("Stacktracer init success")
	}
	return &SentryHook{
		appEnv:  appEnv,
		appName: appName,
	}
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}

type sentryRecord struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppEnv     string `json:"app_env"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

func (h *SentryHook) Write(p []byte) (n int, err error) {
	if !reportingEnvs[h.appEnv] {
		return len(p), nil
	}

	event, err := h.buildEvent(p)
	if err != nil {
		h.reportOwnError(err)
		return len(p), nil
	}
	if event != nil {
		sentry.CaptureEvent(event)
	}

	return len(p), nil
}

// buildEvent returns nil without error for records below error level.
func (h *SentryHook) buildEvent(p []byte) (*sentry.Event, error) {
	var rec sentryRecord
	if err := json.Unmarshal(p, &rec); err != nil {
		return nil, errors.Wrap(err, "[SentryHook] json.Unmarshal data")
	}

	level, err := zapcore.ParseLevel(rec.Level)
	if err != nil {
		return nil, errors.Wrap(err, "[SentryHook] parse zap level")
	}
	if level < zapcore.ErrorLevel || rec.Message == "" {
		return nil, nil
	}

	timestamp, err := time.Parse(_timeLayout, rec.Timestamp)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	event := sentry.NewEvent()
	event.Extra["AppName"] = h.appName
	event.Environment = h.appEnv
	event.Level = h.mapLevel(level)
	event.Timestamp = timestamp
	event.Message = rec.Message
	event.Extra["Error"] = rec.Error
	event.Extra["CallerFile"] = rec.CallerFile
	event.Extra["CallerLine"] = rec.CallerLine
	event.Extra["CallerFunc"] = rec.CallerFunc
	event.Extra["Stack"] = rec.Stack
	event.Extra["TimeStamp"] = rec.Timestamp
	event.Exception = append(event.Exception, sentry.Exception{
		Type:       rec.Message,
		Value:      rec.Error,
		Stacktrace: sentry.NewStacktrace(),
	})

	return event, nil
}

// reportOwnError must not log at error level through h.l, that would loop back into Write.
func (h *SentryHook) reportOwnError(err error) {
	if h.l != nil {
		h.l.Warning(err.Error())
		return
	}
	log.Println(err.Error())
}

func (h *SentryHook) SetLogger(logger *Logger) {
	if logger != nil {
		h.l = logger
	}
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return sentry.Flush(_sentryFlushTimeout)
}
