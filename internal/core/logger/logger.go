package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

type Field = zap.Field

func StringField(key, value string) Field { return zap.String(key, value) }
func ErrorField(key string, err error) Field { return zap.NamedError(key, err) }
func AnyField(key string, value interface{}) Field { return zap.Any(key, value) }
func Int64Field(key string, value int64) Field { return zap.Int64(key, value) }
func IntField(key string, value int) Field { return zap.Int(key, value) }
func DurationField(key string, d time.Duration) Field { return zap.Duration(key, d) }

var fileEncoder = zapcore.NewJSONEncoder(zapcore.EncoderConfig{
	TimeKey:        "timestamp",
	LevelKey:       "level",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
})

type levelFile struct {
	name    string
	enabled zap.LevelEnablerFunc
}

// info.log takes debug and info, error.log takes warn and above.
var levelFiles = []levelFile{
	{"info.log", func(l zapcore.Level) bool { return l <= zapcore.InfoLevel }},
	{"error.log", func(l zapcore.Level) bool { return l >= zapcore.WarnLevel }},
}

// NewLogger writes JSON logs into dir, split by level across levelFiles.
func NewLogger(dir string) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	files := make([]*os.File, 0, len(levelFiles))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	cores := make([]zapcore.Core, 0, len(levelFiles))
	for _, lf := range levelFiles {
		f, err := os.OpenFile(filepath.Join(dir, lf.name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open %s: %w", lf.name, err)
		}
		files = append(files, f)
		cores = append(cores, newCore(f, lf.enabled))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	return log, func() {
		_ = log.Sync()
		closeAll()
	}, nil
}

func newCore(w zapcore.WriteSyncer, enabler zapcore.LevelEnabler) zapcore.Core {
	return zapcore.NewCore(fileEncoder.Clone(), w, enabler)
}

func NewNopLogger() *zap.Logger {
	return zap.NewNop()
}
