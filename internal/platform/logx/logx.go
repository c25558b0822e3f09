// internal/platform/logx/logx.go
package logx

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String retorna el nombre corto del nivel.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

// Options configura el backend zap.
type Options struct {
	// Level nivel mínimo
	Level Level

	// Format "console" (por defecto) o "json"
	Format string

	// Development activa colores y caller
	Development bool

	// Writer destino; por defecto stderr
	Writer io.Writer
}

type zapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// New crea un logger leyendo el nivel de PHONEPROBE_LOG_LEVEL.
func New() Logger {
	return NewWithOptions(Options{Level: ParseLevel(os.Getenv("PHONEPROBE_LOG_LEVEL"))})
}

// NewWithLevel creates a logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	return NewWithOptions(Options{Level: lvl})
}

// NewSilent creates a logger that only outputs errors (silent mode for UI)
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewNop crea un logger que descarta todo (tests).
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar(), level: zap.NewAtomicLevelAt(zapcore.FatalLevel)}
}

// NewWithOptions construye el logger zap subyacente.
func NewWithOptions(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:    shortLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if opts.Development {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var enc zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.ConsoleSeparator = " "
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	level := zap.NewAtomicLevelAt(toZap(opts.Level))
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)

	zopts := []zap.Option{}
	if opts.Development {
		zopts = append(zopts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return &zapLogger{sugar: zap.New(core, zopts...).Sugar(), level: level}
}

func (z *zapLogger) With(kv ...any) Logger {
	return &zapLogger{sugar: z.sugar.With(normalizeKV(kv)...), level: z.level}
}

// SetLevel cambia el nivel; afecta a todos los loggers derivados con With.
func (z *zapLogger) SetLevel(lvl Level) {
	z.level.SetLevel(toZap(lvl))
}

func (z *zapLogger) Debug(msg string, kv ...any) { z.sugar.Debugw(msg, normalizeKV(kv)...) }
func (z *zapLogger) Info(msg string, kv ...any)  { z.sugar.Infow(msg, normalizeKV(kv)...) }
func (z *zapLogger) Warn(msg string, kv ...any)  { z.sugar.Warnw(msg, normalizeKV(kv)...) }
func (z *zapLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	z.sugar.Errorw("", normalizeKV(kv)...)
}

// Sync vacía buffers del logger si el backend lo soporta.
func Sync(l Logger) {
	if z, ok := l.(*zapLogger); ok {
		_ = z.sugar.Sync()
	}
}

// normalizeKV completa pares impares para que zap no emita DPANIC.
func normalizeKV(kv []any) []any {
	if len(kv)%2 == 0 {
		return kv
	}
	return append(kv, "(missing)")
}

func shortLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString("DBG")
	case zapcore.InfoLevel:
		enc.AppendString("INF")
	case zapcore.WarnLevel:
		enc.AppendString("WRN")
	default:
		enc.AppendString("ERR")
	}
}

func toZap(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel convierte un string en Level; valores desconocidos son info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
