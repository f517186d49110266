// Package logger expone el logger estructurado de la aplicación sobre zerolog.
// Todo cambio de estado de una entrada y toda emisión de alerta pasa por aquí.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config parámetros del logger.
type Config struct {
	// Env controla el formato: development escribe consola legible,
	// cualquier otro valor escribe JSON por línea.
	Env string
	// Level nivel mínimo: trace, debug, info, warn, error. Desconocido = info.
	Level string
}

// Logger envuelve zerolog para inyectarse por constructor en los casos de uso.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno y lo instala también como logger
// global de zerolog, para las librerías que escriben por esa vía.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	zl := zerolog.New(out).Level(levelFrom(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func levelFrom(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un contexto para un sublogger con campos fijos (p. ej. la zona).
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog expone el logger interno cuando se necesita la API completa.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
