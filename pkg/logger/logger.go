// Package logger configura zerolog para el servicio: consola legible en development,
// JSON en cualquier otro entorno, y subloggers por componente para cada store.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string    // development -> consola; otro valor -> JSON
	Level string    // trace, debug, info, warn, error; vacío o desconocido -> info
	App   string    // se agrega como campo "app" si no está vacío
	Out   io.Writer // destino; os.Stdout si es nil
}

// Logger logger raíz del proceso. Los componentes reciben un zerolog.Logger derivado
// con Component, nunca el wrapper.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger raíz y lo instala como logger global de zerolog.
func New(cfg Config) *Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(out).Level(levelOf(cfg.Level)).With().Timestamp()
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	zl := ctx.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

func levelOf(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Nop descarta todo (tests).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Component sublogger con el campo component fijo, para inyectar en stores y handlers.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.zl.With().Str("component", name).Logger()
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal registra y termina el proceso al llamar Msg.
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
