// Package logger provides the process-wide structured logger backed by
// zerolog. The console owns the terminal while the UI runs, so logs default
// to being discarded unless a writer (normally a file) is supplied.
//
// Initialise once at startup with Init, then retrieve anywhere with Get.
package logger

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Output is the writer logs are sent to. Defaults to io.Discard so a
	// running UI is never scribbled over.
	Output io.Writer
	// Pretty enables human-friendly console output instead of JSON.
	Pretty bool
}

var (
	once     sync.Once
	instance *zerolog.Logger
)

// Init builds the singleton logger. Only the first call has any effect;
// later calls return the logger the first call produced.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = io.Discard
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)

		l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
		instance = &l
	})
	return *instance
}

// Get returns the singleton logger. Panics if Init has not been called yet.
func Get() zerolog.Logger {
	if instance == nil {
		panic("logger: Get() called before Init()")
	}
	return *instance
}

// Reset tears down the singleton so the next Init call rebuilds it. For
// tests only.
func Reset() {
	once = sync.Once{}
	instance = nil
}
