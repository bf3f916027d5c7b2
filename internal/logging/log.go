// Package logging provides leveled, colored console logging with a
// structured file log behind it.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/domain/regex"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

var (
	// Level gates debug output (0-5). Messages logged with a level above
	// this are dropped.
	Level int

	mu         sync.Mutex
	out        io.Writer = colorable.NewColorableStdout()
	fileLogger zerolog.Logger
	loggable   bool
)

// SetupLogging opens (or creates) the structured log file inside targetDir.
func SetupLogging(targetDir string) error {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", targetDir, err)
	}

	path := filepath.Join(targetDir, consts.LogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}

	fileLogger = zerolog.New(f).With().Timestamp().Logger()
	loggable = true
	return nil
}

// SetOutput redirects console output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// I prints an info message.
func I(format string, args ...interface{}) {
	print(consts.BlueInfo, format, args)
	writeFile(zerolog.InfoLevel, format, args)
}

// S prints a success message.
func S(format string, args ...interface{}) {
	print(consts.GreenSuccess, format, args)
	writeFile(zerolog.InfoLevel, format, args)
}

// W prints a warning message.
func W(format string, args ...interface{}) {
	print(consts.YellowWarn, format, args)
	writeFile(zerolog.WarnLevel, format, args)
}

// E prints an error message with the caller location attached.
func E(format string, args ...interface{}) {
	pc, file, line, _ := runtime.Caller(1)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	tag := fmt.Sprintf(" [%sFunction:%s %s - %sFile:%s %s : %sLine:%s %d]",
		consts.ColorBlue, consts.ColorReset, funcName,
		consts.ColorBlue, consts.ColorReset, filepath.Base(file),
		consts.ColorBlue, consts.ColorReset, line)

	print(consts.RedError, format+tag, args)
	writeFile(zerolog.ErrorLevel, format, args)
}

// D prints a debug message if the given level is at or below the active
// debug level.
func D(l int, format string, args ...interface{}) {
	if l > Level {
		return
	}
	print(consts.YellowDebug, format, args)
	writeFile(zerolog.DebugLevel, format, args)
}

func print(tag, format string, args []interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if len(args) != 0 {
		fmt.Fprintf(out, tag+format+"\n", args...)
	} else {
		fmt.Fprint(out, tag+format+"\n")
	}
}

func writeFile(lvl zerolog.Level, format string, args []interface{}) {
	if !loggable {
		return
	}

	msg := format
	if len(args) != 0 {
		msg = fmt.Sprintf(format, args...)
	}
	fileLogger.WithLevel(lvl).Msg(regex.AnsiEscapeCompile().ReplaceAllString(msg, ""))
}
