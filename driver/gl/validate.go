// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Severity is the severity of a validation message.
type Severity int

// Severities.
const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "Severity(" + strconv.Itoa(int(s)) + ")"
}

func (s Severity) level() slog.Level {
	switch s {
	case SevWarning:
		return slog.LevelWarn
	case SevError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config configures a Driver.
type Config struct {
	// Validation enables contract checks and native
	// error polling.
	Validation bool
	// Logger receives validation messages.
	// If nil, messages are discarded unless Callback
	// is set.
	Logger *slog.Logger
	// Callback receives every validation message before
	// it is logged.
	Callback func(Severity, string)
	// PushConstantSize is the size in bytes of the push
	// constant block. Defaults to 128.
	PushConstantSize int
}

// Environment variables read by ConfigFromEnv.
const (
	EnvValidation = "GLEMU_VALIDATION"
	EnvLogLevel   = "GLEMU_LOG_LEVEL"
)

// ConfigFromEnv returns a Config derived from the process
// environment.
// GLEMU_VALIDATION is parsed with strconv.ParseBool and
// GLEMU_LOG_LEVEL names a slog level (debug, info, warn,
// error). Setting either one installs a text logger on
// standard error.
func ConfigFromEnv() Config {
	var cfg Config
	var setLog bool
	var lvl slog.Level
	if s, ok := os.LookupEnv(EnvValidation); ok {
		cfg.Validation, _ = strconv.ParseBool(s)
		setLog = cfg.Validation
	}
	if s, ok := os.LookupEnv(EnvLogLevel); ok {
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err == nil {
			setLog = true
		}
	}
	if setLog {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}
	return cfg
}

// nopHandler discards every record.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

// validator routes validation messages and polls native
// errors when enabled.
type validator struct {
	on  bool
	log *slog.Logger
	cb  func(Severity, string)
}

func newValidator(cfg *Config) validator {
	v := validator{
		on:  cfg.Validation,
		log: cfg.Logger,
		cb:  cfg.Callback,
	}
	if v.log == nil {
		v.log = slog.New(nopHandler{})
	}
	v.log = v.log.With(slog.String("driver", driverName))
	return v
}

// report delivers a message to the callback and logger.
// It is a no-op when validation is disabled.
func (v *validator) report(sev Severity, format string, args ...any) {
	if !v.on {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if v.cb != nil {
		v.cb(sev, msg)
	}
	v.log.Log(context.Background(), sev.level(), msg)
}

// check polls the native error queue after call.
func (v *validator) check(n Native, call string) {
	if !v.on {
		return
	}
	for i := 0; i < 8; i++ {
		code := n.GetError()
		if code == NO_ERROR {
			return
		}
		v.report(SevError, "%s: %s", call, ErrorName(code))
	}
}

// ErrorName returns the name of an OpenGL error code.
func ErrorName(code uint32) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	case STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case CONTEXT_LOST:
		return "GL_CONTEXT_LOST"
	}
	return fmt.Sprintf("GL error 0x%04X", code)
}

// FramebufferStatus returns a description of a framebuffer
// completeness status.
func FramebufferStatus(status uint32) string {
	switch status {
	case FRAMEBUFFER_COMPLETE:
		return "Complete"
	case FRAMEBUFFER_UNDEFINED:
		return "Undefined"
	case FRAMEBUFFER_INCOMPLETE_ATT:
		return "Incomplete: Attachment"
	case FRAMEBUFFER_MISSING_ATT:
		return "Incomplete: Missing attachment"
	case FRAMEBUFFER_INCOMPLETE_DRAW:
		return "Incomplete: Draw buffer"
	case FRAMEBUFFER_INCOMPLETE_READ:
		return "Incomplete: Read buffer"
	case FRAMEBUFFER_UNSUPPORTED:
		return "Unsupported"
	case FRAMEBUFFER_INCOMPLETE_MS:
		return "Incomplete: Multisample"
	case FRAMEBUFFER_INCOMPLETE_LAYERS:
		return "Incomplete: Layer targets"
	}
	return fmt.Sprintf("Unknown status 0x%04X", status)
}

// debugSeverity maps a debug output severity.
func debugSeverity(sev uint32) Severity {
	switch sev {
	case DEBUG_SEVERITY_HIGH:
		return SevError
	case DEBUG_SEVERITY_MEDIUM:
		return SevWarning
	}
	return SevInfo
}

// debugSource names a debug output source.
func debugSource(src uint32) string {
	switch src {
	case DEBUG_SOURCE_API:
		return "API"
	case DEBUG_SOURCE_WINDOW:
		return "Window System"
	case DEBUG_SOURCE_COMPILER:
		return "Shader Compiler"
	case DEBUG_SOURCE_THIRDPARTY:
		return "Third Party"
	case DEBUG_SOURCE_APP:
		return "Application"
	}
	return "Other"
}

// debugMessage is installed as the debug output callback.
func (v *validator) debugMessage(source, typ, id, severity uint32, msg string) {
	if severity == DEBUG_SEVERITY_NOTIF {
		return
	}
	v.report(debugSeverity(severity), "[%s] %s (id %d)", debugSource(source), msg, id)
}
