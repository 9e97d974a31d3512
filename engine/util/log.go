package util

import (
	"github.com/pkg/errors"
	"io"
	stdlog "log"
	"strings"
	"sync/atomic"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogAll

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	}
	return "DEBUG"
}

type LogCategory int

const (
	LogVoxel LogCategory = 1 << iota
	LogPhysics
	LogRender
	LogInput
	LogSystem
	LogIO

	LogAll = LogVoxel | LogPhysics | LogRender | LogInput | LogSystem | LogIO
)

var categoryNames = map[string]LogCategory{
	"voxel":   LogVoxel,
	"physics": LogPhysics,
	"render":  LogRender,
	"input":   LogInput,
	"system":  LogSystem,
	"io":      LogIO,
	"all":     LogAll,
}

func (c LogCategory) String() string {
	switch c {
	case LogVoxel:
		return "voxel"
	case LogPhysics:
		return "physics"
	case LogRender:
		return "render"
	case LogInput:
		return "input"
	case LogSystem:
		return "system"
	case LogIO:
		return "io"
	}
	return "all"
}

var logger atomic.Pointer[stdlog.Logger]

func init() {
	logger.Store(stdlog.New(io.Discard, "", 0))
}

// SetLogOutput routes all engine logging to w. Every line is prefixed with
// the given tag, usually the session id.
func SetLogOutput(w io.Writer, tag string) {
	prefix := ""
	if tag != "" {
		prefix = "[" + tag + "] "
	}
	logger.Store(stdlog.New(w, prefix, stdlog.LstdFlags|stdlog.Lmicroseconds))
}

func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return LogLevelError, nil
	case "warn", "warning":
		return LogLevelWarning, nil
	case "info", "":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	}
	return LogLevelInfo, errors.Errorf("unknown log level %q", name)
}

func ParseLogCategories(names []string) (LogCategory, error) {
	if len(names) == 0 {
		return LogAll, nil
	}
	var result LogCategory
	for _, name := range names {
		cat, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, errors.Errorf("unknown log category %q", name)
		}
		result |= cat
	}
	return result, nil
}

func LogEnabled(cat LogCategory, lvl LogLevel) bool {
	return lvl <= GLOBAL_LOG_LEVEL && GLOBAL_LOG_CATEGORIES&cat != 0
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if !LogEnabled(cat, lvl) {
		return
	}
	logger.Load().Printf("%s %s: %s", lvl, cat, txt)
}

func LogVoxelInfo(txt string) {
	log(LogVoxel, LogLevelInfo, txt)
}

func LogVoxelDebug(txt string) {
	log(LogVoxel, LogLevelDebug, txt)
}

func LogVoxelError(txt string) {
	log(LogVoxel, LogLevelError, txt)
}

func LogPhysicsDebug(txt string) {
	log(LogPhysics, LogLevelDebug, txt)
}

func LogPhysicsInfo(txt string) {
	log(LogPhysics, LogLevelInfo, txt)
}

func LogRenderInfo(txt string) {
	log(LogRender, LogLevelInfo, txt)
}

func LogRenderDebug(txt string) {
	log(LogRender, LogLevelDebug, txt)
}

func LogInputDebug(txt string) {
	log(LogInput, LogLevelDebug, txt)
}

func LogInputInfo(txt string) {
	log(LogInput, LogLevelInfo, txt)
}

func LogInputError(txt string) {
	log(LogInput, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemWarning(txt string) {
	log(LogSystem, LogLevelWarning, txt)
}

func LogSystemError(txt string) {
	log(LogSystem, LogLevelError, txt)
}

func LogIOError(txt string) {
	log(LogIO, LogLevelError, txt)
}

func LogIOInfo(txt string) {
	log(LogIO, LogLevelInfo, txt)
}
