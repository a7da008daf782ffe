package utils

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger builds a logfmt logger filtered at the named level
func NewLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var allow level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	case "none":
		allow = level.AllowNone()
	default:
		allow = level.AllowInfo()
	}
	return level.NewFilter(logger, allow)
}
