package logging

import (
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes a resource such as a feed download body. A failed close is logged
// with operation and attrs (typically the feed source) and otherwise ignored.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, operation string, attrs ...slog.Attr) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		LogError(logger, "failed to close resource", err,
			append([]slog.Attr{slog.String("operation", operation)}, attrs...)...)
	}
}
