package logging

import "log/slog"

// Progress emits a structured progress entry for a long-running stage. The
// current/total pair and the derived percentage are carried as attrs so
// machine consumers can track completion without parsing the message.
func Progress(logger *slog.Logger, stage string, current, total int, message string) {
	if message == "" {
		message = "Progress"
	}
	percent := 0
	if total > 0 {
		percent = current * 100 / total
	}
	logger.Info(message,
		"stage", stage,
		"current", current,
		"total", total,
		"percent", percent)
}
