// Package writers resolves the --log-output flag into an io.Writer.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriterType classifies a log output target.
type WriterType string

const (
	WriterTypeStdout WriterType = "stdout"
	WriterTypeStderr WriterType = "stderr"
	WriterTypeFile   WriterType = "file"
)

// ParseWriterType classifies an output spec without opening anything.
// Callers use it to pick a log format before the writer exists: file
// targets get JSON, the console gets text.
func ParseWriterType(output string) WriterType {
	switch output {
	case "", "stdout":
		return WriterTypeStdout
	case "stderr":
		return WriterTypeStderr
	default:
		return WriterTypeFile
	}
}

// CreateWriter resolves an output spec into a writer. Accepted specs are
// "stdout", "" (also stdout), "stderr", "file://<path>", and bare paths
// containing a separator. Anything else, including non-file URLs, is an
// error so a typo never silently swallows logs.
func CreateWriter(output string) (io.Writer, error) {
	switch ParseWriterType(output) {
	case WriterTypeStdout:
		return os.Stdout, nil
	case WriterTypeStderr:
		return os.Stderr, nil
	}

	path, ok := filePathFor(output)
	if !ok {
		return nil, fmt.Errorf("unsupported log output %q", output)
	}
	return openLogFile(path)
}

func filePathFor(output string) (string, bool) {
	if after, found := strings.CutPrefix(output, "file://"); found {
		return after, true
	}
	if strings.Contains(output, "://") {
		return "", false
	}
	if strings.ContainsAny(output, `/\`) {
		return output, true
	}
	return "", false
}

// openLogFile appends to the target, creating parent directories first.
func openLogFile(path string) (io.Writer, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
