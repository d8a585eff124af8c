package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		stage       string
		current     int
		total       int
		message     string
		wantMsg     string
		wantPercent float64
	}{
		{
			name:        "halfway through",
			stage:       "render",
			current:     5,
			total:       10,
			message:     "notes/a.md",
			wantMsg:     "notes/a.md",
			wantPercent: 50,
		},
		{
			name:        "complete",
			stage:       "write",
			current:     3,
			total:       3,
			message:     "b.html",
			wantMsg:     "b.html",
			wantPercent: 100,
		},
		{
			name:        "empty message gets a default",
			stage:       "render",
			current:     1,
			total:       4,
			wantMsg:     "Progress",
			wantPercent: 25,
		},
		{
			name:        "zero total does not divide",
			stage:       "write",
			current:     0,
			total:       0,
			message:     "nothing to do",
			wantMsg:     "nothing to do",
			wantPercent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			Progress(logger, tt.stage, tt.current, tt.total, tt.message)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "INFO", entry["level"])
			assert.Equal(t, tt.wantMsg, entry["msg"])
			assert.Equal(t, tt.stage, entry["stage"])
			assert.Equal(t, float64(tt.current), entry["current"])
			assert.Equal(t, float64(tt.total), entry["total"])
			assert.Equal(t, tt.wantPercent, entry["percent"])
		})
	}
}
