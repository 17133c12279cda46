package common

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewHandler(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	slog.New(handler).Info("calculated", "rows", 3)
	assert.Contains(t, buf.String(), `"msg":"calculated"`)
	assert.Contains(t, buf.String(), `"rows":3`)

	_, err = NewHandler(&buf, slog.LevelInfo, "xml")
	assert.Error(t, err)
}
