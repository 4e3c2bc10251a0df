package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		dev     bool
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{name: "development debug", dev: true, level: "debug", enabled: zapcore.DebugLevel},
		{name: "production info", dev: false, level: "info", enabled: zapcore.InfoLevel},
		{name: "unknown level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.dev, tt.level)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Desugar().Core().Enabled(tt.enabled))
			assert.False(t, log.Desugar().Core().Enabled(tt.enabled-1))
		})
	}
}
