package logging

import (
	"testing"

	"github.com/nishad/drugrake/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		debug         bool
	}{
		{"debug", FormatJSON, true},
		{"info", FormatConsole, false},
		{"warn", "", false},
		{"DEBUG", FormatConsole, true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Core().Enabled(zap.DebugLevel))
			assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
		})
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("loud", FormatJSON)
	assert.True(t, errors.IsKind(err, errors.KindConfig))

	_, err = New("info", "xml")
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}
