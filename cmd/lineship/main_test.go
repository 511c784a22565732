package main

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionalArgs(t *testing.T) {
	cmd := &cobra.Command{Use: "lineship"}

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"complete", []string{"f", "h", "1", "tcp"}, false},
		{"missing protocol", []string{"f", "h", "1"}, true},
		{"none", nil, true},
		{"extra", []string{"f", "h", "1", "tcp", "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := positionalArgs(cmd, tt.args)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var uerr usageError
			require.Error(t, err)
			assert.True(t, errors.As(err, &uerr), "want usage error, got %T", err)
		})
	}
}

func TestUsageError_Unwrap(t *testing.T) {
	base := errors.New("bad flag")
	err := usageError{base}
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "bad flag", err.Error())
}
