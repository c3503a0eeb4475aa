package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmt(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", []string{"1234.5"}, "1,234.5\n"},
		{"trailing zeros trimmed", []string{"2.50"}, "2.5\n"},
		{"half away from zero", []string{"0.125"}, "0.13\n"},
		{"negative half away from zero", []string{"--", "-0.125"}, "-0.13\n"},
		{"no digits", []string{"1234.5", "--digits", "0", "--commas=false"}, "1235\n"},
		{"german separators", []string{"1234.5", "--locale", "de"}, "1.234,5\n"},
		{"more digits", []string{"3.14159265", "--digits", "4"}, "3.1416\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append([]string{"fmt"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFmt_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"digits too large", []string{"1", "--digits", "21"}, ErrCodeInvalidInput},
		{"negative digits", []string{"1", "--digits=-1"}, ErrCodeInvalidInput},
		{"bad locale", []string{"1", "--locale", "not a locale"}, ErrCodeInvalidInput},
		{"not a number", []string{"many"}, ErrCodeInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append([]string{"--format", "json", "fmt"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp, _ := decodeJSON(t, out)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
