package cmd

import (
	"errors"
	"testing"

	"github.com/portify/portify/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig([]string{"10.0.0.5"})
	require.Nil(t, err)

	assert.Equal(t, "10.0.0.5", cfg.target.String())
	assert.Equal(t, uint16(1), cfg.start)
	assert.Equal(t, uint16(1000), cfg.end)
	assert.Equal(t, 1000, cfg.portCount())
}

func TestParseConfigExplicitRange(t *testing.T) {
	cfg, err := parseConfig([]string{"10.0.0.5", "20", "22"})
	require.Nil(t, err)

	assert.Equal(t, uint16(20), cfg.start)
	assert.Equal(t, uint16(22), cfg.end)
	assert.Equal(t, 3, cfg.portCount())
}

func TestParseConfigStartOnly(t *testing.T) {
	cfg, err := parseConfig([]string{"10.0.0.5", "900"})
	require.Nil(t, err)

	assert.Equal(t, uint16(900), cfg.start)
	assert.Equal(t, uint16(1000), cfg.end)
}

func TestParseConfigFullRange(t *testing.T) {
	cfg, err := parseConfig([]string{"10.0.0.5", "0", "65535"})
	require.Nil(t, err)
	assert.Equal(t, 65536, cfg.portCount())
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no target", nil, scan.ErrInvalidTarget},
		{"ipv6 target", []string{"::1"}, scan.ErrInvalidTarget},
		{"inverted range", []string{"10.0.0.5", "23", "22"}, scan.ErrInvalidRange},
		{"start above default end", []string{"10.0.0.5", "2000"}, scan.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseConfigMissingTarget(t *testing.T) {
	_, err := parseConfig([]string{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, scan.ErrInvalidTarget))
	assert.Contains(t, err.Error(), "please specify a target")
}

func TestParsePort(t *testing.T) {
	port, err := parsePort(" 8080 ")
	require.Nil(t, err)
	assert.Equal(t, uint16(8080), port)

	for _, bad := range []string{"65536", "-1", "http", ""} {
		_, err := parsePort(bad)
		assert.Error(t, err, bad)
	}
}
