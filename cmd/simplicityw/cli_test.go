package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		arg  string
		want uint64
	}{
		{"1", 100000000},
		{"0.5", 50000000},
		{"0.00000001", 1},
		{"21.12345678", 2112345678},
	}
	for _, tt := range tests {
		sats, err := parseAmount(tt.arg)
		require.NoError(t, err)
		assert.Equal(t, tt.want, sats)
	}
}

func TestFailingParseAmount(t *testing.T) {
	for _, arg := range []string{
		"", "abc", "-1", "0", "0.000000001",
	} {
		_, err := parseAmount(arg)
		assert.Error(t, err, arg)
	}
}
