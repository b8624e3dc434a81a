package main

import (
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"trace", log.LevelTrace},
		{"debug", log.LevelDebug},
		{"info", log.LevelInfo},
		{"warn", log.LevelWarn},
		{"error", log.LevelError},
		{"crit", log.LevelCrit},
		{"INFO", log.LevelInfo},
		{"bogus", log.LevelInfo},
		{"", log.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, levelFromString(tt.input))
		})
	}
}
