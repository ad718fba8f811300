package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{999, "999"},
		{1000, "1k"},
		{1200, "1.2k"},
		{58300, "58.3k"},
		{999999, "1000k"},
		{1000000, "1m"},
		{1500000, "1.5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCompact(tt.in), "FormatCompact(%d)", tt.in)
	}
}

func TestFormatGrouped(t *testing.T) {
	assert.Equal(t, "0", FormatGrouped(0))
	assert.Equal(t, "999", FormatGrouped(999))
	assert.Equal(t, "1,234", FormatGrouped(1234))
	assert.Equal(t, "1,234,567", FormatGrouped(1234567))
}
