package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeTo12Hour(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"14:05", "2:05 PM"},
		{"00:30", "12:30 AM"},
		{"12:00", "12:00 PM"},
		{"11:59", "11:59 AM"},
		{"23:45", "11:45 PM"},
		{"01:07", "1:07 AM"},
	}

	for _, tc := range cases {
		got, err := FormatTimeTo12Hour(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestFormatTimeTo12Hour_Invalid(t *testing.T) {
	for _, in := range []string{"", "14", "25:00", "14:60", "ab:cd", "14:05:30"} {
		_, err := FormatTimeTo12Hour(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestIsDigitsOnly(t *testing.T) {
	assert.True(t, IsDigitsOnly("1234567890"))
	assert.True(t, IsDigitsOnly("0"))
	assert.False(t, IsDigitsOnly(""))
	assert.False(t, IsDigitsOnly("123a456"))
	assert.False(t, IsDigitsOnly("+911234567890"))
	assert.False(t, IsDigitsOnly("12 34"))
}
