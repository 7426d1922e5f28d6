package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "9:00", wantErr: true},
		{in: "09:0", wantErr: true},
		{in: "9:000", wantErr: true},
		{in: " 9:00", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "09:00:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.in)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestOnHalfHourGrid(t *testing.T) {
	for in, want := range map[string]bool{
		"09:00":  true,
		"23:30":  true,
		"9:00":   false,
		"09:15":  false,
		"24:00":  false,
		"x09:00": false,
	} {
		assert.Equal(t, want, OnHalfHourGrid(in), in)
	}
}
