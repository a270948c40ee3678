package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCronExpression(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"*/5 * * * *", false},
		{"0 4 * * *", false},
		{"0 0 * * 0", false},
		{"15,45 9-17 * * 1-5", false},
		{"* * * *", true},       // 4 fields
		{"61 * * * *", true},    // minute out of range
		{"* 25 * * *", true},    // hour out of range
		{"*/x * * * *", true},   // bad step
		{"not a cron", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := ParseCronExpression(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCronExpression_Next(t *testing.T) {
	// Friday 2026-08-21 10:07 UTC
	from := time.Date(2026, 8, 21, 10, 7, 0, 0, time.UTC)

	t.Run("every five minutes", func(t *testing.T) {
		ce, err := ParseCronExpression("*/5 * * * *")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 21, 10, 10, 0, 0, time.UTC), ce.Next(from))
	})

	t.Run("daily at four", func(t *testing.T) {
		ce, err := ParseCronExpression("0 4 * * *")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 22, 4, 0, 0, 0, time.UTC), ce.Next(from))
	})

	t.Run("sunday midnight", func(t *testing.T) {
		ce, err := ParseCronExpression("0 0 * * 0")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), ce.Next(from))
	})
}

func TestCronExpression_ImplementsSchedule(t *testing.T) {
	var _ Schedule = MustParseCronExpression("*/5 * * * *")
}

func TestIntervalSchedule(t *testing.T) {
	s := NewIntervalSchedule(10 * time.Minute)
	from := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, from.Add(10*time.Minute), s.Next(from))
	assert.NotEmpty(t, s.String())
}
