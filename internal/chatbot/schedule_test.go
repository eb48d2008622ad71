package chatbot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

func TestIsAttended(t *testing.T) {
	schedule := domain.Schedule{Start: "09:00", End: "18:00", Timezone: "America/Mexico_City"}
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "inside window", now: time.Date(2024, 1, 1, 14, 0, 0, 0, loc), want: true},
		{name: "before window", now: time.Date(2024, 1, 1, 8, 59, 0, 0, loc), want: false},
		{name: "start boundary inclusive", now: time.Date(2024, 1, 1, 9, 0, 0, 0, loc), want: true},
		{name: "end boundary exclusive", now: time.Date(2024, 1, 1, 18, 0, 0, 0, loc), want: false},
		{name: "after window", now: time.Date(2024, 1, 1, 20, 0, 0, 0, loc), want: false},
		// 20:00 UTC is 14:00 in Mexico City; the instant must be converted
		// to the shop's zone before comparison.
		{name: "converts from other zone", now: time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsAttended(schedule, tt.now))
		})
	}
}

func TestIsAttendedStartEqualsEndIsClosed(t *testing.T) {
	schedule := domain.Schedule{Start: "09:00", End: "09:00", Timezone: "UTC"}
	require.False(t, IsAttended(schedule, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)))
	require.False(t, IsAttended(schedule, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestIsAttendedUnsetScheduleIsAlwaysOpen(t *testing.T) {
	require.True(t, IsAttended(domain.Schedule{}, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)))
}

func TestIsAttendedBadValuesAreClosed(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.False(t, IsAttended(domain.Schedule{Start: "9am", End: "18:00", Timezone: "UTC"}, now))
	require.False(t, IsAttended(domain.Schedule{Start: "09:00", End: "18:00", Timezone: "Mars/Olympus"}, now))
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule domain.Schedule
		wantErr  bool
	}{
		{name: "valid", schedule: domain.Schedule{Start: "09:00", End: "18:00", Timezone: "America/Mexico_City"}},
		{name: "unset is valid", schedule: domain.Schedule{}},
		{name: "bad start", schedule: domain.Schedule{Start: "25:00", End: "18:00", Timezone: "UTC"}, wantErr: true},
		{name: "bad end", schedule: domain.Schedule{Start: "09:00", End: "18:75", Timezone: "UTC"}, wantErr: true},
		{name: "missing timezone", schedule: domain.Schedule{Start: "09:00", End: "18:00"}, wantErr: true},
		{name: "unknown timezone", schedule: domain.Schedule{Start: "09:00", End: "18:00", Timezone: "Mars/Olympus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
