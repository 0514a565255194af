package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulePreferenceValidate(t *testing.T) {
	tests := []struct {
		name    string
		pref    SchedulePreference
		wantErr bool
	}{
		{"enabled with valid time", SchedulePreference{DayOfWeek: 1, Time: "09:30", Enabled: true}, false},
		{"enabled at midnight", SchedulePreference{DayOfWeek: 0, Time: "00:00", Enabled: true}, false},
		{"enabled late evening", SchedulePreference{DayOfWeek: 6, Time: "23:59", Enabled: true}, false},
		{"disabled with empty time", SchedulePreference{DayOfWeek: 3, Enabled: false}, false},
		{"disabled with junk time", SchedulePreference{DayOfWeek: 3, Time: "not-a-time", Enabled: false}, false},
		{"day too low", SchedulePreference{DayOfWeek: -1, Time: "09:00", Enabled: true}, true},
		{"day too high", SchedulePreference{DayOfWeek: 7, Time: "09:00", Enabled: true}, true},
		{"hour out of range", SchedulePreference{DayOfWeek: 1, Time: "24:00", Enabled: true}, true},
		{"minute out of range", SchedulePreference{DayOfWeek: 1, Time: "09:60", Enabled: true}, true},
		{"missing leading zero", SchedulePreference{DayOfWeek: 1, Time: "9:30", Enabled: true}, true},
		{"enabled with empty time", SchedulePreference{DayOfWeek: 1, Enabled: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pref.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateSchedulePreferencesRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := UpdateSchedulePreferencesRequest{
			ScheduleID: "s1",
			UpdatedSchedulePreferences: []SchedulePreference{
				{DayOfWeek: 1, Time: "09:00", Enabled: true},
				{DayOfWeek: 2, Enabled: false},
			},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty array is valid", func(t *testing.T) {
		req := UpdateSchedulePreferencesRequest{
			ScheduleID:                 "s1",
			UpdatedSchedulePreferences: []SchedulePreference{},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing schedule id", func(t *testing.T) {
		req := UpdateSchedulePreferencesRequest{
			UpdatedSchedulePreferences: []SchedulePreference{},
		}
		assert.EqualError(t, req.Validate(), "scheduleId is required")
	})

	t.Run("nil preference array", func(t *testing.T) {
		req := UpdateSchedulePreferencesRequest{ScheduleID: "s1"}
		assert.EqualError(t, req.Validate(), "updatedSchedulePreferences must be an array")
	})

	t.Run("duplicate day", func(t *testing.T) {
		req := UpdateSchedulePreferencesRequest{
			ScheduleID: "s1",
			UpdatedSchedulePreferences: []SchedulePreference{
				{DayOfWeek: 1, Time: "09:00", Enabled: true},
				{DayOfWeek: 1, Time: "10:00", Enabled: true},
			},
		}
		assert.ErrorContains(t, req.Validate(), "duplicate dayOfWeek 1")
	})

	t.Run("invalid entry surfaces", func(t *testing.T) {
		req := UpdateSchedulePreferencesRequest{
			ScheduleID: "s1",
			UpdatedSchedulePreferences: []SchedulePreference{
				{DayOfWeek: 9, Time: "09:00", Enabled: true},
			},
		}
		assert.ErrorContains(t, req.Validate(), "dayOfWeek must be between 0 and 6")
	})
}
