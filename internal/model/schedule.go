package model

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SchedulePreference is one day's entry in a schedule's weekly matrix.
// DayOfWeek is the key within the array (0 = Sunday); Time is only meaningful
// when Enabled.
type SchedulePreference struct {
	DayOfWeek int    `json:"dayOfWeek" bson:"day_of_week"`
	Time      string `json:"time,omitempty" bson:"time,omitempty"`
	Enabled   bool   `json:"enabled" bson:"enabled"`
}

// Validate validates a single preference entry
func (p *SchedulePreference) Validate() error {
	if p.DayOfWeek < 0 || p.DayOfWeek > 6 {
		return fmt.Errorf("dayOfWeek must be between 0 and 6, got %d", p.DayOfWeek)
	}
	if p.Enabled && !timeOfDayRe.MatchString(p.Time) {
		return fmt.Errorf("time must be in HH:mm format when enabled, got %q", p.Time)
	}
	return nil
}

// Schedule is a recurring weekly trigger configuration for a source+template
// pair. Preference lookup is by DayOfWeek, not array index.
type Schedule struct {
	ID                  string               `json:"id" bson:"_id"`
	SourceID            string               `json:"sourceId" bson:"source_id"`
	TemplateID          string               `json:"templateId" bson:"template_id"`
	SchedulePreferences []SchedulePreference `json:"schedulePreferences" bson:"schedule_preferences"`
}

// ScheduleWithNextRun augments a schedule with its computed next firing time.
type ScheduleWithNextRun struct {
	Schedule
	NextRun *time.Time `json:"nextRun,omitempty"`
}

// UpdateSchedulePreferencesRequest is the body of PUT /schedules.
type UpdateSchedulePreferencesRequest struct {
	ScheduleID                 string               `json:"scheduleId"`
	UpdatedSchedulePreferences []SchedulePreference `json:"updatedSchedulePreferences"`
}

// Validate validates the update request. Day range, duplicate days and time
// format are all enforced; the preference array itself must be present.
func (r *UpdateSchedulePreferencesRequest) Validate() error {
	if r.ScheduleID == "" {
		return errors.New("scheduleId is required")
	}
	if r.UpdatedSchedulePreferences == nil {
		return errors.New("updatedSchedulePreferences must be an array")
	}

	seen := make(map[int]bool, len(r.UpdatedSchedulePreferences))
	for i := range r.UpdatedSchedulePreferences {
		pref := &r.UpdatedSchedulePreferences[i]
		if err := pref.Validate(); err != nil {
			return err
		}
		if seen[pref.DayOfWeek] {
			return fmt.Errorf("duplicate dayOfWeek %d", pref.DayOfWeek)
		}
		seen[pref.DayOfWeek] = true
	}

	return nil
}
