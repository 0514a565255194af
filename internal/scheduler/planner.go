// Package scheduler computes when a weekly schedule would next fire. It is a
// read-only planner surfaced on the schedules API; nothing here triggers
// extractions unattended.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dribeiro/datahub/internal/model"
	"github.com/robfig/cron/v3"
)

// Planner translates a schedule's weekly day/time matrix into cron
// expressions and evaluates them.
type Planner struct {
	parser cron.Parser
}

// NewPlanner creates a new planner
func NewPlanner() *Planner {
	return &Planner{
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

// NextRun returns the earliest upcoming firing time across the schedule's
// enabled preferences, or false when no day is enabled or parseable.
func (p *Planner) NextRun(schedule model.Schedule, now time.Time) (time.Time, bool) {
	var next time.Time
	found := false

	for _, pref := range schedule.SchedulePreferences {
		if !pref.Enabled {
			continue
		}

		expr, err := CronExpression(pref)
		if err != nil {
			slog.Warn("Skipping malformed schedule preference",
				"schedule_id", schedule.ID,
				"day_of_week", pref.DayOfWeek,
				"error", err.Error(),
			)
			continue
		}

		spec, err := p.parser.Parse(expr)
		if err != nil {
			slog.Warn("Failed to parse schedule cron expression",
				"schedule_id", schedule.ID,
				"expression", expr,
				"error", err.Error(),
			)
			continue
		}

		candidate := spec.Next(now)
		if !found || candidate.Before(next) {
			next = candidate
			found = true
		}
	}

	return next, found
}

// CronExpression converts one enabled preference into a standard 5-field
// cron expression ("30 9 * * 1" for Mondays at 09:30).
func CronExpression(pref model.SchedulePreference) (string, error) {
	if err := pref.Validate(); err != nil {
		return "", err
	}
	if !pref.Enabled {
		return "", fmt.Errorf("preference for day %d is disabled", pref.DayOfWeek)
	}

	var hour, minute int
	if _, err := fmt.Sscanf(pref.Time, "%d:%d", &hour, &minute); err != nil {
		return "", fmt.Errorf("invalid time %q: %w", pref.Time, err)
	}

	return fmt.Sprintf("%d %d * * %d", minute, hour, pref.DayOfWeek), nil
}
