package store

import "github.com/dribeiro/datahub/internal/model"

// Demo reference data shared by the storage backends: three CRM-like
// sources, their templates, the deposit destinations and one weekly
// schedule per source+template pair.

// SeedSources returns the demo sources
func SeedSources() []model.Source {
	return []model.Source{
		{ID: "1", Name: "Salesforce", APIURL: "https://api.salesforce.example.com/v1/records"},
		{ID: "2", Name: "HubSpot", APIURL: "https://api.hubspot.example.com/crm/v3/objects"},
		{ID: "3", Name: "Zendesk", APIURL: "https://example.zendesk.example.com/api/v2/tickets"},
	}
}

// SeedTemplates returns the demo templates
func SeedTemplates() []model.Template {
	return []model.Template{
		{ID: "t1", Name: "Contacts", SourceID: "1"},
		{ID: "t2", Name: "Opportunities", SourceID: "1"},
		{ID: "t3", Name: "Companies", SourceID: "2"},
		{ID: "t4", Name: "Deals", SourceID: "2"},
		{ID: "t5", Name: "Tickets", SourceID: "3"},
	}
}

// SeedDestinations returns the demo destinations
func SeedDestinations() []model.Destination {
	return []model.Destination{
		{ID: "d1", Name: "SFTP Server"},
		{ID: "d2", Name: "S3 Bucket"},
		{ID: "d3", Name: "Email"},
	}
}

// SeedSchedules returns the demo schedules, each with a full disabled week
func SeedSchedules() []model.Schedule {
	return []model.Schedule{
		{ID: "s1", SourceID: "1", TemplateID: "t1", SchedulePreferences: DefaultWeek()},
		{ID: "s2", SourceID: "2", TemplateID: "t3", SchedulePreferences: DefaultWeek()},
		{ID: "s3", SourceID: "3", TemplateID: "t5", SchedulePreferences: DefaultWeek()},
	}
}

// DefaultWeek builds a disabled 7-day preference matrix, one entry per
// dayOfWeek 0-6.
func DefaultWeek() []model.SchedulePreference {
	prefs := make([]model.SchedulePreference, 0, 7)
	for day := 0; day < 7; day++ {
		prefs = append(prefs, model.SchedulePreference{
			DayOfWeek: day,
			Time:      "09:00",
			Enabled:   false,
		})
	}
	return prefs
}
