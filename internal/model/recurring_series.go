package model

import "time"

// RecurringSeries the generative template behind a blocked-time series,
// maps to recurring_series
//
// ByDay holds comma-separated weekday codes (MO..SU) for WEEKLY rules,
// ByMonthDay comma-separated day numbers for MONTHLY rules; hydration picks
// the column matching Frequency. Time-of-day columns are wall-clock "15:04"
// strings in the salon timezone.
type RecurringSeries struct {
	SeriesID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"series_id"`
	StylistID        string    `gorm:"type:uuid;not null;index"                       json:"stylist_id"`
	Title            string    `gorm:"type:varchar(150);not null"                     json:"title"`
	Description      string    `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	EventType        string    `gorm:"type:varchar(20);not null;default:'other'"      json:"event_type"`
	StartTimeOfDay   string    `gorm:"type:time;not null"                             json:"start_time_of_day"`
	EndTimeOfDay     string    `gorm:"type:time;not null"                             json:"end_time_of_day"`
	Frequency        string    `gorm:"type:varchar(10);not null"                      json:"frequency"` // WEEKLY | MONTHLY
	RuleInterval     int       `gorm:"column:rule_interval;type:smallint;not null;default:1" json:"interval"`
	ByDay            string    `gorm:"type:varchar(30)"                               json:"by_day,omitempty"`
	ByMonthDay       string    `gorm:"type:varchar(120)"                              json:"by_month_day,omitempty"`
	StartDate        time.Time `gorm:"type:date;not null"                             json:"start_date"`
	OccurrenceCount  int       `gorm:"type:smallint;not null"                         json:"occurrence_count"` // 1..52
	InstancesCreated int       `gorm:"type:smallint;not null;default:0"               json:"instances_created"`
	SoftDeleteModel

	Stylist *Stylist `gorm:"foreignKey:StylistID;references:StylistID" json:"stylist,omitempty"`
}

// TableName table name
func (RecurringSeries) TableName() string { return "recurring_series" }
