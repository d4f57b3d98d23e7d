package model

import "time"

// Blocking event types.
const (
	EventVacation = "vacation"
	EventMeeting  = "meeting"
	EventBreak    = "break"
	EventOther    = "other"
)

// BlockingEvent a non-appointment interval that removes availability from a
// stylist's agenda, maps to blocking_events
//
// Series membership is a weak back-reference: deleting the series detaches
// its instances (RecurringSeriesID nulled, IsException set) instead of
// cascading, so materialized occurrences keep standing as standalone events.
type BlockingEvent struct {
	EventID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	StylistID        string    `gorm:"type:uuid;not null;index"                       json:"stylist_id"`
	Title            string    `gorm:"type:varchar(150);not null"                     json:"title"`
	EventType        string    `gorm:"type:varchar(20);not null;default:'other'"      json:"event_type"`
	StartTime        time.Time `gorm:"type:timestamptz;not null;index"                json:"start_time"`
	EndTime          time.Time `gorm:"type:timestamptz;not null"                      json:"end_time"`
	RecurringSeriesID *string  `gorm:"type:uuid;index"                                json:"recurring_series_id,omitempty"`
	OccurrenceIndex  *int      `gorm:"type:smallint"                                  json:"occurrence_index,omitempty"`
	IsException      bool      `gorm:"not null;default:false"                         json:"is_exception"`
	SoftDeleteModel

	Stylist *Stylist         `gorm:"foreignKey:StylistID;references:StylistID"                json:"stylist,omitempty"`
	Series  *RecurringSeries `gorm:"foreignKey:RecurringSeriesID;references:SeriesID"         json:"series,omitempty"`
}

// TableName table name
func (BlockingEvent) TableName() string { return "blocking_events" }
