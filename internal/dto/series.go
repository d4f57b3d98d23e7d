package dto

// ── Recurring-series DTOs ──

// RuleRequest the recurrence rule of a series draft. ByDay applies to WEEKLY
// rules, ByMonthDay to MONTHLY rules; the inactive one must be empty.
type RuleRequest struct {
	Frequency  string `json:"frequency"    binding:"required,oneof=WEEKLY MONTHLY"`
	Interval   int    `json:"interval"     binding:"required,min=1"`
	ByDay      string `json:"by_day"       binding:"omitempty,max=30"`  // "MO,WE"
	ByMonthDay string `json:"by_month_day" binding:"omitempty,max=120"` // "1,15"
	StartDate  string `json:"start_date"   binding:"required"` // "2025-01-06"
	Count      int    `json:"count"        binding:"required,min=1,max=52"`
}

// PreviewSeriesRequest dry-run a series draft: expanded dates, business-hours
// validation and conflict report, with no persistence.
type PreviewSeriesRequest struct {
	StylistID      string      `json:"stylist_id"        binding:"required,uuid"`
	Title          string      `json:"title"             binding:"required,min=2,max=150"`
	EventType      string      `json:"event_type"        binding:"omitempty,oneof=vacation meeting break other"`
	StartTimeOfDay string      `json:"start_time_of_day" binding:"required"` // "14:00"
	EndTimeOfDay   string      `json:"end_time_of_day"   binding:"required"` // "16:00"
	Rule           RuleRequest `json:"rule"              binding:"required"`
}

// CreateSeriesRequest materialize a series after an explicit confirmation.
type CreateSeriesRequest struct {
	PreviewSeriesRequest
	Description string `json:"description" binding:"omitempty,max=500"`
}

// ConflictResponse one detected overlap.
type ConflictResponse struct {
	Date  string `json:"date"`  // "2025-01-08"
	Kind  string `json:"kind"`  // appointment | blocking_event
	Label string `json:"label"` // customer first name or event title
	Start string `json:"start"` // "10:30", salon local time
	End   string `json:"end"`   // "11:30"
}

// PreviewSeriesResponse the dry-run report.
type PreviewSeriesResponse struct {
	Dates        []string           `json:"dates"`
	Conflicts    []ConflictResponse `json:"conflicts"`
	HasConflicts bool               `json:"has_conflicts"`
}

// SeriesResponse series template detail.
type SeriesResponse struct {
	ID               string `json:"id"`
	StylistID        string `json:"stylist_id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	EventType        string `json:"event_type"`
	StartTimeOfDay   string `json:"start_time_of_day"`
	EndTimeOfDay     string `json:"end_time_of_day"`
	Frequency        string `json:"frequency"`
	Interval         int    `json:"interval"`
	ByDay            string `json:"by_day,omitempty"`
	ByMonthDay       string `json:"by_month_day,omitempty"`
	StartDate        string `json:"start_date"`
	Count            int    `json:"count"`
	InstancesCreated int    `json:"instances_created"`
	CreatedAt        string `json:"created_at"`
}

// UpdateSeriesRequest bulk edit of the template. Applies to every future
// non-exception instance.
type UpdateSeriesRequest struct {
	Title          *string `json:"title"             binding:"omitempty,min=2,max=150"`
	Description    *string `json:"description"       binding:"omitempty,max=500"`
	EventType      *string `json:"event_type"        binding:"omitempty,oneof=vacation meeting break other"`
	StartTimeOfDay *string `json:"start_time_of_day"`
	EndTimeOfDay   *string `json:"end_time_of_day"`
}

// UpdateOccurrenceRequest move or retitle a single materialized instance.
// The instance becomes an exception, detached from bulk edits.
type UpdateOccurrenceRequest struct {
	Title     *string `json:"title"      binding:"omitempty,min=2,max=150"`
	StartTime *string `json:"start_time" binding:"omitempty"` // RFC 3339
	EndTime   *string `json:"end_time"   binding:"omitempty"` // RFC 3339
}

// AppendOccurrencesRequest extend a series by N trailing occurrences.
type AppendOccurrencesRequest struct {
	Count int `json:"count" binding:"required,min=1"`
}

// TrimOccurrencesRequest drop the last N non-exception occurrences.
type TrimOccurrencesRequest struct {
	Count int `json:"count" binding:"required,min=1"`
}

// BlockingEventResponse one materialized occurrence (or standalone event).
type BlockingEventResponse struct {
	ID              string  `json:"id"`
	StylistID       string  `json:"stylist_id"`
	Title           string  `json:"title"`
	EventType       string  `json:"event_type"`
	StartTime       string  `json:"start_time"` // RFC 3339, salon timezone
	EndTime         string  `json:"end_time"`
	SeriesID        *string `json:"series_id,omitempty"`
	OccurrenceIndex *int    `json:"occurrence_index,omitempty"`
	IsException     bool    `json:"is_exception"`
}
