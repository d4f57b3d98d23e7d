package dto

// ── Business-hours DTOs ──

// DayWindow an open interval of a weekday. A nil *DayWindow in the summary
// means the salon is closed that day.
type DayWindow struct {
	Open  string `json:"open"`  // "10:00"
	Close string `json:"close"` // "20:00"
}

// WeekSummaryResponse opening windows keyed by weekday index (0=Monday ..
// 6=Sunday). Every one of the 7 weekdays is present; closed days carry null.
type WeekSummaryResponse struct {
	Days map[int]*DayWindow `json:"days"`
}

// UpsertBusinessHoursRequest replace one weekday's configuration.
type UpsertBusinessHoursRequest struct {
	Weekday   *int   `json:"weekday"    binding:"required,min=0,max=6"`
	Closed    bool   `json:"closed"`
	OpenTime  string `json:"open_time"  binding:"omitempty"` // "10:00"
	CloseTime string `json:"close_time" binding:"omitempty"` // "20:00"
}

// OpenDayResponse one upcoming bookable day.
type OpenDayResponse struct {
	Date    string `json:"date"` // "2025-01-08"
	Weekday int    `json:"weekday"`
	Name    string `json:"name"` // localized, "miércoles"
}
