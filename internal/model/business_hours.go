package model

// BusinessHours per-weekday opening configuration, maps to business_hours
//
// WeekdayIndex is 0=Monday .. 6=Sunday. Closed days carry an explicit flag;
// open/close columns are never null-with-meaning. Weekdays without a row
// default to closed at the service layer.
type BusinessHours struct {
	BusinessHoursID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"business_hours_id"`
	WeekdayIndex    int    `gorm:"type:smallint;not null;uniqueIndex"             json:"weekday_index"` // 0-6
	IsClosed        bool   `gorm:"not null;default:false"                         json:"is_closed"`
	OpenTime        string `gorm:"type:time;not null;default:'10:00'"             json:"open_time"`
	CloseTime       string `gorm:"type:time;not null;default:'20:00'"             json:"close_time"`
	BaseModel
}

// TableName table name
func (BusinessHours) TableName() string { return "business_hours" }
