package model

import "time"

// Appointment statuses. Only pending and confirmed occupy the agenda for
// conflict purposes.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentExpired   = "expired"
)

// LiveAppointmentStatuses the statuses that count as conflict sources.
var LiveAppointmentStatuses = []string{AppointmentPending, AppointmentConfirmed}

// Appointment a booked service, maps to appointments
type Appointment struct {
	AppointmentID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"appointment_id"`
	StylistID       string    `gorm:"type:uuid;not null;index"                       json:"stylist_id"`
	CustomerID      string    `gorm:"type:uuid;not null"                             json:"customer_id"`
	ServiceName     string    `gorm:"type:varchar(150);not null"                     json:"service_name"`
	StartTime       time.Time `gorm:"type:timestamptz;not null;index"                json:"start_time"`
	DurationMinutes int       `gorm:"type:smallint;not null"                         json:"duration_minutes"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Source          string    `gorm:"type:varchar(20);not null;default:'whatsapp'"   json:"source"` // whatsapp | dashboard
	VersionedModel

	Stylist  *Stylist  `gorm:"foreignKey:StylistID;references:StylistID"    json:"stylist,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID;references:CustomerID"  json:"customer,omitempty"`
}

// TableName table name
func (Appointment) TableName() string { return "appointments" }

// EndTime the exclusive end instant, derived from start and duration.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
