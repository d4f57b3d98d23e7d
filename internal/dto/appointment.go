package dto

// ── Appointment DTOs ──

// CreateAppointmentRequest book a service. The customer is keyed by WhatsApp
// phone and created on first contact.
type CreateAppointmentRequest struct {
	StylistID       string `json:"stylist_id"       binding:"required,uuid"`
	CustomerPhone   string `json:"customer_phone"   binding:"required,max=30"`
	CustomerName    string `json:"customer_name"    binding:"required,min=2,max=100"`
	ServiceName     string `json:"service_name"     binding:"required,min=2,max=150"`
	StartTime       string `json:"start_time"       binding:"required"` // RFC 3339
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=15,max=480"`
	Source          string `json:"source"           binding:"omitempty,oneof=whatsapp dashboard"`
}

// UpdateAppointmentStatusRequest status transition.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}

// AppointmentListRequest agenda query parameters.
type AppointmentListRequest struct {
	StylistID string `form:"stylist_id" binding:"omitempty,uuid"`
	From      string `form:"from"       binding:"required"` // "2025-01-06"
	To        string `form:"to"         binding:"required"` // exclusive
}

// AppointmentResponse appointment detail.
type AppointmentResponse struct {
	ID              string `json:"id"`
	StylistID       string `json:"stylist_id"`
	StylistName     string `json:"stylist_name,omitempty"`
	CustomerID      string `json:"customer_id"`
	CustomerName    string `json:"customer_name,omitempty"`
	ServiceName     string `json:"service_name"`
	StartTime       string `json:"start_time"` // RFC 3339, salon timezone
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	Source          string `json:"source"`
}
