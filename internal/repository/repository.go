package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate entry point for all repositories.
type Repository struct {
	db *gorm.DB

	User            UserRepository
	Stylist         StylistRepository
	Customer        CustomerRepository
	Appointment     AppointmentRepository
	BlockingEvent   BlockingEventRepository
	RecurringSeries RecurringSeriesRepository
	BusinessHours   BusinessHoursRepository
}

// NewRepository builds the repository aggregate on a shared DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		User:            NewUserRepo(db),
		Stylist:         NewStylistRepo(db),
		Customer:        NewCustomerRepo(db),
		Appointment:     NewAppointmentRepo(db),
		BlockingEvent:   NewBlockingEventRepo(db),
		RecurringSeries: NewRecurringSeriesRepo(db),
		BusinessHours:   NewBusinessHoursRepo(db),
	}
}

// Transaction runs fn against a transaction-scoped aggregate. A non-nil
// error from fn rolls back every write made through it, which is what makes
// series materialization all-or-nothing.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// In-memory test aggregates have no DB handle; writes are applied
		// directly and the caller's mocks simulate failure injection.
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
