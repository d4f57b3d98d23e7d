package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

func newTestAppointments(t *testing.T) (AppointmentService, *repository.Repository) {
	t.Helper()
	repo := newMockRepository()
	logger := zap.NewNop()
	hours := NewBusinessHoursService(repo, testLoc, logger)
	svc := NewAppointmentService(repo, hours, testLoc, logger)

	if err := repo.Stylist.Create(context.Background(), &model.Stylist{
		StylistID:   testStylistID,
		DisplayName: "Carmen",
		IsActive:    true,
	}); err != nil {
		t.Fatalf("seed stylist: %v", err)
	}
	seedOpenWeek(t, repo)
	return svc, repo
}

func bookingRequest(start time.Time, minutes int) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		StylistID:       testStylistID,
		CustomerPhone:   "34600111222",
		CustomerName:    "María",
		ServiceName:     "corte y peinado",
		StartTime:       start.Format(time.RFC3339),
		DurationMinutes: minutes,
	}
}

func TestCreateAppointment(t *testing.T) {
	svc, repo := newTestAppointments(t)

	start := time.Date(2030, 1, 8, 11, 0, 0, 0, testLoc)
	resp, err := svc.Create(context.Background(), bookingRequest(start, 60))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if resp.Status != model.AppointmentPending {
		t.Errorf("Status = %q, want pending", resp.Status)
	}
	if resp.Source != "whatsapp" {
		t.Errorf("Source = %q, want whatsapp default", resp.Source)
	}
	if resp.CustomerName != "María" {
		t.Errorf("CustomerName = %q, want María", resp.CustomerName)
	}

	// First contact created the customer keyed by phone.
	customer, err := repo.Customer.GetByPhone(context.Background(), "34600111222")
	if err != nil {
		t.Fatalf("customer not created: %v", err)
	}
	if customer.FirstName != "María" {
		t.Errorf("FirstName = %q, want María", customer.FirstName)
	}
}

func TestCreateReusesCustomerByPhone(t *testing.T) {
	svc, repo := newTestAppointments(t)

	first, err := svc.Create(context.Background(), bookingRequest(time.Date(2030, 1, 8, 11, 0, 0, 0, testLoc), 60))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	second, err := svc.Create(context.Background(), bookingRequest(time.Date(2030, 1, 9, 11, 0, 0, 0, testLoc), 60))
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if first.CustomerID != second.CustomerID {
		t.Errorf("customer ids differ: %s vs %s", first.CustomerID, second.CustomerID)
	}

	appts, _ := repo.Appointment.ListByRange(context.Background(),
		time.Date(2030, 1, 1, 0, 0, 0, 0, testLoc), time.Date(2030, 2, 1, 0, 0, 0, 0, testLoc))
	if len(appts) != 2 {
		t.Errorf("got %d appointments, want 2", len(appts))
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, _ := newTestAppointments(t)

	start := time.Date(2030, 1, 8, 11, 0, 0, 0, testLoc)
	if _, err := svc.Create(context.Background(), bookingRequest(start, 60)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.Create(context.Background(), bookingRequest(start.Add(30*time.Minute), 60)); !errors.Is(err, ErrSlotConflict) {
		t.Fatalf("overlapping booking = %v, want ErrSlotConflict", err)
	}
}

func TestCreateAllowsBackToBack(t *testing.T) {
	svc, _ := newTestAppointments(t)

	start := time.Date(2030, 1, 8, 11, 0, 0, 0, testLoc)
	if _, err := svc.Create(context.Background(), bookingRequest(start, 60)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.Create(context.Background(), bookingRequest(start.Add(time.Hour), 60)); err != nil {
		t.Fatalf("back-to-back booking rejected: %v", err)
	}
}

func TestCreateRejectsBlockedSlot(t *testing.T) {
	svc, repo := newTestAppointments(t)

	day := time.Date(2030, 1, 8, 0, 0, 0, 0, testLoc)
	err := repo.BlockingEvent.Create(context.Background(), &model.BlockingEvent{
		StylistID: testStylistID,
		Title:     "Vacaciones",
		EventType: model.EventVacation,
		StartTime: withClock(day, 9, 0, testLoc),
		EndTime:   withClock(day, 20, 0, testLoc),
	})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}

	start := withClock(day, 11, 0, testLoc)
	if _, err := svc.Create(context.Background(), bookingRequest(start, 60)); !errors.Is(err, ErrSlotConflict) {
		t.Fatalf("blocked booking = %v, want ErrSlotConflict", err)
	}
}

func TestCreateRejectsOutsideOpeningHours(t *testing.T) {
	svc, _ := newTestAppointments(t)

	start := time.Date(2030, 1, 8, 19, 30, 0, 0, testLoc) // closes at 20:00
	var vErr *ValidationError
	if _, err := svc.Create(context.Background(), bookingRequest(start, 60)); !errors.As(err, &vErr) {
		t.Fatalf("late booking = %v, want *ValidationError", err)
	}
}

func TestCreateRejectsInactiveStylist(t *testing.T) {
	svc, repo := newTestAppointments(t)

	stylist, _ := repo.Stylist.GetByID(context.Background(), testStylistID)
	stylist.IsActive = false
	if err := repo.Stylist.Update(context.Background(), stylist); err != nil {
		t.Fatalf("deactivate stylist: %v", err)
	}

	start := time.Date(2030, 1, 8, 11, 0, 0, 0, testLoc)
	var vErr *ValidationError
	if _, err := svc.Create(context.Background(), bookingRequest(start, 60)); !errors.As(err, &vErr) {
		t.Fatalf("booking with inactive stylist = %v, want *ValidationError", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"pending to confirmed", model.AppointmentPending, model.AppointmentConfirmed, true},
		{"pending to cancelled", model.AppointmentPending, model.AppointmentCancelled, true},
		{"confirmed to completed", model.AppointmentConfirmed, model.AppointmentCompleted, true},
		{"confirmed to cancelled", model.AppointmentConfirmed, model.AppointmentCancelled, true},
		{"pending to completed", model.AppointmentPending, model.AppointmentCompleted, false},
		{"cancelled is terminal", model.AppointmentCancelled, model.AppointmentConfirmed, false},
		{"completed is terminal", model.AppointmentCompleted, model.AppointmentCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAppointments(t)
			appt := &model.Appointment{
				StylistID:       testStylistID,
				CustomerID:      "c1",
				ServiceName:     "corte",
				StartTime:       time.Date(2030, 1, 8, 11, 0, 0, 0, testLoc),
				DurationMinutes: 60,
				Status:          tt.from,
			}
			if err := repo.Appointment.Create(context.Background(), appt); err != nil {
				t.Fatalf("seed: %v", err)
			}

			resp, err := svc.UpdateStatus(context.Background(), appt.AppointmentID, tt.to, "admin")
			if tt.ok {
				if err != nil {
					t.Fatalf("UpdateStatus = %v, want nil", err)
				}
				if resp.Status != tt.to {
					t.Errorf("Status = %q, want %q", resp.Status, tt.to)
				}
				return
			}
			if !errors.Is(err, ErrBadStatusTransition) {
				t.Fatalf("UpdateStatus = %v, want ErrBadStatusTransition", err)
			}
		})
	}
}

func TestExpireStalePending(t *testing.T) {
	svc, repo := newTestAppointments(t)

	past := time.Now().In(testLoc).Add(-2 * time.Hour)
	future := time.Now().In(testLoc).Add(48 * time.Hour)
	for _, tc := range []struct {
		start  time.Time
		status string
	}{
		{past, model.AppointmentPending},
		{past, model.AppointmentConfirmed},
		{future, model.AppointmentPending},
	} {
		err := repo.Appointment.Create(context.Background(), &model.Appointment{
			StylistID: testStylistID, CustomerID: "c1", ServiceName: "corte",
			StartTime: tc.start, DurationMinutes: 60, Status: tc.status,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	n, err := svc.ExpireStalePending(context.Background())
	if err != nil {
		t.Fatalf("ExpireStalePending error: %v", err)
	}
	if n != 1 {
		t.Errorf("expired %d appointments, want 1", n)
	}
}

func TestListRejectsEmptyRange(t *testing.T) {
	svc, _ := newTestAppointments(t)

	var vErr *ValidationError
	_, err := svc.List(context.Background(), &dto.AppointmentListRequest{From: "2030-01-10", To: "2030-01-10"})
	if !errors.As(err, &vErr) {
		t.Fatalf("List = %v, want *ValidationError", err)
	}
}
