package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

// In-memory repository fakes. Every method honors the same contracts the
// Postgres implementations do, including half-open overlap semantics and
// soft-delete visibility, so service tests exercise real query behavior.

// ── stylists ──

type mockStylistRepo struct {
	stylists map[string]*model.Stylist
}

func newMockStylistRepo() *mockStylistRepo {
	return &mockStylistRepo{stylists: make(map[string]*model.Stylist)}
}

func (m *mockStylistRepo) Create(ctx context.Context, stylist *model.Stylist) error {
	if stylist.StylistID == "" {
		stylist.StylistID = uuid.New().String()
	}
	cp := *stylist
	m.stylists[stylist.StylistID] = &cp
	return nil
}

func (m *mockStylistRepo) GetByID(ctx context.Context, id string) (*model.Stylist, error) {
	s, ok := m.stylists[id]
	if !ok || s.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockStylistRepo) List(ctx context.Context, includeInactive bool) ([]model.Stylist, error) {
	var out []model.Stylist
	for _, s := range m.stylists {
		if s.DeletedAt.Valid {
			continue
		}
		if !includeInactive && !s.IsActive {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (m *mockStylistRepo) Update(ctx context.Context, stylist *model.Stylist) error {
	cp := *stylist
	m.stylists[stylist.StylistID] = &cp
	return nil
}

func (m *mockStylistRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if s, ok := m.stylists[id]; ok {
		s.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		s.DeletedBy = &deletedBy
	}
	return nil
}

// ── customers ──

type mockCustomerRepo struct {
	customers map[string]*model.Customer // by id
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[string]*model.Customer)}
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *model.Customer) error {
	if customer.CustomerID == "" {
		customer.CustomerID = uuid.New().String()
	}
	cp := *customer
	m.customers[customer.CustomerID] = &cp
	return nil
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCustomerRepo) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	for _, c := range m.customers {
		if c.Phone == phone && !c.DeletedAt.Valid {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCustomerRepo) UpsertByPhone(ctx context.Context, phone, firstName string) (*model.Customer, error) {
	if c, err := m.GetByPhone(ctx, phone); err == nil {
		return c, nil
	}
	c := &model.Customer{Phone: phone, FirstName: firstName}
	if err := m.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *model.Customer) error {
	cp := *customer
	m.customers[customer.CustomerID] = &cp
	return nil
}

// ── appointments ──

type mockAppointmentRepo struct {
	appts map[string]*model.Appointment
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appts: make(map[string]*model.Appointment)}
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	if appt.AppointmentID == "" {
		appt.AppointmentID = uuid.New().String()
	}
	cp := *appt
	m.appts[appt.AppointmentID] = &cp
	return nil
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	a, ok := m.appts[id]
	if !ok || a.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func isLive(status string) bool {
	for _, s := range model.LiveAppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (m *mockAppointmentRepo) ListOverlapping(ctx context.Context, stylistID string, start, end time.Time) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range m.appts {
		if a.DeletedAt.Valid || a.StylistID != stylistID || !isLive(a.Status) {
			continue
		}
		if a.StartTime.Before(end) && a.EndTime().After(start) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *mockAppointmentRepo) ListByStylistAndRange(ctx context.Context, stylistID string, from, to time.Time) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range m.appts {
		if a.DeletedAt.Valid || a.StylistID != stylistID {
			continue
		}
		if a.StartTime.Before(to) && a.EndTime().After(from) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *mockAppointmentRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range m.appts {
		if a.DeletedAt.Valid {
			continue
		}
		if a.StartTime.Before(to) && a.EndTime().After(from) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appt *model.Appointment) error {
	cp := *appt
	m.appts[appt.AppointmentID] = &cp
	return nil
}

func (m *mockAppointmentRepo) ExpireStalePending(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, a := range m.appts {
		if a.Status == model.AppointmentPending && a.StartTime.Before(now) {
			a.Status = model.AppointmentExpired
			n++
		}
	}
	return n, nil
}

// ── blocking events ──

type mockBlockingEventRepo struct {
	events map[string]*model.BlockingEvent
}

func newMockBlockingEventRepo() *mockBlockingEventRepo {
	return &mockBlockingEventRepo{events: make(map[string]*model.BlockingEvent)}
}

func (m *mockBlockingEventRepo) Create(ctx context.Context, event *model.BlockingEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	cp := *event
	m.events[event.EventID] = &cp
	return nil
}

func (m *mockBlockingEventRepo) BatchCreate(ctx context.Context, events []model.BlockingEvent) error {
	for i := range events {
		if err := m.Create(ctx, &events[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockBlockingEventRepo) GetByID(ctx context.Context, id string) (*model.BlockingEvent, error) {
	e, ok := m.events[id]
	if !ok || e.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockBlockingEventRepo) ListOverlapping(ctx context.Context, stylistID string, start, end time.Time) ([]model.BlockingEvent, error) {
	var out []model.BlockingEvent
	for _, e := range m.events {
		if e.DeletedAt.Valid || e.StylistID != stylistID {
			continue
		}
		if e.StartTime.Before(end) && e.EndTime.After(start) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *mockBlockingEventRepo) ListBySeries(ctx context.Context, seriesID string) ([]model.BlockingEvent, error) {
	var out []model.BlockingEvent
	for _, e := range m.events {
		if e.DeletedAt.Valid || e.RecurringSeriesID == nil || *e.RecurringSeriesID != seriesID {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return derefIdx(out[i].OccurrenceIndex) < derefIdx(out[j].OccurrenceIndex)
	})
	return out, nil
}

func derefIdx(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func (m *mockBlockingEventRepo) ListByStylistAndRange(ctx context.Context, stylistID string, from, to time.Time) ([]model.BlockingEvent, error) {
	var out []model.BlockingEvent
	for _, e := range m.events {
		if e.DeletedAt.Valid || e.StylistID != stylistID {
			continue
		}
		if e.StartTime.Before(to) && e.EndTime.After(from) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *mockBlockingEventRepo) Update(ctx context.Context, event *model.BlockingEvent) error {
	cp := *event
	m.events[event.EventID] = &cp
	return nil
}

func (m *mockBlockingEventRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if e, ok := m.events[id]; ok {
		e.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		e.DeletedBy = &deletedBy
	}
	return nil
}

func (m *mockBlockingEventRepo) DetachSeries(ctx context.Context, seriesID string) error {
	for _, e := range m.events {
		if e.RecurringSeriesID != nil && *e.RecurringSeriesID == seriesID {
			e.RecurringSeriesID = nil
			e.IsException = true
		}
	}
	return nil
}

func (m *mockBlockingEventRepo) DeleteTrailing(ctx context.Context, seriesID string, fromIndex int, deletedBy string) (int64, error) {
	var n int64
	for _, e := range m.events {
		if e.DeletedAt.Valid || e.IsException {
			continue
		}
		if e.RecurringSeriesID == nil || *e.RecurringSeriesID != seriesID {
			continue
		}
		if e.OccurrenceIndex != nil && *e.OccurrenceIndex >= fromIndex {
			e.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
			e.DeletedBy = &deletedBy
			n++
		}
	}
	return n, nil
}

// ── recurring series ──

type mockSeriesRepo struct {
	series map[string]*model.RecurringSeries
}

func newMockSeriesRepo() *mockSeriesRepo {
	return &mockSeriesRepo{series: make(map[string]*model.RecurringSeries)}
}

func (m *mockSeriesRepo) Create(ctx context.Context, series *model.RecurringSeries) error {
	if series.SeriesID == "" {
		series.SeriesID = uuid.New().String()
	}
	cp := *series
	m.series[series.SeriesID] = &cp
	return nil
}

func (m *mockSeriesRepo) GetByID(ctx context.Context, id string) (*model.RecurringSeries, error) {
	s, ok := m.series[id]
	if !ok || s.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSeriesRepo) ListByStylist(ctx context.Context, stylistID string) ([]model.RecurringSeries, error) {
	var out []model.RecurringSeries
	for _, s := range m.series {
		if s.DeletedAt.Valid || s.StylistID != stylistID {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (m *mockSeriesRepo) Update(ctx context.Context, series *model.RecurringSeries) error {
	cp := *series
	m.series[series.SeriesID] = &cp
	return nil
}

func (m *mockSeriesRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if s, ok := m.series[id]; ok {
		s.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		s.DeletedBy = &deletedBy
	}
	return nil
}

// ── business hours ──

type mockBusinessHoursRepo struct {
	rows map[int]*model.BusinessHours
}

func newMockBusinessHoursRepo() *mockBusinessHoursRepo {
	return &mockBusinessHoursRepo{rows: make(map[int]*model.BusinessHours)}
}

func (m *mockBusinessHoursRepo) ListAll(ctx context.Context) ([]model.BusinessHours, error) {
	var out []model.BusinessHours
	for _, r := range m.rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekdayIndex < out[j].WeekdayIndex })
	return out, nil
}

func (m *mockBusinessHoursRepo) GetByWeekday(ctx context.Context, weekdayIndex int) (*model.BusinessHours, error) {
	r, ok := m.rows[weekdayIndex]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockBusinessHoursRepo) Upsert(ctx context.Context, hours *model.BusinessHours) error {
	cp := *hours
	m.rows[hours.WeekdayIndex] = &cp
	return nil
}

// ── users ──

type mockUserRepo struct {
	users map[string]*model.AdminUser
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.AdminUser)}
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	u, ok := m.users[id]
	if !ok || u.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	for _, u := range m.users {
		if u.Email == email && !u.DeletedAt.Valid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.AdminUser) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.AdminUser) error {
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

// newMockRepository builds an in-memory aggregate. The nil DB handle makes
// Transaction a passthrough.
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:            newMockUserRepo(),
		Stylist:         newMockStylistRepo(),
		Customer:        newMockCustomerRepo(),
		Appointment:     newMockAppointmentRepo(),
		BlockingEvent:   newMockBlockingEventRepo(),
		RecurringSeries: newMockSeriesRepo(),
		BusinessHours:   newMockBusinessHoursRepo(),
	}
}
