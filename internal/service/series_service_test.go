package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

func newTestSeries(t *testing.T) (SeriesService, *repository.Repository) {
	t.Helper()
	repo := newMockRepository()
	logger := zap.NewNop()
	hours := NewBusinessHoursService(repo, testLoc, logger)
	conflict := NewConflictService(repo, testLoc, logger)
	svc := NewSeriesService(repo, hours, conflict, testLoc, logger)

	if err := repo.Stylist.Create(context.Background(), &model.Stylist{
		StylistID:   testStylistID,
		DisplayName: "Carmen",
		IsActive:    true,
	}); err != nil {
		t.Fatalf("seed stylist: %v", err)
	}
	return svc, repo
}

// seedOpenWeek opens every weekday 09:00-20:00.
func seedOpenWeek(t *testing.T, repo *repository.Repository) {
	t.Helper()
	for wd := 0; wd < 7; wd++ {
		err := repo.BusinessHours.Upsert(context.Background(), &model.BusinessHours{
			WeekdayIndex: wd, OpenTime: "09:00", CloseTime: "20:00",
		})
		if err != nil {
			t.Fatalf("seed hours: %v", err)
		}
	}
}

// weeklyDraft a Monday/Wednesday 14:00-16:00 series starting Monday
// 2030-01-07.
func weeklyDraft(count int) *dto.PreviewSeriesRequest {
	return &dto.PreviewSeriesRequest{
		StylistID:      testStylistID,
		Title:          "Formación semanal",
		EventType:      model.EventMeeting,
		StartTimeOfDay: "14:00",
		EndTimeOfDay:   "16:00",
		Rule: dto.RuleRequest{
			Frequency: "WEEKLY",
			Interval:  1,
			ByDay:     "MO,WE",
			StartDate: "2030-01-07",
			Count:     count,
		},
	}
}

func TestPreviewExpandsDates(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)

	resp, err := svc.Preview(context.Background(), weeklyDraft(4))
	if err != nil {
		t.Fatalf("Preview error: %v", err)
	}

	want := []string{"2030-01-07", "2030-01-09", "2030-01-14", "2030-01-16"}
	if len(resp.Dates) != len(want) {
		t.Fatalf("got %d dates %v, want %v", len(resp.Dates), resp.Dates, want)
	}
	for i := range want {
		if resp.Dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, resp.Dates[i], want[i])
		}
	}
	if resp.HasConflicts {
		t.Error("HasConflicts = true on an empty agenda")
	}
}

func TestPreviewReportsConflicts(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)

	// Confirmed appointment inside the second occurrence's window.
	day := time.Date(2030, 1, 9, 0, 0, 0, 0, testLoc)
	seedAppointment(t, repo, testStylistID, withClock(day, 15, 0, testLoc), 60, model.AppointmentConfirmed, "María")

	resp, err := svc.Preview(context.Background(), weeklyDraft(4))
	if err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	if !resp.HasConflicts || len(resp.Conflicts) != 1 {
		t.Fatalf("conflicts = %+v, want exactly one", resp.Conflicts)
	}
	c := resp.Conflicts[0]
	if c.Date != "2030-01-09" || c.Kind != "appointment" || c.Label != "María" {
		t.Errorf("conflict = %+v, want 2030-01-09 appointment María", c)
	}
}

func TestPreviewFailsFastOnClosedDay(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	// Close Wednesdays; the second occurrence lands on one.
	err := repo.BusinessHours.Upsert(context.Background(), &model.BusinessHours{
		WeekdayIndex: 2, IsClosed: true, OpenTime: "09:00", CloseTime: "20:00",
	})
	if err != nil {
		t.Fatalf("close wednesday: %v", err)
	}

	_, err = svc.Preview(context.Background(), weeklyDraft(4))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Preview = %v, want *ValidationError", err)
	}
	if !strings.Contains(vErr.Reason, "09/01/2030") {
		t.Errorf("reason %q does not name the offending date", vErr.Reason)
	}
	if !strings.Contains(vErr.Reason, "cerrado") {
		t.Errorf("reason %q does not mention the closed day", vErr.Reason)
	}
}

func TestPreviewRejectsOutsideOpeningHours(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)

	draft := weeklyDraft(2)
	draft.StartTimeOfDay = "08:00" // opens at 09:00

	var vErr *ValidationError
	if _, err := svc.Preview(context.Background(), draft); !errors.As(err, &vErr) {
		t.Fatalf("Preview = %v, want *ValidationError", err)
	}
}

func TestPreviewRejectsUnknownStylist(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)

	draft := weeklyDraft(2)
	draft.StylistID = "7e57ed00-0000-4000-8000-000000000099"
	if _, err := svc.Preview(context.Background(), draft); !errors.Is(err, ErrStylistNotFound) {
		t.Fatalf("Preview = %v, want ErrStylistNotFound", err)
	}
}

func TestPreviewRejectsMixedRule(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)

	draft := weeklyDraft(2)
	draft.Rule.ByMonthDay = "15"
	var vErr *ValidationError
	if _, err := svc.Preview(context.Background(), draft); !errors.As(err, &vErr) {
		t.Fatalf("Preview = %v, want *ValidationError", err)
	}
}

func TestCreateMaterializesAllInstances(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)

	req := &dto.CreateSeriesRequest{PreviewSeriesRequest: *weeklyDraft(4), Description: "equipo completo"}
	resp, err := svc.Create(context.Background(), req, "admin")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if resp.InstancesCreated != 4 || resp.Count != 4 {
		t.Errorf("InstancesCreated = %d, Count = %d, want 4/4", resp.InstancesCreated, resp.Count)
	}
	if resp.ByDay != "MO,WE" {
		t.Errorf("ByDay = %q, want canonical MO,WE", resp.ByDay)
	}

	events, err := repo.BlockingEvent.ListBySeries(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("ListBySeries error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	for i, e := range events {
		if e.OccurrenceIndex == nil || *e.OccurrenceIndex != i {
			t.Errorf("event %d occurrence index = %v", i, e.OccurrenceIndex)
		}
		if got := e.StartTime.In(testLoc).Format("15:04"); got != "14:00" {
			t.Errorf("event %d starts at %s, want 14:00", i, got)
		}
		if e.IsException {
			t.Errorf("event %d created as exception", i)
		}
	}
}

func TestCreateWritesNothingOnInvalidRule(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)

	draft := weeklyDraft(60) // over the occurrence cap
	req := &dto.CreateSeriesRequest{PreviewSeriesRequest: *draft}
	if _, err := svc.Create(context.Background(), req, "admin"); err == nil {
		t.Fatal("Create accepted a rule over the occurrence cap")
	}

	list, err := repo.RecurringSeries.ListByStylist(context.Background(), testStylistID)
	if err != nil {
		t.Fatalf("ListByStylist error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("series persisted despite rejected rule: %+v", list)
	}
}

func TestMonthlySeriesSkipsShortMonths(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)

	draft := &dto.PreviewSeriesRequest{
		StylistID:      testStylistID,
		Title:          "Inventario",
		StartTimeOfDay: "10:00",
		EndTimeOfDay:   "12:00",
		Rule: dto.RuleRequest{
			Frequency:  "MONTHLY",
			Interval:   1,
			ByMonthDay: "31",
			StartDate:  "2030-01-01",
			Count:      4,
		},
	}
	resp, err := svc.Preview(context.Background(), draft)
	if err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	want := []string{"2030-01-31", "2030-03-31", "2030-05-31", "2030-07-31"}
	if len(resp.Dates) != len(want) {
		t.Fatalf("dates = %v, want %v", resp.Dates, want)
	}
	for i := range want {
		if resp.Dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, resp.Dates[i], want[i])
		}
	}
}

func createTestSeries(t *testing.T, svc SeriesService, count int) *dto.SeriesResponse {
	t.Helper()
	req := &dto.CreateSeriesRequest{PreviewSeriesRequest: *weeklyDraft(count)}
	resp, err := svc.Create(context.Background(), req, "admin")
	if err != nil {
		t.Fatalf("create series: %v", err)
	}
	return resp
}

func TestUpdateOccurrenceBecomesException(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 4)

	events, _ := repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	target := events[1]

	title := "Cambio puntual"
	resp, err := svc.UpdateOccurrence(context.Background(), target.EventID, &dto.UpdateOccurrenceRequest{Title: &title}, "admin")
	if err != nil {
		t.Fatalf("UpdateOccurrence error: %v", err)
	}
	if !resp.IsException || resp.Title != title {
		t.Errorf("response = %+v, want exception with new title", resp)
	}
}

func TestBulkUpdateSkipsExceptions(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 4)

	events, _ := repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	excTitle := "Cambio puntual"
	if _, err := svc.UpdateOccurrence(context.Background(), events[1].EventID, &dto.UpdateOccurrenceRequest{Title: &excTitle}, "admin"); err != nil {
		t.Fatalf("UpdateOccurrence error: %v", err)
	}

	newTitle := "Formación renovada"
	if _, err := svc.Update(context.Background(), series.ID, &dto.UpdateSeriesRequest{Title: &newTitle}, "admin"); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	events, _ = repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	for _, e := range events {
		if e.IsException {
			if e.Title != excTitle {
				t.Errorf("exception title = %q, want untouched %q", e.Title, excTitle)
			}
			continue
		}
		if e.Title != newTitle {
			t.Errorf("instance %v title = %q, want %q", e.OccurrenceIndex, e.Title, newTitle)
		}
	}
}

func TestBulkUpdateRejectsWindowOutsideHours(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 4)

	early := "08:00"
	_, err := svc.Update(context.Background(), series.ID, &dto.UpdateSeriesRequest{StartTimeOfDay: &early}, "admin")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Update = %v, want *ValidationError", err)
	}
	if !strings.Contains(vErr.Reason, "apertura") {
		t.Errorf("reason = %q, want opening-time mention", vErr.Reason)
	}
}

func TestAppendExtendsSeries(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 4)

	resp, err := svc.Append(context.Background(), series.ID, 2, "admin")
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if resp.Count != 6 || resp.InstancesCreated != 6 {
		t.Errorf("Count = %d, InstancesCreated = %d, want 6/6", resp.Count, resp.InstancesCreated)
	}

	events, _ := repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	if len(events) != 6 {
		t.Fatalf("got %d events, want 6", len(events))
	}
	// The rule continues from where it stopped: MO,WE of week three.
	if got := events[4].StartTime.In(testLoc).Format("2006-01-02"); got != "2030-01-21" {
		t.Errorf("appended[0] date = %s, want 2030-01-21", got)
	}
	if got := events[5].StartTime.In(testLoc).Format("2006-01-02"); got != "2030-01-23" {
		t.Errorf("appended[1] date = %s, want 2030-01-23", got)
	}
}

func TestAppendRejectsOverCap(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 50)

	var vErr *ValidationError
	if _, err := svc.Append(context.Background(), series.ID, 3, "admin"); !errors.As(err, &vErr) {
		t.Fatalf("Append = %v, want *ValidationError", err)
	}
}

func TestTrimDropsTrailingInstances(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 4)

	resp, err := svc.Trim(context.Background(), series.ID, 2, "admin")
	if err != nil {
		t.Fatalf("Trim error: %v", err)
	}
	if resp.InstancesCreated != 2 || resp.Count != 2 {
		t.Errorf("InstancesCreated = %d, Count = %d, want 2/2", resp.InstancesCreated, resp.Count)
	}

	events, _ := repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	if len(events) != 2 {
		t.Fatalf("got %d events after trim, want 2", len(events))
	}
}

func TestTrimRefusesToEmptySeries(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 3)

	var vErr *ValidationError
	if _, err := svc.Trim(context.Background(), series.ID, 3, "admin"); !errors.As(err, &vErr) {
		t.Fatalf("Trim = %v, want *ValidationError", err)
	}
}

func TestAppendAfterTrimSkipsSurvivingException(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 4)

	events, _ := repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	title := "Cambio puntual"
	if _, err := svc.UpdateOccurrence(context.Background(), events[3].EventID, &dto.UpdateOccurrenceRequest{Title: &title}, "admin"); err != nil {
		t.Fatalf("UpdateOccurrence error: %v", err)
	}

	// The trailing exception survives the trim and keeps index 3, so the
	// counters must stay past it.
	trimmed, err := svc.Trim(context.Background(), series.ID, 1, "admin")
	if err != nil {
		t.Fatalf("Trim error: %v", err)
	}
	if trimmed.InstancesCreated != 4 || trimmed.Count != 4 {
		t.Errorf("after trim InstancesCreated = %d, Count = %d, want 4/4", trimmed.InstancesCreated, trimmed.Count)
	}

	appended, err := svc.Append(context.Background(), series.ID, 1, "admin")
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if appended.InstancesCreated != 5 {
		t.Errorf("after append InstancesCreated = %d, want 5", appended.InstancesCreated)
	}

	events, _ = repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	seen := make(map[int]int)
	for _, e := range events {
		if e.OccurrenceIndex != nil {
			seen[*e.OccurrenceIndex]++
		}
	}
	for idx, n := range seen {
		if n > 1 {
			t.Errorf("occurrence index %d held by %d instances", idx, n)
		}
	}
	if got := events[len(events)-1].StartTime.In(testLoc).Format("2006-01-02"); got != "2030-01-21" {
		t.Errorf("appended date = %s, want 2030-01-21", got)
	}
}

func TestCancelOccurrenceLeavesSiblings(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 4)

	events, _ := repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	if err := svc.CancelOccurrence(context.Background(), events[2].EventID, "admin"); err != nil {
		t.Fatalf("CancelOccurrence error: %v", err)
	}

	remaining, _ := repo.BlockingEvent.ListBySeries(context.Background(), series.ID)
	if len(remaining) != 3 {
		t.Fatalf("got %d events after cancel, want 3", len(remaining))
	}
}

func TestDeleteDetachesInstances(t *testing.T) {
	svc, repo := newTestSeries(t)
	seedOpenWeek(t, repo)
	series := createTestSeries(t, svc, 4)

	if err := svc.Delete(context.Background(), series.ID, "admin"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), series.ID); !errors.Is(err, ErrSeriesNotFound) {
		t.Fatalf("GetByID = %v, want ErrSeriesNotFound", err)
	}

	// Instances survive as detached standalone events.
	day := time.Date(2030, 1, 7, 0, 0, 0, 0, testLoc)
	events, err := repo.BlockingEvent.ListOverlapping(context.Background(), testStylistID, withClock(day, 14, 0, testLoc), withClock(day, 16, 0, testLoc))
	if err != nil {
		t.Fatalf("ListOverlapping error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d surviving events, want 1", len(events))
	}
	if events[0].RecurringSeriesID != nil || !events[0].IsException {
		t.Errorf("event = %+v, want detached exception", events[0])
	}
}
