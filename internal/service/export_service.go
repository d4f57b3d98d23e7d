package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

// ExportService spreadsheet exports of the appointment book.
type ExportService interface {
	// AppointmentBook renders all appointments in [from, to) as an xlsx
	// workbook. Returns the file bytes and a suggested filename.
	AppointmentBook(ctx context.Context, req *dto.AppointmentListRequest) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

var exportHeaders = []string{"Fecha", "Inicio", "Fin", "Profesional", "Cliente", "Teléfono", "Servicio", "Duración (min)", "Estado", "Origen"}

var exportStatusNames = map[string]string{
	model.AppointmentPending:   "pendiente",
	model.AppointmentConfirmed: "confirmada",
	model.AppointmentCompleted: "completada",
	model.AppointmentCancelled: "cancelada",
	model.AppointmentExpired:   "caducada",
}

func (s *exportService) AppointmentBook(ctx context.Context, req *dto.AppointmentListRequest) ([]byte, string, error) {
	from, err := time.ParseInLocation("2006-01-02", req.From, s.loc)
	if err != nil {
		return nil, "", newValidationError("fecha inicial no válida: %q", req.From)
	}
	to, err := time.ParseInLocation("2006-01-02", req.To, s.loc)
	if err != nil {
		return nil, "", newValidationError("fecha final no válida: %q", req.To)
	}
	if !to.After(from) {
		return nil, "", newValidationError("el rango de fechas está vacío")
	}

	var appts []model.Appointment
	if req.StylistID != "" {
		appts, err = s.repo.Appointment.ListByStylistAndRange(ctx, req.StylistID, from, to)
	} else {
		appts, err = s.repo.Appointment.ListByRange(ctx, from, to)
	}
	if err != nil {
		s.logger.Error("export query failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("close workbook failed", zap.Error(err))
		}
	}()

	const sheet = "Citas"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E8D5F2"}},
	})
	if err != nil {
		return nil, "", err
	}

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", endHeader, headerStyle); err != nil {
		return nil, "", err
	}

	for i := range appts {
		a := &appts[i]
		start := a.StartTime.In(s.loc)
		row := []interface{}{
			start.Format("02/01/2006"),
			start.Format("15:04"),
			a.EndTime().In(s.loc).Format("15:04"),
			"",
			"",
			"",
			a.ServiceName,
			a.DurationMinutes,
			exportStatusNames[a.Status],
			a.Source,
		}
		if a.Stylist != nil {
			row[3] = a.Stylist.DisplayName
		}
		if a.Customer != nil {
			row[4] = a.Customer.FirstName
			row[5] = a.Customer.Phone
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	if err := f.SetColWidth(sheet, "A", "J", 16); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("citas_%s_%s.xlsx", req.From, req.To)
	s.logger.Info("appointment book exported",
		zap.String("filename", filename),
		zap.Int("rows", len(appts)),
	)
	return buf.Bytes(), filename, nil
}
