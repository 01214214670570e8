package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	"github.com/pandiaraajan-hub/workerprolite/internal/shared/contextutil"
	"github.com/pandiaraajan-hub/workerprolite/internal/worker"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// exportDate is the dd/mm/yyyy rendering operators expect in exported
// files.
const exportDate = "02/01/2006"

var columns = []string{
	"Workers ID",
	"Name of Workers",
	"Entity",
	"S/N",
	"Designation",
	"Contact No.",
	"Nationality",
	"WP No.",
	"NRIC / Fin No",
	"Date of Expiry",
	"Date of Birth",
	"Total Certifications",
	"Active",
	"Expiring Soon",
	"Expired",
}

type Service interface {
	BuildCSV(ctx context.Context) ([]byte, error)
	BuildWorkbook(ctx context.Context) (*excelize.File, error)
}

type service struct {
	workers worker.Repository
	certs   certification.Repository
	logger  *zap.Logger
}

func NewService(workers worker.Repository, certs certification.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("export.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.service")
	}
	return &service{workers: workers, certs: certs, logger: l}
}

type exportRow struct {
	worker       worker.Worker
	total        int
	active       int
	expiringSoon int
	expired      int
}

func (s *service) loadRows(ctx context.Context) ([]exportRow, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	workers, err := s.workers.FindAllActive(ctx)
	if err != nil {
		log.Error("export load workers failed", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	rows := make([]exportRow, 0, len(workers))
	for _, w := range workers {
		certs, err := s.certs.FindByWorker(ctx, w.ID.String())
		if err != nil {
			log.Error("export load certifications failed",
				zap.String("worker_id", w.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}

		row := exportRow{worker: w, total: len(certs)}
		for _, cert := range certs {
			switch certification.DeriveStatus(cert.ExpiryDate, now) {
			case certification.StatusExpired:
				row.expired++
			case certification.StatusExpiringSoon:
				row.expiringSoon++
			default:
				row.active++
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (r exportRow) cells() []string {
	w := r.worker
	return []string{
		w.WorkersID,
		w.NameOfWorkers,
		w.Entity,
		w.SerialNumber,
		w.Designation,
		w.ContactNo,
		w.Nationality,
		w.WPNo,
		w.NRICFinNo,
		formatDate(w.DateOfExpiry),
		formatDate(w.DateOfBirth),
		fmt.Sprintf("%d", r.total),
		fmt.Sprintf("%d", r.active),
		fmt.Sprintf("%d", r.expiringSoon),
		fmt.Sprintf("%d", r.expired),
	}
}

// BuildCSV renders the worker roster as UTF-8 CSV. The byte order mark
// keeps Excel from mangling non-ASCII names on double-click open.
func (s *service) BuildCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.loadRows(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row.cells()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// BuildWorkbook renders the roster into a styled workbook with a second
// sheet recording when and how the export was produced.
func (s *service) BuildWorkbook(ctx context.Context) (*excelize.File, error) {
	rows, err := s.loadRows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	const dataSheet = "Worker Data"
	f.SetSheetName("Sheet1", dataSheet)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(dataSheet, cell, col); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range rows {
		for colIdx, value := range row.cells() {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(dataSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	widths := map[string]float64{
		"A": 14, "B": 28, "C": 12, "D": 10, "E": 20,
		"F": 16, "G": 14, "H": 14, "I": 18, "J": 14,
		"K": 14, "L": 12, "M": 10, "N": 14, "O": 10,
	}
	for col, width := range widths {
		if err := f.SetColWidth(dataSheet, col, col, width); err != nil {
			return nil, err
		}
	}

	const infoSheet = "Export Info"
	if _, err := f.NewSheet(infoSheet); err != nil {
		return nil, err
	}
	info := [][]any{
		{"Exported At", time.Now().Format("02/01/2006 15:04:05")},
		{"Total Workers", len(rows)},
		{"Source", "WorkerPro Lite"},
	}
	for i, pair := range info {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(infoSheet, keyCell, pair[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(infoSheet, valCell, pair[1]); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(infoSheet, "A", "A", 16); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(infoSheet, "B", "B", 24); err != nil {
		return nil, err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Worker Export",
		Creator: "WorkerPro Lite",
		Created: time.Now().Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}

	return f, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDate)
}
