// Package export writes ledger data to xlsx workbooks.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
)

// Sheet names.
const (
	SummarySheet      = "Summary"
	TransactionsSheet = "Transactions"
)

// Row layout of a per-person workbook.
const (
	personHeaderRows = 4
	personTableRow   = personHeaderRows + 1
)

// Service exports ledger data.
type Service struct {
	ledger *ledger.Service
	dir    string
	now    func() time.Time
}

// NewService creates an export Service writing into dir.
func NewService(l *ledger.Service, dir string) *Service {
	return &Service{ledger: l, dir: dir, now: time.Now}
}

// ExportAll writes every transaction plus a per-person summary and returns
// the workbook path.
func (s *Service) ExportAll(ctx context.Context) (string, error) {
	rows, err := s.ledger.ListTransactions(ctx, 0)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("exporting all: %w", ledger.ErrEmptyLedger)
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := headerStyle(f)
	if err != nil {
		return "", err
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}
	if err := writeRow(f, SummarySheet, 1, bold, "Person", "Total Credit", "Total Debit", "Balance"); err != nil {
		return "", err
	}
	for i, sum := range ledger.Summarize(rows) {
		if err := writeRow(f, SummarySheet, i+2, 0,
			sum.Name, number(sum.Credit), number(sum.Debit), number(sum.Balance),
		); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet(TransactionsSheet); err != nil {
		return "", fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeRow(f, TransactionsSheet, 1, bold, "Person", "Date", "Kind", "Amount"); err != nil {
		return "", err
	}
	for i, r := range rows {
		if err := writeRow(f, TransactionsSheet, i+2, 0,
			r.PersonName, ledger.FormatDate(r.Date), r.Kind.Label(), number(r.Amount),
		); err != nil {
			return "", err
		}
	}
	setWidths(f, SummarySheet, 20, 15, 15, 15)
	setWidths(f, TransactionsSheet, 20, 12, 10, 15)

	return s.save(ctx, f, "all", len(rows))
}

// ExportPerson writes one person's transactions under a totals header block
// and returns the workbook path.
func (s *Service) ExportPerson(ctx context.Context, personID int64) (string, error) {
	person, err := s.ledger.GetPerson(ctx, personID)
	if err != nil {
		return "", err
	}
	rows, err := s.ledger.ListTransactions(ctx, personID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("exporting %q: %w", person.Name, ledger.ErrEmptyLedger)
	}
	totals := ledger.Aggregate(rows)

	f := excelize.NewFile()
	defer f.Close()

	bold, err := headerStyle(f)
	if err != nil {
		return "", err
	}
	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}

	header := []struct {
		label string
		value any
	}{
		{"Person:", person.Name},
		{"Total Credit:", number(totals.Credit)},
		{"Total Debit:", number(totals.Debit)},
		{"Balance:", number(totals.Balance)},
	}
	for i, h := range header {
		if err := writeRow(f, TransactionsSheet, i+1, 0, h.label, h.value); err != nil {
			return "", err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellStyle(TransactionsSheet, cell, cell, bold); err != nil {
			return "", fmt.Errorf("styling %s: %w", cell, err)
		}
	}

	if err := writeRow(f, TransactionsSheet, personTableRow, bold, "Date", "Kind", "Amount"); err != nil {
		return "", err
	}
	for i, r := range rows {
		if err := writeRow(f, TransactionsSheet, personTableRow+1+i, 0,
			ledger.FormatDate(r.Date), r.Kind.Label(), number(r.Amount),
		); err != nil {
			return "", err
		}
	}
	setWidths(f, TransactionsSheet, 15, 20, 15)

	return s.save(ctx, f, person.Name, len(rows))
}

func (s *Service) save(ctx context.Context, f *excelize.File, subject string, count int) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(s.dir, FileName(subject, s.now()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("writing workbook: %w", err)
	}
	slog.InfoContext(ctx, "Workbook exported", "path", path, "rows", count)
	return path, nil
}

// FileName builds a collision-resistant artifact name such as
// "Ada_transactions_20240315_142500_1f0c9a2b.xlsx".
func FileName(subject string, at time.Time) string {
	return fmt.Sprintf("%s_transactions_%s_%s.xlsx",
		sanitize(subject), at.Format("20060102_150405"), uuid.NewString()[:8])
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
}

func headerStyle(f *excelize.File) (int, error) {
	id, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("creating header style: %w", err)
	}
	return id, nil
}

// writeRow fills row from column A. A non-zero style is applied to the
// written cells.
func writeRow(f *excelize.File, sheet string, row, style int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("addressing cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
		if style != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return fmt.Errorf("styling %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, widths ...float64) {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}
}

func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
