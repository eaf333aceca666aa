// Package importer reads ledger entries from CSV files laid out like the
// transaction sheet: person, date, kind, amount.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cemilcan0/debt-tracking-app/internal/ledger"
	"github.com/cemilcan0/debt-tracking-app/internal/model"
)

const (
	numFields = 4
	colPerson = 0
	colDate   = 1
	colKind   = 2
	colAmount = 3
)

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Parse reads CSV rows into entries. A first row whose first cell is
// "person" (any case) is treated as a header and skipped. Blank lines are
// ignored. Errors name the offending line.
func Parse(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	var entries []model.Entry
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if first && isHeader(rec) {
			continue
		}

		line, _ := cr.FieldPos(colPerson)
		entry, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Load parses the CSV file at path.
func Load(path string) ([]model.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

func isHeader(rec []string) bool {
	return strings.EqualFold(strings.TrimSpace(rec[colPerson]), "person")
}

func parseRow(rec []string) (model.Entry, error) {
	name, err := ledger.ParseName(rec[colPerson])
	if err != nil {
		return model.Entry{}, err
	}
	t, err := ledger.ParseTransaction(ledger.TransactionInput{
		Date:   rec[colDate],
		Kind:   rec[colKind],
		Amount: rec[colAmount],
	})
	if err != nil {
		return model.Entry{}, err
	}
	return model.Entry{PersonName: name, Transaction: t}, nil
}

// processedDir is the subdirectory of an import directory for imported CSVs.
const processedDir = "processed"

// Scan returns the CSV files directly inside dir. A missing dir yields none.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves dir/fileName into dir/processed/.
func MarkProcessed(dir, fileName string) error {
	dstDir := filepath.Join(dir, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(dir, fileName)
	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
