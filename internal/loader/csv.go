// Package loader reads daily OHLCV bars from CSV files.
//
// The expected layout is a header row followed by one row per trading day:
//
//	date,open,high,low,close,volume
//	2024-01-02,100.0,102.5,99.1,101.3,1000000
//
// Dates are calendar days in UTC. Column order is fixed; extra columns are
// rejected so a malformed export fails loudly instead of silently shifting
// fields.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ravi4j/daily-market-automation-sub001/internal/domain"
)

// Loader errors.
var (
	ErrEmptyFile     = errors.New("csv file has no data rows")
	ErrMissingHeader = errors.New("csv file has no header row")
	ErrBadHeader     = errors.New("csv header does not match date,open,high,low,close,volume")
)

const dateLayout = "2006-01-02"

var expectedHeader = []string{"date", "open", "high", "low", "close", "volume"}

// ReadFile loads all bars from a CSV file at path.
func ReadFile(path string) ([]*domain.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	bars, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return bars, nil
}

// Read parses bars from r. Rows come back in file order; series validation
// (ordering, positive prices) happens later when a series is built.
func Read(r io.Reader) ([]*domain.Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(expectedHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !headerMatches(header) {
		return nil, fmt.Errorf("%w: got %v", ErrBadHeader, header)
	}

	var bars []*domain.Bar
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		bar, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, ErrEmptyFile
	}
	return bars, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(expectedHeader) {
		return false
	}
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) != expectedHeader[i] {
			return false
		}
	}
	return true
}

func parseRow(record []string) (*domain.Bar, error) {
	ts, err := time.ParseInLocation(dateLayout, strings.TrimSpace(record[0]), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", record[0], err)
	}

	prices := make([]float64, 4)
	for i, name := range []string{"open", "high", "low", "close"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", name, record[i+1], err)
		}
		prices[i] = v
	}

	volume, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse volume %q: %w", record[5], err)
	}

	return &domain.Bar{
		Timestamp: ts,
		Open:      prices[0],
		High:      prices[1],
		Low:       prices[2],
		Close:     prices[3],
		Volume:    volume,
	}, nil
}
