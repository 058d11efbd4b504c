package dataset

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rbc-health/malaria-dashboard/internal/names"
)

// CaseSource yields the facility case reports.
type CaseSource interface {
	ReadCases(ctx context.Context) ([]CaseRecord, error)
	Name() string
}

// caseRow mirrors the columns of the case report export.
type caseRow struct {
	FacilityName string `csv:"facility_name"`
	Date         string `csv:"Date"`
	Cases        string `csv:"Malaria_cases_OPD"`
}

// CSVCaseSource reads case reports from a CSV file.
type CSVCaseSource struct {
	Path string
}

func (s CSVCaseSource) Name() string { return "csv:" + s.Path }

func (s CSVCaseSource) ReadCases(ctx context.Context) ([]CaseRecord, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open case report csv: %w", err)
	}
	defer file.Close()

	return ParseCases(file)
}

// ParseCases decodes a case report CSV stream.
func ParseCases(r io.Reader) ([]CaseRecord, error) {
	var rows []*caseRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal case report csv: %w", err)
	}

	out := make([]CaseRecord, 0, len(rows))
	for i, row := range rows {
		cases, err := ParseCaseCount(row.Cases)
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		out = append(out, NewCaseRecord(row.FacilityName, row.Date, cases))
	}
	return out, nil
}

// NewCaseRecord builds a CaseRecord and its normalized facility key.
func NewCaseRecord(facility, rawDate string, cases int) CaseRecord {
	return CaseRecord{
		FacilityName: facility,
		FacilityKey:  names.Normalize(facility),
		RawDate:      strings.TrimSpace(rawDate),
		Cases:        cases,
	}
}

// ParseCaseCount accepts non-negative integers, including integral floats
// such as "12.0" produced by spreadsheet exports.
func ParseCaseCount(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrInvalidCaseCount, n)
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCaseCount, v)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidCaseCount, v)
	}
	if f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidCaseCount, v)
	}
	return int(f), nil
}
