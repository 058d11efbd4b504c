package dataset

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CaseReport is the Postgres row shape of a case report.
type CaseReport struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FacilityName string    `gorm:"not null;index" json:"facility_name"`
	ReportDate   time.Time `gorm:"type:date;not null" json:"report_date"`
	Cases        int       `gorm:"not null;check:cases >= 0" json:"cases"`
}

// PostgresCaseSource reads case reports from a table populated by
// `malariactl import`.
type PostgresCaseSource struct {
	DB    *gorm.DB
	Table string
}

func (s PostgresCaseSource) Name() string { return "postgres:" + s.Table }

func (s PostgresCaseSource) ReadCases(ctx context.Context) ([]CaseRecord, error) {
	var rows []CaseReport
	if err := s.DB.WithContext(ctx).Table(s.Table).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", s.Table, err)
	}

	out := make([]CaseRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewCaseRecord(row.FacilityName, row.ReportDate.Format(time.DateOnly), row.Cases))
	}
	return out, nil
}
