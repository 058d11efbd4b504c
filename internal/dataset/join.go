package dataset

import (
	"fmt"
	"time"
)

// dateLayouts are the report date formats seen in case exports.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006-01",
}

// ParseReportDate parses a report date in any of the accepted layouts.
func ParseReportDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, v)
}

// Join inner-joins case reports to regions on normalized sector and facility
// keys and derives Year and Month from each report date.
//
// Output order follows the regions, then the case reports matching each one.
// Rows without a counterpart on the other side are dropped. A single
// unparseable date fails the whole join.
func Join(regions []Region, reports []CaseRecord) ([]JoinedRecord, error) {
	byKey := make(map[string][]int)
	for i, c := range reports {
		if c.FacilityKey == "" {
			continue
		}
		byKey[c.FacilityKey] = append(byKey[c.FacilityKey], i)
	}

	var out []JoinedRecord
	for _, region := range regions {
		if region.SectorKey == "" {
			continue
		}
		for _, idx := range byKey[region.SectorKey] {
			c := reports[idx]
			if region.Geometry == nil {
				return nil, fmt.Errorf("sector %s/%s: %w", region.District, region.Sector, ErrMissingGeometry)
			}

			date, err := ParseReportDate(c.RawDate)
			if err != nil {
				return nil, fmt.Errorf("facility %s: %w", c.FacilityName, err)
			}

			out = append(out, JoinedRecord{
				District:     region.District,
				Sector:       region.Sector,
				FacilityName: c.FacilityName,
				Date:         date,
				Year:         date.Year(),
				Month:        int(date.Month()),
				Cases:        c.Cases,
				Geometry:     region.Geometry,
			})
		}
	}

	if len(out) == 0 {
		return nil, ErrEmptyJoin
	}
	return out, nil
}
