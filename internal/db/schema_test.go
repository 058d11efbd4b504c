package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTable(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSchema string
		wantTable  string
	}{
		{name: "qualified", input: "malaria.case_reports", wantSchema: "malaria", wantTable: "case_reports"},
		{name: "bare", input: "case_reports", wantSchema: "", wantTable: "case_reports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, table := SplitTable(tt.input)
			assert.Equal(t, tt.wantSchema, schema)
			assert.Equal(t, tt.wantTable, table)
		})
	}
}

func TestQuoteTable(t *testing.T) {
	assert.Equal(t, `"malaria"."case_reports"`, QuoteTable("malaria.case_reports"))
	assert.Equal(t, `"cases"`, QuoteTable("cases"))
	assert.Equal(t, `"we""ird"`, QuoteTable(`we"ird`))
}

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect("")
	assert.Error(t, err)
}
