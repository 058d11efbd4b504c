package db

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

func EnsureSchema(d *gorm.DB, schema string) error {
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS ` + pq.QuoteIdentifier(schema)).Error
}

// SplitTable separates an optional schema prefix from a table name:
// "malaria.case_reports" -> ("malaria", "case_reports").
func SplitTable(name string) (schema, table string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// QuoteTable quotes a possibly schema-qualified table name for raw SQL.
func QuoteTable(name string) string {
	schema, table := SplitTable(name)
	if schema == "" {
		return pq.QuoteIdentifier(table)
	}
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(table)
}
