package models

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// All returns every model owned by the catalog schema, parents first.
func All() []any {
	return []any{
		&Category{},
		&Developer{},
		&Application{},
		&ApplicationAssets{},
	}
}

// AutoMigrate creates or updates the catalog tables.
func AutoMigrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{SkipDefaultTransaction: true})
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate catalog schema: %w", err)
	}
	return nil
}

// ColumnMismatch lists the columns of a table that no model field maps to.
type ColumnMismatch struct {
	Table   string
	Columns []string
}

// ColumnMismatchReport compares the live tables against the model schemas.
// Tables that do not exist yet are skipped.
func ColumnMismatchReport(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(table) {
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", table, err)
		}

		known := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			known[name] = true
		}

		var extra []string
		for _, column := range columnTypes {
			if !known[column.Name()] {
				extra = append(extra, column.Name())
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			report = append(report, ColumnMismatch{Table: table, Columns: extra})
		}
	}

	return report, nil
}
