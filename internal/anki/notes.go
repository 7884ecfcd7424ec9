package anki

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// fieldSeparator joins a note's field values inside the flds column.
const fieldSeparator = "\x1f"

// Note is one demultiplexed note record. Fields is nil when the note's model
// is unknown; the packed blob is then kept verbatim in RawFields instead.
type Note struct {
	ID        int64
	ModelID   int64
	Fields    map[string]string
	RawFields string
}

// Parsed reports whether the note's fields were resolved against a model.
func (n Note) Parsed() bool { return n.Fields != nil }

// ForEachNote streams every note in the collection through fn, splitting the
// packed field blob against the note's model. The pass is single-shot; to
// iterate again, reopen the database.
func ForEachNote(ctx context.Context, db *sql.DB, models map[int64][]string, fn func(Note)) error {
	rows, err := db.QueryContext(ctx, `SELECT id, mid, flds FROM notes`)
	if err != nil {
		return fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, mid int64
			flds    string
		)
		if err := rows.Scan(&id, &mid, &flds); err != nil {
			return fmt.Errorf("failed to scan note row: %w", err)
		}
		note := Note{ID: id, ModelID: mid}
		if names, ok := models[mid]; ok {
			note.Fields = mapFields(names, flds)
		} else {
			note.RawFields = flds
		}
		fn(note)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate notes: %w", err)
	}
	return nil
}

// mapFields zips the packed values positionally against the model's field
// names. A trailing separator yields a trailing empty value, missing values
// become empty strings, and values beyond the model's field count are dropped.
func mapFields(names []string, flds string) map[string]string {
	values := strings.Split(flds, fieldSeparator)
	fields := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			fields[name] = values[i]
		} else {
			fields[name] = ""
		}
	}
	return fields
}
