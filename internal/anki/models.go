package anki

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

// ErrNoModels means the collection carries no usable note-type metadata.
// A deck without it cannot be demultiplexed, so the whole load fails.
var ErrNoModels = errors.New("anki: no note models in collection")

// ReadModels reads the note-type definitions from the col table and returns,
// per model id, the ordered field names that model's notes are packed with.
// A field definition without a name falls back to field_<index>. Model ids
// that fail to parse as numbers are skipped with a warning.
func ReadModels(ctx context.Context, db *sql.DB) (map[int64][]string, error) {
	var raw string
	err := db.QueryRowContext(ctx, `SELECT models FROM col LIMIT 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNoModels
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read models from col table: %w", err)
	}

	// The models column is a JSON object keyed by stringified model id.
	var decoded map[string]struct {
		Flds []struct {
			Name string `json:"name"`
		} `json:"flds"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode models JSON: %w", err)
	}

	models := make(map[int64][]string, len(decoded))
	for key, model := range decoded {
		mid, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			slog.Warn("Skipping model with unparsable id", "id", key)
			continue
		}
		names := make([]string, len(model.Flds))
		for i, fld := range model.Flds {
			if fld.Name == "" {
				names[i] = fmt.Sprintf("field_%d", i)
			} else {
				names[i] = fld.Name
			}
		}
		models[mid] = names
	}
	if len(models) == 0 {
		return nil, ErrNoModels
	}
	return models, nil
}
