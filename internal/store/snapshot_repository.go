package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/log"
)

// ErrNotFound is returned when no snapshot matches the requested id.
var ErrNotFound = errors.New("snapshot not found")

// snapshotColumns is the list of columns to select for snapshot queries.
const snapshotColumns = `id, name, width, height, cells, created_at`

// SnapshotRepository stores and retrieves canvas snapshots.
type SnapshotRepository struct {
	db *sql.DB
}

// newSnapshotRepository creates a new SnapshotRepository instance.
func newSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// scanSnapshot scans a row into a snapshotModel.
func scanSnapshot(scanner interface{ Scan(...any) error }) (*snapshotModel, error) {
	var model snapshotModel
	err := scanner.Scan(
		&model.ID, &model.Name, &model.Width, &model.Height,
		&model.Cells, &model.CreatedAt,
	)
	return &model, err
}

// Save stores a copy of the canvas under the given name and returns the
// stored snapshot's metadata.
func (r *SnapshotRepository) Save(name string, c *canvas.Canvas) (Snapshot, error) {
	cells, err := json.Marshal(c)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encoding canvas: %w", err)
	}

	model := snapshotModel{
		ID:        uuid.NewString(),
		Name:      name,
		Width:     c.Width(),
		Height:    c.Height(),
		Cells:     cells,
		CreatedAt: time.Now().Unix(),
	}

	_, err = r.db.Exec(
		`INSERT INTO snapshots (`+snapshotColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		model.ID, model.Name, model.Width, model.Height, model.Cells, model.CreatedAt,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("inserting snapshot: %w", err)
	}

	log.Debug(log.CatStore, "snapshot saved", "id", model.ID, "name", name)

	return model.toSnapshot(), nil
}

// List returns metadata for every snapshot, newest first.
func (r *SnapshotRepository) List() ([]Snapshot, error) {
	rows, err := r.db.Query(
		`SELECT id, name, width, height, created_at FROM snapshots ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []Snapshot
	for rows.Next() {
		var model snapshotModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Width, &model.Height, &model.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		snapshots = append(snapshots, model.toSnapshot())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}

	return snapshots, nil
}

// Load retrieves a snapshot and decodes its canvas.
// Returns ErrNotFound if no snapshot has the given id.
func (r *SnapshotRepository) Load(id string) (Snapshot, *canvas.Canvas, error) {
	row := r.db.QueryRow(
		`SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`,
		id,
	)
	model, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, nil, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("loading snapshot: %w", err)
	}

	var c canvas.Canvas
	if err := json.Unmarshal(model.Cells, &c); err != nil {
		return Snapshot{}, nil, fmt.Errorf("decoding snapshot canvas: %w", err)
	}

	return model.toSnapshot(), &c, nil
}

// Delete removes a snapshot by id.
// Returns ErrNotFound if no snapshot has the given id.
func (r *SnapshotRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune deletes all but the keep newest snapshots and reports how many
// rows were removed.
func (r *SnapshotRepository) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	result, err := r.db.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY created_at DESC, id LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	if removed > 0 {
		log.Debug(log.CatStore, "snapshots pruned", "removed", removed, "keep", keep)
	}
	return removed, nil
}
