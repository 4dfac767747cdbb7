package store

import (
	"time"
)

// Snapshot describes a stored canvas without its cell data. The cells
// stay in the database until Load is called.
type Snapshot struct {
	ID        string
	Name      string
	Width     int
	Height    int
	CreatedAt time.Time
}

// snapshotModel mirrors a row of the snapshots table. Cells holds the
// JSON-encoded canvas and CreatedAt is a Unix timestamp.
type snapshotModel struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Cells     []byte
	CreatedAt int64
}

func (m *snapshotModel) toSnapshot() Snapshot {
	return Snapshot{
		ID:        m.ID,
		Name:      m.Name,
		Width:     m.Width,
		Height:    m.Height,
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}
}
