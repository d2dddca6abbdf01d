// Package store persists interpretation runs so regenerations are
// auditable after the fact: which spec bytes went in, which artifacts
// came out, and how the counts moved between runs.
package store

import "time"

// Run is one recorded interpretation of a spec document.
type Run struct {
	ID         string
	Source     string
	SpecSHA256 string
	Endpoints  int
	Paginated  int
	Schemas    int
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	StatusStarted  = "started"
	StatusComplete = "complete"
)

type Store interface {
	CreateRun(source, specSHA string) (*Run, error)
	CompleteRun(id string, endpoints, paginated, schemas int) error
	GetRun(id string) (*Run, error)
	ListRuns() ([]Run, error)
	DeleteRun(id string) error

	SaveArtifact(runID, name string, content []byte) error
	GetArtifact(runID, name string) ([]byte, error)

	Close() error
}
