package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.Init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Init() error {
	if _, err := s.db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		return err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			spec_sha256 TEXT NOT NULL,
			endpoints INTEGER NOT NULL DEFAULT 0,
			paginated INTEGER NOT NULL DEFAULT 0,
			schemas INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			run_id TEXT NOT NULL,
			name TEXT NOT NULL,
			content BLOB NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY(run_id, name)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) CreateRun(source, specSHA string) (*Run, error) {
	now := time.Now().UTC()
	id, err := s.nextRunID(now)
	if err != nil {
		return nil, err
	}
	run := &Run{ID: id, Source: source, SpecSHA256: specSHA, Status: StatusStarted, CreatedAt: now, UpdatedAt: now}
	_, err = s.db.Exec(`INSERT INTO runs(id,source,spec_sha256,endpoints,paginated,schemas,status,created_at,updated_at) VALUES(?,?,?,?,?,?,?,?,?)`,
		run.ID, run.Source, run.SpecSHA256, run.Endpoints, run.Paginated, run.Schemas, run.Status, run.CreatedAt, run.UpdatedAt)
	return run, err
}

func (s *SQLiteStore) nextRunID(now time.Time) (string, error) {
	prefix := fmt.Sprintf("run_%s_", now.Format("20060102"))
	rows, err := s.db.Query(`SELECT id FROM runs WHERE id LIKE ?`, prefix+"%")
	if err != nil {
		return "", err
	}
	defer rows.Close()
	maxN := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		var n int
		_, _ = fmt.Sscanf(id, prefix+"%03d", &n)
		if n > maxN {
			maxN = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, maxN+1), nil
}

func (s *SQLiteStore) CompleteRun(id string, endpoints, paginated, schemas int) error {
	_, err := s.db.Exec(`UPDATE runs SET endpoints=?, paginated=?, schemas=?, status=?, updated_at=? WHERE id=?`,
		endpoints, paginated, schemas, StatusComplete, time.Now().UTC(), id)
	return err
}

func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT id,source,spec_sha256,endpoints,paginated,schemas,status,created_at,updated_at FROM runs WHERE id=?`, id)
	var out Run
	if err := row.Scan(&out.ID, &out.Source, &out.SpecSHA256, &out.Endpoints, &out.Paginated, &out.Schemas, &out.Status, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SQLiteStore) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`SELECT id,source,spec_sha256,endpoints,paginated,schemas,status,created_at,updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.SpecSHA256, &r.Endpoints, &r.Paginated, &r.Schemas, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM artifacts WHERE run_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) SaveArtifact(runID, name string, content []byte) error {
	_, err := s.db.Exec(`INSERT INTO artifacts(run_id,name,content,created_at) VALUES(?,?,?,?)
	ON CONFLICT(run_id,name) DO UPDATE SET content=excluded.content, created_at=excluded.created_at`,
		runID, name, content, time.Now().UTC())
	return err
}

func (s *SQLiteStore) GetArtifact(runID, name string) ([]byte, error) {
	row := s.db.QueryRow(`SELECT content FROM artifacts WHERE run_id=? AND name=?`, runID, name)
	var content []byte
	if err := row.Scan(&content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return errors.New("store is nil")
	}
	return s.db.Close()
}
