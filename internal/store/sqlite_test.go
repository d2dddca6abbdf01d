package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tornspec.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRunLifecycle(t *testing.T) {
	s := newTestStore(t)

	run, err := s.CreateRun("openapi/latest.json", "abc123")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	require.Equal(t, StatusStarted, run.Status)

	require.NoError(t, s.CompleteRun(run.ID, 214, 36, 180))

	got, err := s.GetRun(run.ID)
	require.NoError(t, err)
	require.Equal(t, StatusComplete, got.Status)
	require.Equal(t, 214, got.Endpoints)
	require.Equal(t, 36, got.Paginated)
	require.Equal(t, 180, got.Schemas)
	require.Equal(t, "abc123", got.SpecSHA256)

	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestRunIDsAreSequentialPerDay(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateRun("a.json", "s1")
	require.NoError(t, err)
	second, err := s.CreateRun("b.json", "s2")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestArtifactRoundTrip(t *testing.T) {
	s := newTestStore(t)

	run, err := s.CreateRun("a.json", "s1")
	require.NoError(t, err)

	require.NoError(t, s.SaveArtifact(run.ID, "spec_map.json", []byte(`{"user": []}`)))
	got, err := s.GetArtifact(run.ID, "spec_map.json")
	require.NoError(t, err)
	require.Equal(t, `{"user": []}`, string(got))

	// Upsert replaces content in place.
	require.NoError(t, s.SaveArtifact(run.ID, "spec_map.json", []byte(`{}`)))
	got, err = s.GetArtifact(run.ID, "spec_map.json")
	require.NoError(t, err)
	require.Equal(t, `{}`, string(got))
}

func TestDeleteRunCascades(t *testing.T) {
	s := newTestStore(t)

	run, err := s.CreateRun("a.json", "s1")
	require.NoError(t, err)
	require.NoError(t, s.SaveArtifact(run.ID, "schema_map.json", []byte(`{}`)))

	require.NoError(t, s.DeleteRun(run.ID))

	_, err = s.GetRun(run.ID)
	require.Error(t, err)
	_, err = s.GetArtifact(run.ID, "schema_map.json")
	require.Error(t, err)
}
