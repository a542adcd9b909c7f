package store_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/TimothyStiles/rnapmf/store"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lunny/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() potential.ScoreTable {
	p := potential.DefaultParams()
	table := make(potential.ScoreTable)
	for k, key := range p.Keys {
		scores := make([]float64, p.Histogram.Bins)
		for i := range scores {
			scores[i] = float64(k) - float64(i)*0.123456789
		}
		scores[len(scores)-1] = potential.MaxScore
		table[key] = scores
	}
	return table
}

func assertRoundTrip(t *testing.T, want, got potential.ScoreTable) {
	t.Helper()
	opt := cmpopts.EquateApprox(0, 0.5e-4)
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDirRoundTrip(t *testing.T) {
	var logs bytes.Buffer
	d := store.NewDir(t.TempDir(), log.New(&logs, "", 0))
	table := sampleTable()

	require.NoError(t, d.Save(table))
	assert.FileExists(t, d.File("AU"))
	assert.FileExists(t, filepath.Join(d.Path, "manifest.yaml"))

	data, err := os.ReadFile(d.File("AA"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "0.0000\n-0.1235\n-0.2469\n"), string(data))
	assert.Equal(t, 20, strings.Count(string(data), "\n"))

	loaded, err := d.Load()
	require.NoError(t, err)
	assertRoundTrip(t, table, loaded)
	assert.Empty(t, logs.String())
}

func TestDirMissingKey(t *testing.T) {
	var logs bytes.Buffer
	d := store.NewDir(t.TempDir(), log.New(&logs, "", 0))
	require.NoError(t, d.Save(sampleTable()))
	require.NoError(t, os.Remove(d.File("GG")))

	loaded, err := d.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 10)
	assert.Equal(t, potential.DefaultScores(20, 10.0), loaded["GG"])
	assert.Contains(t, logs.String(), "GG_scores.txt")
	// The manifest no longer matches either.
	assert.Contains(t, logs.String(), "manifest")
}

func TestDirEmpty(t *testing.T) {
	var logs bytes.Buffer
	d := store.NewDir(filepath.Join(t.TempDir(), "absent"), log.New(&logs, "", 0))
	loaded, err := d.Load()
	require.NoError(t, err)
	assert.Equal(t, potential.Default(potential.PairKeys, 20, potential.MaxScore), loaded)
	assert.Equal(t, 10, strings.Count(logs.String(), "not found"))
}

func TestDirMalformed(t *testing.T) {
	d := store.NewDir(t.TempDir(), nil)
	require.NoError(t, d.Save(sampleTable()))

	require.NoError(t, os.WriteFile(d.File("CG"), []byte("1.0\n2.0\n"), 0o644))
	_, err := d.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), store.ErrBinMismatch.Error())

	require.NoError(t, os.WriteFile(d.File("CG"), []byte("1.0\nabc\n"), 0o644))
	_, err = d.Load()
	assert.Error(t, err)
}

func TestSQLiteRoundTrip(t *testing.T) {
	var logs bytes.Buffer
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "scores.db"),
		store.DefaultLayout(), log.New(&logs, "", 0))
	require.NoError(t, err)
	defer s.Close()

	table := sampleTable()
	require.NoError(t, s.Save(table))
	loaded, err := s.Load()
	require.NoError(t, err)
	assertRoundTrip(t, table, loaded)

	// Both backends agree to the persisted precision.
	d := store.NewDir(t.TempDir(), nil)
	require.NoError(t, d.Save(table))
	fromDir, err := d.Load()
	require.NoError(t, err)
	assert.Equal(t, fromDir.Fingerprint(), loaded.Fingerprint())

	// Saving replaces previous rows.
	delete(table, "GG")
	require.NoError(t, s.Save(table))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, potential.DefaultScores(20, 10.0), loaded["GG"])
	assert.Contains(t, logs.String(), "GG")
}

func TestDiff(t *testing.T) {
	a := sampleTable()
	b := sampleTable()

	text, err := store.Diff(a, b, "a", "b")
	require.NoError(t, err)
	assert.Empty(t, text)

	b["CU"][3] = 4.25
	delete(b, "UU")
	text, err = store.Diff(a, b, "a", "b")
	require.NoError(t, err)
	assert.Contains(t, text, "--- a/CU")
	assert.Contains(t, text, "+++ b/CU")
	assert.Contains(t, text, "+ 3 4.2500")
	assert.Contains(t, text, "--- a/UU")
	assert.NotContains(t, text, "a/AU")
}
