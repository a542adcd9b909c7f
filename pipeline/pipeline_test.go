package pipeline_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/TimothyStiles/rnapmf/evaluate"
	"github.com/TimothyStiles/rnapmf/io/pdb"
	"github.com/TimothyStiles/rnapmf/pipeline"
	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/TimothyStiles/rnapmf/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// randomStructure returns a two chain structure whose residues follow a
// random walk with 6 Angstrom steps.
func randomStructure(rng *rand.Rand, n int) []pdb.Atom {
	bases := []string{"A", "C", "G", "U"}
	atoms := make([]pdb.Atom, n)
	var pos r3.Vec
	for i := range atoms {
		step := r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
		pos = r3.Add(pos, r3.Scale(6/r3.Norm(step), step))
		chain := "A"
		if i >= n/2 {
			chain = "B"
		}
		atoms[i] = pdb.Atom{
			Residue: bases[rng.Intn(len(bases))], Chain: chain,
			Sequence: i + 1, HasSequence: true, Position: pos,
		}
	}
	return atoms
}

func writeStructure(t *testing.T, path string, atoms []pdb.Atom) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, pdb.Write(&buf, atoms, pdb.C3Prime))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// corpus writes n random structures plus an empty one and a non-structure
// file into a new directory. It returns the directory and the structures by
// file name.
func corpus(t *testing.T, n int) (string, map[string][]pdb.Atom) {
	t.Helper()
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(42))
	structures := make(map[string][]pdb.Atom)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%dxyz.pdb", i+1)
		// Round trip through the text format so coordinates match what the
		// pipeline reads.
		writeStructure(t, filepath.Join(dir, name), randomStructure(rng, 30+rng.Intn(30)))
		atoms, err := pdb.ReadFile(filepath.Join(dir, name), pdb.C3Prime)
		require.NoError(t, err)
		structures[name] = atoms
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0empty.pdb"), []byte("HEADER\nEND\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("not a structure"), 0o644))
	return dir, structures
}

func TestListStructures(t *testing.T) {
	dir, structures := corpus(t, 3)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdb"), 0o755))

	paths, err := pipeline.ListStructures(dir, []string{".pdb", ".pdb.gz"})
	require.NoError(t, err)
	require.Len(t, paths, len(structures)+1)
	assert.Equal(t, filepath.Join(dir, "0empty.pdb"), paths[0])
	assert.Equal(t, filepath.Join(dir, "1xyz.pdb"), paths[1])

	_, err = pipeline.ListStructures(filepath.Join(dir, "missing"), []string{".pdb"})
	assert.Error(t, err)
}

func TestTrainCorpusWide(t *testing.T) {
	dir, structures := corpus(t, 6)
	paths, err := pipeline.ListStructures(dir, []string{".pdb"})
	require.NoError(t, err)

	p := potential.DefaultParams()
	want := potential.NewCountTable(p.Histogram, p.Keys)
	for _, atoms := range structures {
		want.AddStructure(atoms, p.MinGap)
	}

	var logs bytes.Buffer
	out := store.NewDir(t.TempDir(), nil)
	trainer := pipeline.Trainer{
		Params:        p,
		ReferenceAtom: pdb.C3Prime,
		Workers:       3,
		Store:         out,
		Logger:        pipeline.NewLogger(&logs),
	}
	table, reports, err := trainer.Train(paths)
	require.NoError(t, err)
	if diff := cmp.Diff(potential.Train(want, p), table); diff != "" {
		t.Fatalf("corpus-wide table (-want +got):\n%s", diff)
	}

	require.Len(t, reports, len(paths))
	assert.Equal(t, evaluate.ErrEmptyStructure, reports[0].Err)
	for _, r := range reports[1:] {
		assert.NoError(t, r.Err)
		assert.Equal(t, len(structures[filepath.Base(r.Path)]), r.Atoms)
	}
	assert.Contains(t, logs.String(), "0empty.pdb")

	loaded, err := out.Load()
	require.NoError(t, err)
	assert.Equal(t, table.Fingerprint(), loaded.Fingerprint())
}

func TestTrainPerFile(t *testing.T) {
	dir, structures := corpus(t, 4)
	paths, err := pipeline.ListStructures(dir, []string{".pdb"})
	require.NoError(t, err)

	p := potential.DefaultParams()
	last := potential.NewCountTable(p.Histogram, p.Keys)
	last.AddStructure(structures["4xyz.pdb"], p.MinGap)

	out := store.NewDir(t.TempDir(), nil)
	table, reports, err := pipeline.Trainer{
		Params:        p,
		ReferenceAtom: pdb.C3Prime,
		Mode:          pipeline.PerFile,
		Store:         out,
	}.Train(paths)
	require.NoError(t, err)
	assert.Len(t, reports, 5)
	if diff := cmp.Diff(potential.Train(last, p), table); diff != "" {
		t.Fatalf("per-file table (-want +got):\n%s", diff)
	}
	loaded, err := out.Load()
	require.NoError(t, err)
	assert.Equal(t, table.Fingerprint(), loaded.Fingerprint())
}

func TestTrainNothing(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.pdb")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	for _, mode := range []pipeline.Mode{pipeline.CorpusWide, pipeline.PerFile} {
		_, reports, err := pipeline.Trainer{
			Params:        potential.DefaultParams(),
			ReferenceAtom: pdb.C3Prime,
			Mode:          mode,
		}.Train([]string{empty, filepath.Join(dir, "missing.pdb")})
		assert.Equal(t, pipeline.ErrNoStructures, err, mode.String())
		assert.Len(t, reports, 2)
		assert.Error(t, reports[1].Err)
	}
	_, _, err := pipeline.Trainer{Params: potential.DefaultParams()}.Train(nil)
	assert.Equal(t, pipeline.ErrNoStructures, err)
}

func TestParseMode(t *testing.T) {
	for _, m := range []pipeline.Mode{pipeline.CorpusWide, pipeline.PerFile} {
		got, err := pipeline.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := pipeline.ParseMode("sometimes")
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	dir, structures := corpus(t, 5)
	paths, err := pipeline.ListStructures(dir, []string{".pdb"})
	require.NoError(t, err)

	p := potential.DefaultParams()
	table, _, err := pipeline.Trainer{Params: p, ReferenceAtom: pdb.C3Prime}.Train(paths)
	require.NoError(t, err)

	var logs bytes.Buffer
	scorer := evaluate.NewScorer(table)
	reports := pipeline.Evaluator{
		Scorer:        scorer,
		ReferenceAtom: pdb.C3Prime,
		Workers:       4,
		Logger:        pipeline.NewLogger(&logs),
	}.Evaluate(paths)

	require.Len(t, reports, len(paths))
	assert.Equal(t, evaluate.ErrEmptyStructure, reports[0].Err)
	for i, r := range reports[1:] {
		assert.Equal(t, paths[i+1], r.Path)
		require.NoError(t, r.Err)
		want, err := scorer.Score(structures[filepath.Base(r.Path)])
		require.NoError(t, err)
		assert.Equal(t, want, r.Result)
	}
	assert.Contains(t, logs.String(), "pseudo-energy")
}
