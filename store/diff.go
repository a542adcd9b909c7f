package store

import (
	"fmt"
	"strings"

	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Diff returns a unified diff between the persisted text of two tables, one
// section per pair key, each line prefixed by its bin index. An empty string
// means the tables persist identically.
func Diff(a, b potential.ScoreTable, fromName, toName string) (string, error) {
	keySet := make(map[string]bool)
	for _, key := range a.Keys() {
		keySet[key] = true
	}
	for _, key := range b.Keys() {
		keySet[key] = true
	}
	keys := maps.Keys(keySet)
	slices.Sort(keys)

	var out strings.Builder
	for _, key := range keys {
		diff := difflib.UnifiedDiff{
			A:        lines(a[key]),
			B:        lines(b[key]),
			FromFile: fromName + "/" + key,
			ToFile:   toName + "/" + key,
			Context:  1,
		}
		text, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

func lines(scores []float64) []string {
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = fmt.Sprintf("%2d %.4f\n", i, s)
	}
	return out
}
