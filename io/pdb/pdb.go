/*
Package pdb extracts reference atoms from PDB formatted structure files.

Only ATOM records whose atom name matches a reference atom label are kept, one
per residue in file order. Each residue is then represented by that single
atom when measuring distances between residues.

Records are read with a mix of fixed columns and whitespace separated tokens:
the atom name comes from columns 13-16, while residue name, chain identifier,
residue number and x/y/z coordinates are the 4th, 5th, 6th, 7th, 8th and 9th
tokens of the line. Records that fail to parse are skipped.
*/
package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// C3Prime is the label of the ribose C3' carbon, the default reference atom.
const C3Prime = "C3'"

const recordName = "ATOM"

// Atom is a reference atom: the single atom standing in for its residue.
type Atom struct {
	// Residue is the residue name, e.g. "A" or "U" for RNA.
	Residue string
	// Chain is the chain identifier.
	Chain string
	// Sequence is the residue sequence number. It is only meaningful when
	// HasSequence is true.
	Sequence    int
	HasSequence bool
	Position    r3.Vec
}

// Distance returns the Euclidean distance between two atoms.
func (a Atom) Distance(b Atom) float64 {
	return r3.Norm(r3.Sub(a.Position, b.Position))
}

func (a Atom) String() string {
	return fmt.Sprintf("%s%s(%0.3f, %0.3f, %0.3f)",
		a.Chain, a.Residue, a.Position.X, a.Position.Y, a.Position.Z)
}

// ParseRecord parses a single line of a PDB file. The second return value is
// false if the line is not an ATOM record for the reference atom label, or if
// any of its fields are missing or malformed.
func ParseRecord(line, label string) (Atom, bool) {
	if !strings.HasPrefix(line, recordName) || len(line) < 16 {
		return Atom{}, false
	}
	if strings.TrimSpace(line[12:16]) != label {
		return Atom{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < 9 {
		return Atom{}, false
	}
	var coords [3]float64
	for i := range coords {
		v, err := strconv.ParseFloat(fields[6+i], 64)
		if err != nil {
			return Atom{}, false
		}
		coords[i] = v
	}
	atom := Atom{
		Residue:  fields[3],
		Chain:    fields[4],
		Position: r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]},
	}
	if seq, err := strconv.Atoi(fields[5]); err == nil {
		atom.Sequence = seq
		atom.HasSequence = true
	}
	return atom, true
}

// Parse reads every line from r and returns the reference atoms with the
// given label in the order they appear. An input without any matching
// records yields an empty slice and no error.
func Parse(r io.Reader, label string) ([]Atom, error) {
	atoms := make([]Atom, 0, 100)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	for scanner.Scan() {
		if atom, ok := ParseRecord(scanner.Text(), label); ok {
			atoms = append(atoms, atom)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return atoms, nil
}

// ReadFile opens fileName and parses it with Parse. If the file name ends
// with ".gz", gzip decompression will be used.
func ReadFile(fileName, label string) ([]Atom, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(fileName, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", fileName, err)
		}
		defer gz.Close()
		reader = gz
	}

	atoms, err := Parse(reader, label)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	return atoms, nil
}

// Write writes atoms to w as fixed-column ATOM records named label, followed
// by an END record. Atoms without a sequence number are numbered by their
// position in atoms, starting at 1.
func Write(w io.Writer, atoms []Atom, label string) error {
	name := label
	if len(name) < 4 {
		name = " " + name
	}
	bw := bufio.NewWriter(w)
	for i, atom := range atoms {
		seq := i + 1
		if atom.HasSequence {
			seq = atom.Sequence
		}
		_, err := fmt.Fprintf(bw,
			"%-6s%5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f  1.00  0.00\n",
			recordName, i+1, name, atom.Residue, atom.Chain, seq,
			atom.Position.X, atom.Position.Y, atom.Position.Z)
		if err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("END\n"); err != nil {
		return err
	}
	return bw.Flush()
}
