package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/TimothyStiles/rnapmf/potential"
	"github.com/lunny/log"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	pair  TEXT    NOT NULL,
	bin   INTEGER NOT NULL,
	score REAL    NOT NULL,
	PRIMARY KEY (pair, bin)
)`

// SQLite stores score tables as rows of (pair, bin, score). Scores are
// rounded to four decimal digits, the precision of the text format, so both
// backends load identical tables.
type SQLite struct {
	DB     *sql.DB
	Layout Layout
	Logger *log.Logger
}

// OpenSQLite opens (creating it if needed) the database at path.
func OpenSQLite(path string, layout Layout, logger *log.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive and serializes
	// writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema in %s: %w", path, err)
	}
	return &SQLite{DB: db, Layout: layout, Logger: logger}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.DB.Close()
}

// Save replaces every stored row with the rows of t.
func (s *SQLite) Save(t potential.ScoreTable) (err error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM scores`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO scores (pair, bin, score) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, key := range t.Keys() {
		for bin, score := range t[key] {
			if _, err = stmt.Exec(key, bin, round4(score)); err != nil {
				return fmt.Errorf("saving %s scores: %w", key, err)
			}
		}
	}
	return tx.Commit()
}

// Load reads every stored row. Keys of the layout without rows get
// Layout.Bins copies of Layout.MaxScore and a warning is logged.
func (s *SQLite) Load() (potential.ScoreTable, error) {
	logger := discard(s.Logger)
	rows, err := s.DB.Query(`SELECT pair, bin, score FROM scores ORDER BY pair, bin`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := make(potential.ScoreTable)
	for rows.Next() {
		var (
			key   string
			bin   int
			score float64
		)
		if err := rows.Scan(&key, &bin, &score); err != nil {
			return nil, err
		}
		if bin != len(table[key]) {
			return nil, fmt.Errorf("loading %s scores: missing bin %d", key, len(table[key]))
		}
		table[key] = append(table[key], score)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for key, scores := range table {
		if s.Layout.Bins > 0 && len(scores) != s.Layout.Bins {
			return nil, fmt.Errorf("loading %s scores: %w: got %d, want %d",
				key, ErrBinMismatch, len(scores), s.Layout.Bins)
		}
	}
	for _, key := range s.Layout.Keys {
		if _, ok := table[key]; ok {
			continue
		}
		logger.Warnf("no stored scores for %s, using default score %.1f",
			key, s.Layout.MaxScore)
		table[key] = potential.DefaultScores(s.Layout.Bins, s.Layout.MaxScore)
	}
	return table, nil
}

// round4 rounds v exactly as the text format does.
func round4(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 4, 64), 64)
	return r
}
