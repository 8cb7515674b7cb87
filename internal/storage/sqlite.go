package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mash-project/hspace/internal/heuristic"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS heuristics (
			name TEXT PRIMARY KEY,
			author TEXT NOT NULL,
			public INTEGER NOT NULL,
			description TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_heuristics_author ON heuristics(author);

		CREATE VIRTUAL TABLE IF NOT EXISTS heuristics_fts USING fts5(
			name,
			description
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	hs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM heuristics"); err != nil {
		return 0, fmt.Errorf("clearing heuristics table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM heuristics_fts"); err != nil {
		return 0, fmt.Errorf("clearing heuristics_fts table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO heuristics (name, author, public, description)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing heuristics insert: %w", err)
	}
	defer stmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO heuristics_fts (name, description)
		VALUES (?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, h := range hs {
		if _, err := stmt.Exec(h.Name, h.Author, h.Public, nullableString(h.Description)); err != nil {
			return 0, fmt.Errorf("inserting heuristic %s: %w", h.Name, err)
		}
		if _, err := ftsStmt.Exec(h.Name, h.Description); err != nil {
			return 0, fmt.Errorf("inserting heuristics_fts for %s: %w", h.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}

	return len(hs), nil
}

// nullableString converts a Go string to sql.NullString.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// GetByName retrieves a heuristic by absolute name.
// Returns nil, nil if not found.
func (d *DB) GetByName(name string) (*heuristic.Heuristic, error) {
	row := d.db.QueryRow(`
		SELECT name, author, public, description
		FROM heuristics
		WHERE name = ?
	`, name)

	var h heuristic.Heuristic
	var description sql.NullString
	if err := row.Scan(&h.Name, &h.Author, &h.Public, &description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	h.Description = description.String
	return &h, nil
}

// ListHeuristics returns heuristics ordered by name. A non-empty author
// restricts the list to that author; limit <= 0 means no limit.
func (d *DB) ListHeuristics(author string, limit int) ([]heuristic.Heuristic, error) {
	query := `SELECT name, author, public, description FROM heuristics`
	var args []interface{}
	if author != "" {
		query += ` WHERE author = ?`
		args = append(args, author)
	}
	query += ` ORDER BY name`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying heuristics: %w", err)
	}
	defer rows.Close()

	return scanHeuristics(rows)
}

// Search performs a full-text search over names and descriptions.
func (d *DB) Search(query string, limit int) ([]heuristic.Heuristic, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT h.name, h.author, h.public, h.description
		FROM heuristics h
		WHERE h.name IN (SELECT name FROM heuristics_fts WHERE heuristics_fts MATCH ?)
		ORDER BY h.name
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching heuristics: %w", err)
	}
	defer rows.Close()

	return scanHeuristics(rows)
}

// Count returns the total number of heuristics.
func (d *DB) Count() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM heuristics").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// PublicNames returns the names of all heuristics with a published version.
func (d *DB) PublicNames() ([]string, error) {
	return d.queryNames(`SELECT name FROM heuristics WHERE public = 1 ORDER BY name`)
}

// PublicNamesByAuthor returns the names of the author's published heuristics.
func (d *DB) PublicNamesByAuthor(author string) ([]string, error) {
	return d.queryNames(`SELECT name FROM heuristics WHERE public = 1 AND author = ? ORDER BY name`, author)
}

// NamesByAuthor returns the names of all heuristics by the author.
func (d *DB) NamesByAuthor(author string) ([]string, error) {
	return d.queryNames(`SELECT name FROM heuristics WHERE author = ? ORDER BY name`, author)
}

func (d *DB) queryNames(query string, args ...interface{}) ([]string, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// scanHeuristics scans multiple heuristics from rows.
func scanHeuristics(rows *sql.Rows) ([]heuristic.Heuristic, error) {
	var hs []heuristic.Heuristic
	for rows.Next() {
		var h heuristic.Heuristic
		var description sql.NullString
		if err := rows.Scan(&h.Name, &h.Author, &h.Public, &description); err != nil {
			return nil, err
		}
		h.Description = description.String
		hs = append(hs, h)
	}
	return hs, rows.Err()
}

// prepareFTSQuery prepares a query string for FTS5.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// Names contain '/' and '.', which are not FTS5 bareword characters.
	if strings.ContainsAny(query, "\"*+-:(){}[]^~/.") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
