package analytics

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// NewStore creates a new analytics store at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			path TEXT NOT NULL,
			referrer TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_visitor_id ON visits(visitor_id);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting returns the value for key, or "" when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting upserts a settings key.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(v Visit) error {
	_, err := s.db.Exec(`INSERT INTO visits (visitor_id, ip_hash, path, referrer, timestamp) VALUES (?, ?, ?, ?, ?)`,
		v.VisitorID, v.IPHash, v.Path, v.Referrer, v.Timestamp.UTC())
	return err
}

// StatsSince aggregates readership from the given time onward.
func (s *Store) StatsSince(since time.Time, period string) (Stats, error) {
	stats := Stats{Period: period}

	err := s.db.QueryRow(`SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp >= ?`, since.UTC()).
		Scan(&stats.TotalViews, &stats.UniqueVisitors)
	if err != nil {
		return Stats{}, err
	}

	rows, err := s.db.Query(`
		SELECT path, COUNT(*), COUNT(DISTINCT visitor_id)
		FROM visits WHERE timestamp >= ?
		GROUP BY path ORDER BY COUNT(*) DESC LIMIT 20`, since.UTC())
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps PageStat
		if err := rows.Scan(&ps.Path, &ps.Views, &ps.Readers); err != nil {
			return Stats{}, err
		}
		stats.TopPosts = append(stats.TopPosts, ps)
	}
	return stats, rows.Err()
}

// Prune deletes visits older than the retention window.
func (s *Store) Prune(retainDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retainDays)
	_, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	return err
}
