package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/timesheet/internal/settings"
)

// ExportRecord is one finished PDF export.
type ExportRecord struct {
	ID        string    `json:"id"`
	Month     string    `json:"month"`
	Path      string    `json:"path"`
	Pages     int       `json:"pages"`
	CreatedAt time.Time `json:"created_at"`
}

// SettingsDB is a settings.Backend backed by SQLite. It also keeps a log
// of finished exports.
type SettingsDB struct {
	db *sql.DB
}

var _ settings.Backend = (*SettingsDB)(nil)

func New(path string) (*SettingsDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// :memory: databases are per connection
	db.SetMaxOpenConns(1)

	database := &SettingsDB{db: db}
	if err := database.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return database, nil
}

func (d *SettingsDB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			month TEXT NOT NULL,
			path TEXT NOT NULL,
			pages INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_month ON exports(month)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

func (d *SettingsDB) Close() error {
	return d.db.Close()
}

// Load reads every stored key over the defaults.
func (d *SettingsDB) Load() (settings.Settings, error) {
	s := settings.Defaults()

	rows, err := d.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return s, err
		}
		if err := apply(&s, key, value); err != nil {
			return s, fmt.Errorf("setting %q: %w", key, err)
		}
	}

	return s, rows.Err()
}

// Save replaces all keys in a single transaction.
func (d *SettingsDB) Save(s settings.Settings) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, kv := range pairs(s) {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to save %s: %w", kv[0], err)
		}
	}

	return tx.Commit()
}

func pairs(s settings.Settings) [][2]string {
	return [][2]string{
		{"name", s.Name},
		{"position", s.Position},
		{"siteName", s.SiteName},
		{"pageBreakDay", strconv.Itoa(s.PageBreakDay)},
		{"payrollDeadlineOffset", strconv.Itoa(s.PayrollDeadlineOffset)},
		{"useCygnetLogo", strconv.FormatBool(s.UseCygnetLogo)},
	}
}

func apply(s *settings.Settings, key, value string) error {
	var err error
	switch key {
	case "name":
		s.Name = value
	case "position":
		s.Position = value
	case "siteName":
		s.SiteName = value
	case "pageBreakDay":
		s.PageBreakDay, err = strconv.Atoi(value)
	case "payrollDeadlineOffset":
		s.PayrollDeadlineOffset, err = strconv.Atoi(value)
	case "useCygnetLogo":
		s.UseCygnetLogo, err = strconv.ParseBool(value)
	}
	// unknown keys are left for newer versions
	return err
}

func (d *SettingsDB) InsertExport(rec ExportRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO exports (id, month, path, pages, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Month,
		rec.Path,
		rec.Pages,
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// RecentExports returns up to limit records, newest first.
func (d *SettingsDB) RecentExports(limit int) ([]ExportRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, month, path, pages, created_at
		 FROM exports ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		var created string

		if err := rows.Scan(&rec.ID, &rec.Month, &rec.Path, &rec.Pages, &created); err != nil {
			return nil, err
		}

		rec.CreatedAt, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp for export %s: %w", rec.ID, err)
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
