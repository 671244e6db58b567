package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists simulation run history to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so a report/CLI read doesn't block a scheduled batch write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS run_history (
			id               TEXT PRIMARY KEY,
			created_at       INTEGER NOT NULL,
			num_simulations  INTEGER NOT NULL,
			seed             INTEGER NOT NULL,
			fund_size        REAL,
			fund_life        INTEGER,
			mgmt_fee_rate    REAL,
			carry            REAL,
			graduation_rate  REAL,
			net_tvpi_p50     REAL,
			gross_tvpi_p50   REAL,
			irr_net_p50      REAL,
			prob_return_fund REAL,
			prob_2x          REAL,
			prob_3x          REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_history_created_at ON run_history(created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one completed batch's summary into run history.
func (s *SQLiteStore) RecordRun(rec *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO run_history
		(id, created_at, num_simulations, seed,
		 fund_size, fund_life, mgmt_fee_rate, carry, graduation_rate,
		 net_tvpi_p50, gross_tvpi_p50, irr_net_p50,
		 prob_return_fund, prob_2x, prob_3x)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.CreatedAt.Unix(), rec.NumSimulations, rec.Seed,
		rec.Params.FundSize, rec.Params.FundLife, rec.Params.MgmtFeeRate,
		rec.Params.Carry, rec.Params.GraduationRate,
		rec.NetTvpiP50, rec.GrossTvpiP50, rec.IrrNetP50,
		rec.ProbReturnFund, rec.Prob2x, rec.Prob3x,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recently recorded runs, newest first.
func (s *SQLiteStore) RecentRuns(limit int) ([]*RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, created_at, num_simulations, seed,
		fund_size, fund_life, mgmt_fee_rate, carry, graduation_rate,
		net_tvpi_p50, gross_tvpi_p50, irr_net_p50, prob_return_fund, prob_2x, prob_3x
		FROM run_history ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var out []*RunRecord
	for rows.Next() {
		rec := &RunRecord{}
		var createdAt int64
		if err := rows.Scan(&rec.ID, &createdAt, &rec.NumSimulations, &rec.Seed,
			&rec.Params.FundSize, &rec.Params.FundLife, &rec.Params.MgmtFeeRate,
			&rec.Params.Carry, &rec.Params.GraduationRate,
			&rec.NetTvpiP50, &rec.GrossTvpiP50, &rec.IrrNetP50,
			&rec.ProbReturnFund, &rec.Prob2x, &rec.Prob3x); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
