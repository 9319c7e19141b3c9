package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TrendScout/internal/pipeline"
)

// SQLiteRecorder persists indicator tables and signal points to a SQLite
// database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the engine writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicator_rows (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol      TEXT NOT NULL,
			ts          INTEGER NOT NULL,
			open        REAL,
			high        REAL,
			low         REAL,
			close       REAL,
			volume      INTEGER,
			sma         REAL,
			ema_short   REAL,
			ema_long    REAL,
			rsi         REAL,
			bb_middle   REAL,
			bb_upper    REAL,
			bb_lower    REAL,
			macd        REAL,
			macd_signal REAL,
			macd_hist   REAL,
			atr         REAL,
			vwap        REAL,
			UNIQUE(symbol, ts) ON CONFLICT REPLACE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_indicator_symbol_ts ON indicator_rows(symbol, ts)`,

		`CREATE TABLE IF NOT EXISTS signal_points (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol    TEXT NOT NULL,
			ts        INTEGER NOT NULL,
			signal    TEXT NOT NULL,
			rationale TEXT,
			close     REAL,
			rsi       REAL,
			bb_middle REAL,
			bb_upper  REAL,
			bb_lower  REAL,
			ema_short REAL,
			ema_long  REAL,
			UNIQUE(symbol, ts) ON CONFLICT REPLACE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_symbol_ts ON signal_points(symbol, ts)`,

		`CREATE TABLE IF NOT EXISTS run_reports (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			ts        INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			ok        INTEGER NOT NULL,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_report_ts ON run_reports(ts)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps undefined (NaN) indicator entries to SQL NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// RecordResult writes the full aligned indicator table plus every signal
// point for one run, in a single transaction.
func (r *SQLiteRecorder) RecordResult(res *pipeline.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	rowStmt, err := tx.Prepare(`INSERT INTO indicator_rows
		(symbol, ts, open, high, low, close, volume,
		 sma, ema_short, ema_long, rsi, bb_middle, bb_upper, bb_lower,
		 macd, macd_signal, macd_hist, atr, vwap)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare rows: %w", err)
	}
	defer rowStmt.Close()

	ind := res.Indicators
	for i, b := range res.Series.Bars {
		if _, err := rowStmt.Exec(
			res.Series.Symbol, b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume,
			nullable(ind.SMA.At(i)), nullable(ind.EMAShort.At(i)), nullable(ind.EMALong.At(i)),
			nullable(ind.RSI.At(i)),
			nullable(ind.Bands.Middle.At(i)), nullable(ind.Bands.Upper.At(i)), nullable(ind.Bands.Lower.At(i)),
			nullable(ind.MACD.Line.At(i)), nullable(ind.MACD.Signal.At(i)), nullable(ind.MACD.Histogram.At(i)),
			nullable(ind.ATR.At(i)), nullable(ind.VWAP.At(i)),
		); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	sigStmt, err := tx.Prepare(`INSERT INTO signal_points
		(symbol, ts, signal, rationale, close, rsi, bb_middle, bb_upper, bb_lower, ema_short, ema_long)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare signals: %w", err)
	}
	defer sigStmt.Close()

	for _, p := range res.Signals {
		if _, err := sigStmt.Exec(
			res.Series.Symbol, p.Time.Unix(), string(p.Signal), p.Rationale,
			p.Close, p.RSI, p.BollMiddle, p.BollUpper, p.BollLower, p.EMAShort, p.EMALong,
		); err != nil {
			return fmt.Errorf("insert signal: %w", err)
		}
	}

	return tx.Commit()
}

// RecordReport logs the per-instrument outcome of a batch run.
func (r *SQLiteRecorder) RecordReport(rep *pipeline.RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok := 1
	errText := ""
	if rep.Err != nil {
		ok = 0
		errText = rep.Err.Error()
	}
	_, err := r.db.Exec(`INSERT INTO run_reports (ts, symbol, ok, error) VALUES (?,?,?,?)`,
		time.Now().Unix(), rep.Symbol, ok, errText)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
