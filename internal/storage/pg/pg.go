package pg

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/pulsefeed-dev/pulsefeed/internal/config"
	"github.com/pulsefeed-dev/pulsefeed/internal/logger"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so the core query
// helpers work inside and outside transactions.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

type Storage struct {
	db *sql.DB
}

func New(cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db")
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.InitPath != "" {
		logger.Log.Info("initializing db schema", "path", cfg.InitPath)
		if err := Init(db, cfg); err != nil {
			return nil, err
		}
	}

	return &Storage{db}, nil
}

func Connect(cfg config.Pg) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// Init applies the schema script. The script only uses IF NOT EXISTS
// statements, so running it on every startup is safe.
func Init(db *sql.DB, cfg config.Pg) error {
	query, err := os.ReadFile(cfg.InitPath)
	if err != nil {
		return err
	}
	_, err = db.Exec(string(query))
	return err
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) Ping() error {
	return s.db.Ping()
}

func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nowTs returns the creation timestamp for new rows. The database rounds
// to microseconds anyway, rounding here keeps returned structs equal to
// what a later SELECT yields.
func nowTs() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}
