package storage

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/solbo-lab/solbo/internal/logger"
	"github.com/solbo-lab/solbo/pkg/errors"
)

// DuckDBPriceHistory implements PriceHistory on top of a DuckDB database.
// All strategy instances share one database file; each row is tagged with the
// owning instance name so streams stay isolated.
type DuckDBPriceHistory struct {
	db       *sql.DB
	logger   *logger.Logger
	sq       squirrel.StatementBuilderType
	instance string
	ownsDB   bool
}

// NewDuckDBPriceHistory opens (or creates) the database at dbPath and binds
// the store to the given strategy instance. An empty dbPath uses an in-memory
// database.
func NewDuckDBPriceHistory(dbPath, instance string, log *logger.Logger) (*DuckDBPriceHistory, error) {
	dsn := dbPath
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		log.Error("Failed to open price history database", zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to open price history database", err)
	}

	if err := db.Ping(); err != nil {
		log.Error("Failed to connect to price history database", zap.Error(err))
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to connect to price history database", err)
	}

	store := &DuckDBPriceHistory{
		db:       db,
		logger:   log,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		instance: instance,
		ownsDB:   true,
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

// OpenDuckDB opens the database file backing price history so several
// instance stores can share one connection. An empty path opens an in-memory
// database.
func OpenDuckDB(path string) (*sql.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to open price history database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to connect to price history database", err)
	}

	return db, nil
}

// NewDuckDBPriceHistoryWithDB binds a store for one instance on an already
// open database, so multiple instances can share a single database file. The
// caller keeps ownership of db; Close on the returned store is a no-op.
func NewDuckDBPriceHistoryWithDB(db *sql.DB, instance string, log *logger.Logger) (*DuckDBPriceHistory, error) {
	store := &DuckDBPriceHistory{
		db:       db,
		logger:   log,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		instance: instance,
	}

	if err := store.initialize(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *DuckDBPriceHistory) initialize() error {
	if _, err := s.db.Exec(`CREATE SEQUENCE IF NOT EXISTS price_id_seq START 1`); err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to create price id sequence", err)
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS prices (
			id INTEGER PRIMARY KEY,
			instance TEXT NOT NULL,
			observed_at TIMESTAMP DEFAULT current_timestamp,
			price TEXT NOT NULL
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to create prices table", err)
	}

	return nil
}

// Append implements PriceHistory.
func (s *DuckDBPriceHistory) Append(price decimal.Decimal) error {
	if s == nil || s.db == nil {
		return errors.New(errors.ErrCodeStorageUnavailable, "price history store is not initialized")
	}

	var nextID int
	if err := s.db.QueryRow("SELECT nextval('price_id_seq')").Scan(&nextID); err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to get next price id", err)
	}

	// Prices are stored as exact decimal strings, not doubles.
	insertQuery := s.sq.
		Insert("prices").
		Columns("id", "instance", "price").
		Values(nextID, s.instance, price.String()).
		RunWith(s.db)

	if _, err := insertQuery.Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to append price", err)
	}

	return nil
}

// GetAll implements PriceHistory.
func (s *DuckDBPriceHistory) GetAll() ([]decimal.Decimal, error) {
	if s == nil || s.db == nil {
		return nil, errors.New(errors.ErrCodeStorageUnavailable, "price history store is not initialized")
	}

	selectQuery := s.sq.
		Select("price").
		From("prices").
		Where(squirrel.Eq{"instance": s.instance}).
		OrderBy("id ASC").
		RunWith(s.db)

	rows, err := selectQuery.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to query prices", err)
	}
	defer rows.Close()

	prices := make([]decimal.Decimal, 0)

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to scan price row", err)
		}

		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeStorageUnavailable, err, "stored price %q is not a decimal", raw)
		}

		prices = append(prices, price)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to iterate price rows", err)
	}

	return prices, nil
}

// Clear implements PriceHistory.
func (s *DuckDBPriceHistory) Clear() error {
	if s == nil || s.db == nil {
		return errors.New(errors.ErrCodeStorageUnavailable, "price history store is not initialized")
	}

	deleteQuery := s.sq.
		Delete("prices").
		Where(squirrel.Eq{"instance": s.instance}).
		RunWith(s.db)

	if _, err := deleteQuery.Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, "failed to clear prices", err)
	}

	s.logger.Info("Cleared price history", zap.String("instance", s.instance))

	return nil
}

// Close implements PriceHistory.
func (s *DuckDBPriceHistory) Close() error {
	if s == nil || s.db == nil || !s.ownsDB {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close price history database: %w", err)
	}

	s.db = nil

	return nil
}
