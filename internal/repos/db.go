package repos

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

// Driver names as registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

var ErrUnsupportedDSN = errors.New("unsupported database URL")

// SQLite's LOWER only folds ASCII; this one folds the same way Go does.
const sqliteLower = "unicode_lower"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(sqliteLower, 1, unicodeLower); err != nil {
		panic(err)
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// lowerFunc names the case-folding SQL function for db's dialect.
func lowerFunc(db *sqlx.DB) string {
	if db.DriverName() == DriverSQLite {
		return sqliteLower
	}
	return "LOWER"
}

// ParseDSN picks the driver for a connection string. postgres:// URLs go to
// pgx and sqlite:// URLs (or bare paths) to SQLite. Any other scheme is
// rejected with ErrUnsupportedDSN.
func ParseDSN(dsn string) (drv, source string, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite:///"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite:///"), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	}
	if scheme, _, ok := strings.Cut(dsn, "://"); ok {
		return "", "", fmt.Errorf("%w: scheme %q", ErrUnsupportedDSN, scheme)
	}
	return DriverSQLite, dsn, nil
}

// OpenDB connects, verifies the connection and creates the schema if
// missing. The returned pool is shared by all repositories.
func OpenDB(dsn string) (*sqlx.DB, error) {
	drv, source, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(drv, source)
	if err != nil {
		return nil, err
	}
	if drv == DriverSQLite {
		// one writer at a time, and ":memory:" must stay a single database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	stmts := sqliteSchema
	if db.DriverName() == DriverPostgres {
		stmts = postgresSchema
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS offers(
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  public_id   TEXT NOT NULL UNIQUE,
  title       TEXT NOT NULL CHECK (length(title) BETWEEN 1 AND 255),
  description TEXT NOT NULL CHECK (length(description) BETWEEN 1 AND 2048),
  price       REAL NOT NULL CHECK (price > 0),
  seller_id   INTEGER NOT NULL DEFAULT 0,
  status      TEXT NOT NULL DEFAULT 'open' CHECK (length(status) <= 32),
  created_at  TEXT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS transactions(
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  offer_id   INTEGER NOT NULL,
  buyer_id   INTEGER NOT NULL DEFAULT 0,
  seller_id  INTEGER NOT NULL DEFAULT 0,
  amount     REAL NOT NULL CHECK (amount > 0),
  status     TEXT NOT NULL DEFAULT 'pending' CHECK (length(status) <= 32),
  tx_hash    TEXT NOT NULL UNIQUE CHECK (length(tx_hash) <= 64),
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_title       ON offers(LOWER(title))`,
	`CREATE INDEX IF NOT EXISTS idx_offers_status      ON offers(status)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_seller      ON offers(seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_created_at  ON offers(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_offer           ON transactions(offer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_buyer           ON transactions(buyer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_seller          ON transactions(seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_status          ON transactions(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_created_at      ON transactions(created_at)`,
}

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS offers(
  id          BIGSERIAL PRIMARY KEY,
  public_id   VARCHAR(36) NOT NULL UNIQUE,
  title       VARCHAR(255) NOT NULL CHECK (length(title) > 0),
  description VARCHAR(2048) NOT NULL CHECK (length(description) > 0),
  price       DOUBLE PRECISION NOT NULL CHECK (price > 0),
  seller_id   BIGINT NOT NULL DEFAULT 0,
  status      VARCHAR(32) NOT NULL DEFAULT 'open',
  created_at  TEXT NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS transactions(
  id         BIGSERIAL PRIMARY KEY,
  offer_id   BIGINT NOT NULL,
  buyer_id   BIGINT NOT NULL DEFAULT 0,
  seller_id  BIGINT NOT NULL DEFAULT 0,
  amount     DOUBLE PRECISION NOT NULL CHECK (amount > 0),
  status     VARCHAR(32) NOT NULL DEFAULT 'pending',
  tx_hash    VARCHAR(64) NOT NULL UNIQUE,
  created_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_title       ON offers(LOWER(title))`,
	`CREATE INDEX IF NOT EXISTS idx_offers_status      ON offers(status)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_seller      ON offers(seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_created_at  ON offers(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_offer           ON transactions(offer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_buyer           ON transactions(buyer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_seller          ON transactions(seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_status          ON transactions(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_created_at      ON transactions(created_at)`,
}
