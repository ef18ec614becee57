package sampler

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// Store persists virtual price samples per pool so the yield ring
// survives restarts. The ring itself stays in memory; the store only
// rebuilds it from the newest rows.

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string // "disable", "require", "verify-full", etc.
}

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open connects to PostgreSQL and verifies the connection.
func Open(cfg DBConfig, logger *zap.Logger) (*Store, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to sample store")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("closing sample store", zap.Error(err))
	}
}

// EnsureSchema applies the DDL. Safe to run repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schemaSQL := `
		CREATE TABLE IF NOT EXISTS virtual_price_samples (
			sample_id SERIAL PRIMARY KEY,
			pool VARCHAR(64) NOT NULL,
			price BIGINT NOT NULL,
			sample_ts BIGINT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_virtual_price_samples_pool_ts
			ON virtual_price_samples (pool, sample_ts DESC);
	`
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply sample store schema: %w", err)
	}
	return nil
}

// RecordSample appends one sample for a pool.
func (s *Store) RecordSample(ctx context.Context, pool string, sample shared.VirtualPriceSample) error {
	query := `
		INSERT INTO virtual_price_samples (pool, price, sample_ts)
		VALUES ($1, $2, $3);
	`
	if _, err := s.db.ExecContext(ctx, query, pool, int64(sample.Price), sample.Timestamp); err != nil {
		return fmt.Errorf("record sample for pool %s: %w", pool, err)
	}
	s.logger.Debug("recorded virtual price sample",
		zap.String("pool", pool),
		zap.Uint64("price", sample.Price),
		zap.Int64("timestamp", sample.Timestamp))
	return nil
}

// LoadBuffer rebuilds a pool's snapshot ring from its newest persisted
// samples, oldest first so the ring pointer lands after the newest.
func (s *Store) LoadBuffer(ctx context.Context, pool string) (shared.SnapshotBuffer, error) {
	var buffer shared.SnapshotBuffer
	query := `
		SELECT price, sample_ts FROM (
			SELECT price, sample_ts
			FROM virtual_price_samples
			WHERE pool = $1
			ORDER BY sample_ts DESC
			LIMIT $2
		) newest
		ORDER BY sample_ts ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, pool, shared.SnapshotBufferSize)
	if err != nil {
		return buffer, fmt.Errorf("load samples for pool %s: %w", pool, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var price, timestamp int64
		if err := rows.Scan(&price, &timestamp); err != nil {
			return buffer, fmt.Errorf("scan sample row: %w", err)
		}
		buffer = math.PushSample(buffer, shared.VirtualPriceSample{
			Price:     uint64(price),
			Timestamp: timestamp,
		})
		count++
	}
	if err := rows.Err(); err != nil {
		return buffer, fmt.Errorf("iterate sample rows: %w", err)
	}
	s.logger.Debug("loaded snapshot ring", zap.String("pool", pool), zap.Int("samples", count))
	return buffer, nil
}
