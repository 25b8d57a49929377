package postgres_adapter

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSnapshotsTable = `
	CREATE TABLE IF NOT EXISTS market_snapshots (
		id               BIGSERIAL PRIMARY KEY,
		captured_at      TIMESTAMPTZ      NOT NULL,
		total_market_cap DOUBLE PRECISION NOT NULL,
		total_volume     DOUBLE PRECISION NOT NULL,
		avg_market_cap   DOUBLE PRECISION NOT NULL,
		avg_volume       DOUBLE PRECISION NOT NULL,
		avg_price        DOUBLE PRECISION NOT NULL,
		avg_change_24h   DOUBLE PRECISION NOT NULL,
		fear_greed_index INTEGER          NOT NULL,
		sentiment        TEXT             NOT NULL
	);
	CREATE INDEX IF NOT EXISTS market_snapshots_captured_at_idx ON market_snapshots (captured_at);
`

const insertSnapshot = `
	INSERT INTO market_snapshots (
		captured_at, total_market_cap, total_volume, avg_market_cap, avg_volume,
		avg_price, avg_change_24h, fear_greed_index, sentiment
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Дни считаются в UTC, как и метки графика на сервере.
const selectDailySeries = `
	SELECT date_trunc('day', captured_at AT TIME ZONE 'UTC') AS day,
	       avg(avg_market_cap), avg(avg_volume), avg(avg_price)
	FROM market_snapshots
	WHERE captured_at >= $1 AND captured_at <= $2
	GROUP BY day
	ORDER BY day
`

// dbtx - то, что репозиторий использует от пула соединений.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSnapshotRepository хранит историю снимков рынка и отдает ее
// как дневные ряды для графиков дашборда.
type PostgresSnapshotRepository struct {
	db dbtx
}

func NewPostgresSnapshotRepository(pool *pgxpool.Pool) (*PostgresSnapshotRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresSnapshotRepository{db: pool}, nil
}

// EnsureSchema создает таблицу снимков, если ее еще нет.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("failed to create market_snapshots table: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) SaveSnapshot(ctx context.Context, s domain.MarketSnapshot) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSnapshotRepository",
		"method":    "SaveSnapshot",
	})

	_, err := r.db.Exec(ctx, insertSnapshot,
		s.CapturedAt.UTC(),
		s.TotalMarketCap,
		s.TotalVolume,
		s.AvgMarketCap,
		s.AvgVolume,
		s.AvgPrice,
		s.AvgChange24h,
		s.FearGreedIndex,
		string(s.Sentiment),
	)
	if err != nil {
		repoLogger.Error("Failed to save market snapshot", err, nil)
		return fmt.Errorf("failed to save market snapshot: %w", err)
	}

	repoLogger.Debug("Market snapshot saved", port.Fields{"captured_at": s.CapturedAt})
	return nil
}

func (r *PostgresSnapshotRepository) DailySeries(ctx context.Context, from, to time.Time) ([]domain.SeriesPoint, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresSnapshotRepository",
		"method":    "DailySeries",
	})

	rows, err := r.db.Query(ctx, selectDailySeries, from.UTC(), to.UTC())
	if err != nil {
		repoLogger.Error("Failed to query daily series", err, nil)
		return nil, fmt.Errorf("failed to query daily series: %w", err)
	}
	defer rows.Close()

	var points []domain.SeriesPoint
	for rows.Next() {
		var p domain.SeriesPoint
		if err := rows.Scan(&p.Day, &p.MarketCap, &p.Volume, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		p.Day = time.Date(p.Day.Year(), p.Day.Month(), p.Day.Day(), 0, 0, 0, 0, time.UTC)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read series rows: %w", err)
	}

	repoLogger.Debug("Daily series loaded", port.Fields{"days": len(points)})
	return points, nil
}
