package metrics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/braincarehq/backend/internal/db"
)

const metricColumns = "id, user_id, type, value, source, recorded_at"

// PostgresRepository is the pgx-backed metrics repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a metrics repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert records a measurement.
func (r *PostgresRepository) Insert(ctx context.Context, metric Metric) (Metric, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO health_metrics (user_id, type, value, source)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+metricColumns,
		metric.UserID,
		metric.Type,
		metric.Value,
		db.TextFromString(metric.Source),
	)
	return scanMetric(row)
}

// ByUser returns all measurements for a user, newest first.
func (r *PostgresRepository) ByUser(ctx context.Context, userID int64) ([]Metric, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+metricColumns+` FROM health_metrics
		 WHERE user_id = $1 ORDER BY recorded_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectMetrics(rows)
}

// ByUserAndType returns a user's measurements of one type, newest first.
func (r *PostgresRepository) ByUserAndType(ctx context.Context, userID int64, metricType string) ([]Metric, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+metricColumns+` FROM health_metrics
		 WHERE user_id = $1 AND type = $2 ORDER BY recorded_at DESC`, userID, metricType)
	if err != nil {
		return nil, err
	}
	return collectMetrics(rows)
}

// RecentByTypes returns a user's measurements of the given types recorded
// after since, newest first.
func (r *PostgresRepository) RecentByTypes(ctx context.Context, userID int64, types []string, since time.Time) ([]Metric, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+metricColumns+` FROM health_metrics
		 WHERE user_id = $1 AND type = ANY($2) AND recorded_at > $3
		 ORDER BY recorded_at DESC`, userID, types, since)
	if err != nil {
		return nil, err
	}
	return collectMetrics(rows)
}

func collectMetrics(rows pgx.Rows) ([]Metric, error) {
	defer rows.Close()
	items := make([]Metric, 0)
	for rows.Next() {
		metric, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, metric)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetric(row rowScanner) (Metric, error) {
	var (
		metric     Metric
		source     pgtype.Text
		recordedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&metric.ID,
		&metric.UserID,
		&metric.Type,
		&metric.Value,
		&source,
		&recordedAt,
	); err != nil {
		return Metric{}, err
	}
	metric.Source = db.TextToString(source)
	metric.RecordedAt = db.TimeFromPg(recordedAt)
	return metric, nil
}
