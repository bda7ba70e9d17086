package journal

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/braincarehq/backend/internal/db"
)

const entryColumns = "id, user_id, content, mood_rating, mood_tags, stress_rating, emotions, recorded_at"

// PostgresRepository is the pgx-backed journal repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a journal repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert records a new entry.
func (r *PostgresRepository) Insert(ctx context.Context, entry Entry) (Entry, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO journal_entries (user_id, content, mood_rating, mood_tags, stress_rating, emotions)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+entryColumns,
		entry.UserID,
		db.TextFromString(entry.Content),
		intOrNull(entry.MoodRating),
		db.TextFromString(entry.MoodTags),
		intOrNull(entry.StressRating),
		db.TextFromString(entry.Emotions),
	)
	return scanEntry(row)
}

// ByUser returns all entries for a user, newest first.
func (r *PostgresRepository) ByUser(ctx context.Context, userID int64) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM journal_entries
		 WHERE user_id = $1 ORDER BY recorded_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, entry)
	}
	return items, rows.Err()
}

// ByID returns a single entry by id.
func (r *PostgresRepository) ByID(ctx context.Context, id int64) (Entry, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE id = $1`, id)
	return scanEntry(row)
}

// Delete removes an entry by id.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry        Entry
		content      pgtype.Text
		moodRating   pgtype.Int4
		moodTags     pgtype.Text
		stressRating pgtype.Int4
		emotions     pgtype.Text
		recordedAt   pgtype.Timestamptz
	)
	if err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&content,
		&moodRating,
		&moodTags,
		&stressRating,
		&emotions,
		&recordedAt,
	); err != nil {
		return Entry{}, err
	}
	entry.Content = db.TextToString(content)
	entry.MoodTags = db.TextToString(moodTags)
	entry.Emotions = db.TextToString(emotions)
	if moodRating.Valid {
		v := int(moodRating.Int32)
		entry.MoodRating = &v
	}
	if stressRating.Valid {
		v := int(stressRating.Int32)
		entry.StressRating = &v
	}
	entry.RecordedAt = db.TimeFromPg(recordedAt)
	return entry, nil
}

func intOrNull(value *int) pgtype.Int4 {
	if value == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*value), Valid: true}
}
