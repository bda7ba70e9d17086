package users

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/braincarehq/backend/internal/db"
)

const userColumns = "id, subject, email, name, phone_number, gender, date_of_birth, age, created_at, updated_at"

// PostgresRepository is the pgx-backed user repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a user repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (subject, email, name, phone_number, gender, date_of_birth, age)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userColumns,
		user.Subject,
		user.Email,
		db.TextFromString(user.Name),
		db.TextFromString(user.PhoneNumber),
		db.TextFromString(user.Gender),
		dateFromString(user.DateOfBirth),
		user.Age,
	)
	return scanUser(row)
}

// BySubject returns the user with the given external identifier.
func (r *PostgresRepository) BySubject(ctx context.Context, subject string) (User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE subject = $1`, subject)
	return scanUser(row)
}

// Update rewrites the mutable profile fields of a user record.
func (r *PostgresRepository) Update(ctx context.Context, user User) (User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET name = $2, phone_number = $3, gender = $4, date_of_birth = $5, age = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		user.ID,
		db.TextFromString(user.Name),
		db.TextFromString(user.PhoneNumber),
		db.TextFromString(user.Gender),
		dateFromString(user.DateOfBirth),
		user.Age,
	)
	return scanUser(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user        User
		name        pgtype.Text
		phone       pgtype.Text
		gender      pgtype.Text
		dateOfBirth pgtype.Date
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(
		&user.ID,
		&user.Subject,
		&user.Email,
		&name,
		&phone,
		&gender,
		&dateOfBirth,
		&user.Age,
		&createdAt,
		&updatedAt,
	); err != nil {
		return User{}, err
	}
	user.Name = db.TextToString(name)
	user.PhoneNumber = db.TextToString(phone)
	user.Gender = db.TextToString(gender)
	if dateOfBirth.Valid {
		user.DateOfBirth = dateOfBirth.Time.Format(time.DateOnly)
	}
	user.CreatedAt = db.TimeFromPg(createdAt)
	user.UpdatedAt = db.TimeFromPg(updatedAt)
	return user, nil
}

func dateFromString(value string) pgtype.Date {
	if value == "" {
		return pgtype.Date{}
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: parsed, Valid: true}
}
