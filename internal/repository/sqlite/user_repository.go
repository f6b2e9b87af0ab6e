package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// UpsertByPhone creates the account for a phone number on first sign-in and
// returns the existing account on every sign-in after that. The provided id
// is only used when the row is created.
func (r *userRepository) UpsertByPhone(ctx context.Context, id, phone string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user by phone: phone=%s", phone)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, phone)
VALUES (?, ?)
ON CONFLICT(phone) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
`, id, phone)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	return r.GetByPhone(ctx, phone)
}

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%s", id)
	return r.getBy(ctx, log, `id = ?`, id)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: phone=%s", phone)
	return r.getBy(ctx, log, `phone = ?`, phone)
}

func (r *userRepository) getBy(ctx context.Context, log *logger.Logger, where string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, phone, pin, created_at, updated_at
FROM users
WHERE `+where, arg).Scan(&u.ID, &u.Phone, &u.PIN, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SetPIN(ctx context.Context, id, pin string) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("setting pin: id=%s", id)

	res, err := r.db.ExecContext(ctx, `
UPDATE users SET pin = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, pin, id)
	if err != nil {
		log.Error("failed to set pin: %v", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("deleting user: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete user: %v", err)
	}
	return err
}
