package postgres

import (
	"context"
	"database/sql"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, name, password_hash, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, user.Email, user.Name, user.PasswordHash, time.Now()).Scan(&user.ID)
	if isUniqueViolation(err) {
		return domain.E(domain.KindConflict, "email is already registered")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, email, name, password_hash, created_on FROM users WHERE id = $1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedOn)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, email, name, password_hash, created_on FROM users WHERE email = $1`
	err := querier(ctx, r.db).QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedOn)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return user, nil
}
