package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/models"
)

type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

func (u *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Insert("users").
		Columns("login", "password_hash", "name").
		Values(user.Login, user.PasswordHash, user.Name).
		Suffix("RETURNING user_id, login, name, created_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to build create user query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.User
	err = u.DB.QueryRowContext(ctx, query, args...).
		Scan(&created.UserID, &created.Login, &created.Name, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: %q", ErrLoginAlreadyExists, user.Login)
		}
		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("login", user.Login).
			Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (u *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("user_id", "login", "password_hash", "name", "created_at").
		From("users").
		Where(sq.Eq{"login": login}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "userRepository.FindUserByLogin").Msg("failed to build find user query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = u.DB.QueryRowContext(ctx, query, args...).
		Scan(&user.UserID, &user.Login, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("%w: %q", ErrNoUserWasFound, login)
	}
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.FindUserByLogin").
			Str("login", login).
			Msg("failed to query user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}
