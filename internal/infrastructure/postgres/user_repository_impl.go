package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, firstname, lastname, email, password_hash,
	avatar_url, avatar_object, avatar_image_name,
	reset_password_token, reset_password_expires, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Firstname, &u.Lastname, &u.Email, &u.PasswordHash,
		&u.AvatarURL, &u.AvatarObject, &u.AvatarImageName,
		&u.ResetPasswordToken, &u.ResetPasswordExpires, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, firstname, lastname, email, password_hash, avatar_url, avatar_object, avatar_image_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Firstname, u.Lastname, u.Email, u.PasswordHash, u.AvatarURL, u.AvatarObject, u.AvatarImageName)

	return mapError(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetManyByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	out := make(map[string]*entity.User, len(ids))
	ids = validIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, mapError(rows.Err())
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET username = $1, firstname = $2, lastname = $3, email = $4,
		    avatar_url = $5, avatar_object = $6, avatar_image_name = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, u.Username, u.Firstname, u.Lastname, u.Email, u.AvatarURL, u.AvatarObject, u.AvatarImageName, u.ID)

	return mapError(row.Scan(&u.UpdatedAt))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = now()
		WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id string, digest *string, expires *time.Time) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET reset_password_token = $1, reset_password_expires = $2 WHERE id = $3
	`, digest, expires, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetByResetToken(ctx context.Context, digest string, now time.Time) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE reset_password_token = $1 AND reset_password_expires > $2
	`, digest, now))
}

var _ repository.UserRepository = (*UserRepository)(nil)
