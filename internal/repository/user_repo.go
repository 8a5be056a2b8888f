package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/echoplay/server/internal/domain"
)

type userRepository struct {
	db DB
}

// NewUserRepository creates a user repository backed by PostgreSQL.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, display_name, COALESCE(password_hash, ''), is_admin, image_url, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.ImageURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts the user together with their favorites playlist. Both rows
// and the owner edge commit atomically; a signup never leaves a user
// without a favorites playlist.
func (r *userRepository) Create(ctx context.Context, user *domain.User, favorites *domain.Playlist) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, is_admin, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
	`,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.IsAdmin,
		user.ImageURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO playlists (id, name, description, is_private, is_album, kind, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		favorites.ID,
		favorites.Name,
		favorites.Description,
		favorites.IsPrivate,
		favorites.IsAlbum,
		favorites.Kind,
		favorites.ImageURL,
		favorites.CreatedAt,
		favorites.UpdatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO playlist_owners (playlist_id, user_id) VALUES ($1, $2)`,
		favorites.ID, user.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET display_name = $2, image_url = $3, password_hash = $4, updated_at = $5
		WHERE id = $1
	`, user.ID, user.DisplayName, user.ImageURL, user.PasswordHash, user.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_follows (follower_id, followee_id) VALUES ($1, $2)`,
		followerID, followeeID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyFollowingUser
		}
		return err
	}
	return nil
}

func (r *userRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFollowingUser
	}
	return nil
}

func (r *userRepository) ListFollowing(ctx context.Context, userID string) ([]*domain.User, error) {
	return r.listRelated(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN user_follows f ON f.followee_id = u.id
		WHERE f.follower_id = $1
		ORDER BY u.display_name ASC
	`, userID)
}

func (r *userRepository) ListFollowers(ctx context.Context, userID string) ([]*domain.User, error) {
	return r.listRelated(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN user_follows f ON f.follower_id = u.id
		WHERE f.followee_id = $1
		ORDER BY u.display_name ASC
	`, userID)
}

func (r *userRepository) listRelated(ctx context.Context, query, userID string) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.DisplayName,
			&u.PasswordHash,
			&u.IsAdmin,
			&u.ImageURL,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
