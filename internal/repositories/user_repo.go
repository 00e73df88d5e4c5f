package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stayBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (name, surname, phone, email, password, role, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	user.CreatedAt = time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Surname, user.Phone, user.Email, user.Password, user.Role, user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	query := `
        SELECT id, name, surname, phone, email, password, avatar_path, role, device_token, created_at, updated_at
        FROM users
        WHERE id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Password,
		&user.AvatarPath, &user.Role, &user.DeviceToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	query := `
        SELECT id, name, surname, phone, email, password, avatar_path, role, device_token, created_at, updated_at
        FROM users
        WHERE email = ?
    `
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Surname, &user.Phone, &user.Email, &user.Password,
		&user.AvatarPath, &user.Role, &user.DeviceToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        UPDATE users SET name = ?, surname = ?, phone = ?, avatar_path = ?, updated_at = NOW()
        WHERE id = ?
    `
	result, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Surname, user.Phone, user.AvatarPath, user.ID,
	)
	if err != nil {
		return models.User{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if affected == 0 {
		return models.User{}, models.ErrUserNotFound
	}
	return r.GetUserByID(ctx, user.ID)
}

func (r *UserRepository) UpdateDeviceToken(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET device_token = ?, updated_at = NOW() WHERE id = ?`, token, userID)
	return err
}

func (r *UserRepository) CreateSession(ctx context.Context, session models.Session) error {
	query := `
        INSERT INTO sessions (user_id, role, refresh_token, expires_at)
        VALUES (?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
    `
	_, err := r.DB.ExecContext(ctx, query,
		session.UserID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	query := `SELECT user_id, role, refresh_token, expires_at FROM sessions WHERE refresh_token = ?`
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.UserID, &session.Role, &session.RefreshToken, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}
