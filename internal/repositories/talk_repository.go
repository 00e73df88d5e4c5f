package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stayBack/internal/models"
)

type TalkRepository struct {
	DB *sql.DB
}

func (r *TalkRepository) GetTalkByID(ctx context.Context, id int) (models.Talk, error) {
	var talk models.Talk
	query := `
        SELECT t.id, t.property_id, t.user_id, p.user_id, p.name, t.created_at
        FROM talks t
        JOIN properties p ON p.id = t.property_id
        WHERE t.id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&talk.ID, &talk.PropertyID, &talk.UserID, &talk.OwnerID, &talk.PropertyName, &talk.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Talk{}, models.ErrTalkNotFound
	}
	if err != nil {
		return models.Talk{}, err
	}
	return talk, nil
}

// GetOrCreateTalk finds the guest's talk for a property, creating it on the
// first message.
func (r *TalkRepository) GetOrCreateTalk(ctx context.Context, propertyID, guestID int) (models.Talk, error) {
	var talk models.Talk
	query := `
        SELECT t.id, t.property_id, t.user_id, p.user_id, p.name, t.created_at
        FROM talks t
        JOIN properties p ON p.id = t.property_id
        WHERE t.property_id = ? AND t.user_id = ?
    `
	err := r.DB.QueryRowContext(ctx, query, propertyID, guestID).Scan(
		&talk.ID, &talk.PropertyID, &talk.UserID, &talk.OwnerID, &talk.PropertyName, &talk.CreatedAt)
	if err == nil {
		return talk, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Talk{}, err
	}

	var ownerID int
	var propertyName string
	err = r.DB.QueryRowContext(ctx,
		`SELECT user_id, name FROM properties WHERE id = ?`, propertyID,
	).Scan(&ownerID, &propertyName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Talk{}, models.ErrPropertyNotFound
	}
	if err != nil {
		return models.Talk{}, err
	}

	now := time.Now()
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO talks (property_id, user_id, created_at) VALUES (?, ?, ?)`,
		propertyID, guestID, now,
	)
	if err != nil {
		return models.Talk{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Talk{}, err
	}

	return models.Talk{
		ID:           int(id),
		PropertyID:   propertyID,
		UserID:       guestID,
		OwnerID:      ownerID,
		PropertyName: propertyName,
		CreatedAt:    now,
	}, nil
}

// GetTalksByUser lists the talks a user participates in, most recently
// messaged first.
func (r *TalkRepository) GetTalksByUser(ctx context.Context, userID int) ([]models.Talk, error) {
	const query = `
WITH last_messages AS (
    SELECT m.talk_id, m.body, m.created_at
    FROM messages m
    JOIN (
        SELECT talk_id, MAX(created_at) AS max_created
        FROM messages
        GROUP BY talk_id
    ) t ON t.talk_id = m.talk_id AND t.max_created = m.created_at
)
SELECT t.id, t.property_id, t.user_id, p.user_id, p.name,
       lm.body, lm.created_at, t.created_at
FROM talks t
JOIN properties p ON p.id = t.property_id
LEFT JOIN last_messages lm ON lm.talk_id = t.id
WHERE t.user_id = ? OR p.user_id = ?
ORDER BY COALESCE(lm.created_at, t.created_at) DESC
`
	rows, err := r.DB.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	talks := []models.Talk{}
	for rows.Next() {
		var talk models.Talk
		err := rows.Scan(
			&talk.ID, &talk.PropertyID, &talk.UserID, &talk.OwnerID, &talk.PropertyName,
			&talk.LastMessage, &talk.LastMessageAt, &talk.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		talks = append(talks, talk)
	}
	return talks, rows.Err()
}

func (r *TalkRepository) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	msg.CreatedAt = time.Now()
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO messages (talk_id, sender_id, body, created_at) VALUES (?, ?, ?, ?)`,
		msg.TalkID, msg.SenderID, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return models.Message{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Message{}, err
	}
	msg.ID = int(id)
	return msg, nil
}

func (r *TalkRepository) GetMessagesByTalkID(ctx context.Context, talkID int) ([]models.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, talk_id, sender_id, body, created_at FROM messages WHERE talk_id = ? ORDER BY created_at ASC`,
		talkID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.TalkID, &msg.SenderID, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
