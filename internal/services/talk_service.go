package services

import (
	"context"
	"strings"

	"stayBack/internal/models"
)

// TalkStore is the persistence surface for talks, implemented by the SQL
// repository and stubbed in tests.
type TalkStore interface {
	GetTalkByID(ctx context.Context, id int) (models.Talk, error)
	GetOrCreateTalk(ctx context.Context, propertyID, guestID int) (models.Talk, error)
	GetTalksByUser(ctx context.Context, userID int) ([]models.Talk, error)
	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
	GetMessagesByTalkID(ctx context.Context, talkID int) ([]models.Message, error)
}

// MessageSink pushes a freshly stored message to a connected user, if any.
// The websocket manager in cmd implements it.
type MessageSink interface {
	Deliver(userID int, msg models.Message)
}

type TalkService struct {
	TalkRepo TalkStore
	Sink     MessageSink
}

// CreateMessage appends a message to a talk. When no talk id is given, the
// guest's talk for the property is created on first contact. Only the two
// participants may post.
func (s *TalkService) CreateMessage(ctx context.Context, senderID int, req models.CreateMessageRequest) (models.Message, error) {
	if strings.TrimSpace(req.Body) == "" {
		return models.Message{}, models.ErrEmptyComment
	}

	var talk models.Talk
	var err error
	if req.TalkID != 0 {
		talk, err = s.TalkRepo.GetTalkByID(ctx, req.TalkID)
	} else {
		talk, err = s.TalkRepo.GetOrCreateTalk(ctx, req.PropertyID, senderID)
	}
	if err != nil {
		return models.Message{}, err
	}

	if senderID != talk.UserID && senderID != talk.OwnerID {
		return models.Message{}, models.ErrNotAuthorized
	}

	msg, err := s.TalkRepo.CreateMessage(ctx, models.Message{
		TalkID:   talk.ID,
		SenderID: senderID,
		Body:     req.Body,
	})
	if err != nil {
		return models.Message{}, err
	}

	if s.Sink != nil {
		recipient := talk.UserID
		if senderID == talk.UserID {
			recipient = talk.OwnerID
		}
		s.Sink.Deliver(recipient, msg)
	}
	return msg, nil
}

// GetMessages returns a talk's messages for one of its participants.
func (s *TalkService) GetMessages(ctx context.Context, talkID, actorUserID int) ([]models.Message, error) {
	talk, err := s.TalkRepo.GetTalkByID(ctx, talkID)
	if err != nil {
		return nil, err
	}
	if actorUserID != talk.UserID && actorUserID != talk.OwnerID {
		return nil, models.ErrNotAuthorized
	}
	return s.TalkRepo.GetMessagesByTalkID(ctx, talkID)
}

func (s *TalkService) GetTalks(ctx context.Context, userID int) ([]models.Talk, error) {
	return s.TalkRepo.GetTalksByUser(ctx, userID)
}
