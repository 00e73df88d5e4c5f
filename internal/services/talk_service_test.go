package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayBack/internal/models"
)

type stubTalkStore struct {
	talks    map[int]models.Talk
	messages map[int][]models.Message
	nextID   int
}

func newStubTalkStore() *stubTalkStore {
	return &stubTalkStore{
		talks:    make(map[int]models.Talk),
		messages: make(map[int][]models.Message),
		nextID:   1,
	}
}

func (s *stubTalkStore) addTalk(talk models.Talk) models.Talk {
	talk.ID = s.nextID
	s.nextID++
	s.talks[talk.ID] = talk
	return talk
}

func (s *stubTalkStore) GetTalkByID(ctx context.Context, id int) (models.Talk, error) {
	talk, ok := s.talks[id]
	if !ok {
		return models.Talk{}, models.ErrTalkNotFound
	}
	return talk, nil
}

func (s *stubTalkStore) GetOrCreateTalk(ctx context.Context, propertyID, guestID int) (models.Talk, error) {
	for _, talk := range s.talks {
		if talk.PropertyID == propertyID && talk.UserID == guestID {
			return talk, nil
		}
	}
	return s.addTalk(models.Talk{PropertyID: propertyID, UserID: guestID, OwnerID: 2, CreatedAt: time.Now()}), nil
}

func (s *stubTalkStore) GetTalksByUser(ctx context.Context, userID int) ([]models.Talk, error) {
	var out []models.Talk
	for _, talk := range s.talks {
		if talk.UserID == userID || talk.OwnerID == userID {
			out = append(out, talk)
		}
	}
	return out, nil
}

func (s *stubTalkStore) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	msg.ID = s.nextID
	s.nextID++
	msg.CreatedAt = time.Now()
	s.messages[msg.TalkID] = append(s.messages[msg.TalkID], msg)
	return msg, nil
}

func (s *stubTalkStore) GetMessagesByTalkID(ctx context.Context, talkID int) ([]models.Message, error) {
	return s.messages[talkID], nil
}

type stubSink struct {
	delivered []int
}

func (s *stubSink) Deliver(userID int, msg models.Message) {
	s.delivered = append(s.delivered, userID)
}

func TestCreateMessageParticipantsOnly(t *testing.T) {
	store := newStubTalkStore()
	sink := &stubSink{}
	svc := &TalkService{TalkRepo: store, Sink: sink}
	talk := store.addTalk(models.Talk{PropertyID: 1, UserID: 10, OwnerID: 2})

	_, err := svc.CreateMessage(context.Background(), 99, models.CreateMessageRequest{TalkID: talk.ID, Body: "hi"})
	if !errors.Is(err, models.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if len(sink.delivered) != 0 {
		t.Fatal("no delivery expected for rejected message")
	}

	msg, err := svc.CreateMessage(context.Background(), 10, models.CreateMessageRequest{TalkID: talk.ID, Body: "hi"})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if msg.TalkID != talk.ID || msg.SenderID != 10 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if len(sink.delivered) != 1 || sink.delivered[0] != 2 {
		t.Fatalf("expected delivery to owner 2, got %v", sink.delivered)
	}

	// Owner replies, delivery goes to the guest.
	if _, err := svc.CreateMessage(context.Background(), 2, models.CreateMessageRequest{TalkID: talk.ID, Body: "hello"}); err != nil {
		t.Fatalf("owner reply: %v", err)
	}
	if len(sink.delivered) != 2 || sink.delivered[1] != 10 {
		t.Fatalf("expected delivery to guest 10, got %v", sink.delivered)
	}
}

func TestCreateMessageFirstContact(t *testing.T) {
	store := newStubTalkStore()
	svc := &TalkService{TalkRepo: store}

	msg, err := svc.CreateMessage(context.Background(), 10, models.CreateMessageRequest{PropertyID: 1, Body: "is it free in June?"})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if msg.TalkID == 0 {
		t.Fatal("expected a talk to be created on first contact")
	}

	// A second message reuses the talk.
	again, err := svc.CreateMessage(context.Background(), 10, models.CreateMessageRequest{PropertyID: 1, Body: "anyone there?"})
	if err != nil {
		t.Fatalf("second message: %v", err)
	}
	if again.TalkID != msg.TalkID {
		t.Fatalf("expected same talk, got %d and %d", msg.TalkID, again.TalkID)
	}
}

func TestCreateMessageEmptyBody(t *testing.T) {
	svc := &TalkService{TalkRepo: newStubTalkStore()}

	_, err := svc.CreateMessage(context.Background(), 10, models.CreateMessageRequest{TalkID: 1, Body: "   "})
	if !errors.Is(err, models.ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
}

func TestGetMessagesParticipantsOnly(t *testing.T) {
	store := newStubTalkStore()
	svc := &TalkService{TalkRepo: store}
	talk := store.addTalk(models.Talk{PropertyID: 1, UserID: 10, OwnerID: 2})
	store.messages[talk.ID] = []models.Message{{ID: 1, TalkID: talk.ID, SenderID: 10, Body: "hi"}}

	_, err := svc.GetMessages(context.Background(), talk.ID, 99)
	if !errors.Is(err, models.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}

	msgs, err := svc.GetMessages(context.Background(), talk.ID, 2)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
}
