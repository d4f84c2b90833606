package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
)

// UserStore is an in-memory services.UserStore.
type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[uuid.UUID]models.User{}}
}

func (s *UserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range s.users {
		if u.Email == user.Email {
			return services.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, services.ErrNotFound
}

func (s *UserStore) FindUserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return models.User{}, services.ErrNotFound
}

// SubscriberStore is an in-memory services.SubscriberStore.
type SubscriberStore struct {
	mu   sync.Mutex
	subs map[string]models.Subscriber
}

func NewSubscriberStore() *SubscriberStore {
	return &SubscriberStore{subs: map[string]models.Subscriber{}}
}

func (s *SubscriberStore) Subscribe(_ context.Context, sub *models.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	if _, ok := s.subs[sub.Email]; ok {
		return nil
	}
	s.subs[sub.Email] = *sub
	return nil
}

// Subscribers returns a snapshot keyed by email.
func (s *SubscriberStore) Subscribers() map[string]models.Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.Subscriber, len(s.subs))
	for k, v := range s.subs {
		out[k] = v
	}
	return out
}
