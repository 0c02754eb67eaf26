package store

import (
	"fmt"

	"github.com/duoplan/duoplan/internal/model"
)

// UserStore holds the two fixed identities. Only names change; the pair
// itself is immutable.
type UserStore struct {
	docs *DocumentStore
}

func NewUserStore(docs *DocumentStore) *UserStore {
	return &UserStore{docs: docs}
}

func (s *UserStore) List() ([]model.User, error) {
	var users []model.User
	if err := s.docs.Get(KeyUsers, model.DefaultUsers(), &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Rename updates one user's display name. Renaming an id outside the fixed
// pair is a no-op, mirroring the immutability of the pair.
func (s *UserStore) Rename(id model.UserID, name string) ([]model.User, error) {
	var users []model.User
	err := s.docs.Update(KeyUsers, model.DefaultUsers(), &users, func() error {
		for i := range users {
			if users[i].ID == id {
				users[i].Name = name
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rename user: %w", err)
	}
	return users, nil
}
