package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/duoplan/duoplan/internal/model"
	"github.com/duoplan/duoplan/internal/store"
)

// SessionTTL is how long an issued token stays valid.
const SessionTTL = 7 * 24 * time.Hour

// MinPasswordLength rejects trivially short passwords.
const MinPasswordLength = 4

var (
	// ErrBadPassword means the supplied password matched neither user.
	ErrBadPassword = errors.New("wrong password")
	// ErrPasswordTooShort rejects passwords under MinPasswordLength.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrPasswordTaken means the other user already uses this password;
	// passwords double as identity at login, so they must differ.
	ErrPasswordTaken = errors.New("password already in use")
	// ErrUnauthorized means neither a valid session nor the current
	// password authorized a credential change.
	ErrUnauthorized = errors.New("unauthorized")
)

type session struct {
	UserID    model.UserID `json:"userId"`
	ExpiresAt int64        `json:"expiresAt"`
}

type userAuth struct {
	PasswordHash string `json:"passwordHash"`
}

// authDoc is the persisted auth document: optional per-user password hashes
// plus the live session table.
type authDoc struct {
	User1    *userAuth          `json:"user1"`
	User2    *userAuth          `json:"user2"`
	Sessions map[string]session `json:"sessions"`
}

func defaultAuthDoc() authDoc {
	return authDoc{Sessions: map[string]session{}}
}

func (d *authDoc) forUser(id model.UserID) **userAuth {
	if id == model.User2 {
		return &d.User2
	}
	return &d.User1
}

// Service implements the two-user password and opaque-session model on top
// of the document store. Login matches the password against both users;
// whoever's hash matches is who you are.
type Service struct {
	docs *store.DocumentStore
	now  func() time.Time
}

func NewService(docs *store.DocumentStore) *Service {
	return &Service{docs: docs, now: time.Now}
}

func (s *Service) load() (authDoc, error) {
	var doc authDoc
	if err := s.docs.Get(store.KeyAuth, defaultAuthDoc(), &doc); err != nil {
		return authDoc{}, fmt.Errorf("load auth: %w", err)
	}
	if doc.Sessions == nil {
		doc.Sessions = map[string]session{}
	}
	return doc, nil
}

func (s *Service) update(fn func(*authDoc) error) error {
	var doc authDoc
	return s.docs.Update(store.KeyAuth, defaultAuthDoc(), &doc, func() error {
		if doc.Sessions == nil {
			doc.Sessions = map[string]session{}
		}
		return fn(&doc)
	})
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Enabled reports whether any password is set. With no password the app is
// open and login resolves to user1.
func (s *Service) Enabled() (bool, error) {
	doc, err := s.load()
	if err != nil {
		return false, err
	}
	return doc.User1 != nil || doc.User2 != nil, nil
}

// HasPassword reports whether the given user has a password set.
func (s *Service) HasPassword(id model.UserID) (bool, error) {
	doc, err := s.load()
	if err != nil {
		return false, err
	}
	return *doc.forUser(id) != nil, nil
}

// Login matches password against both users and issues a session token for
// whoever matched. When no password is set at all, it succeeds as user1.
// Expired sessions are pruned while we hold the document anyway.
func (s *Service) Login(password string) (model.UserID, string, error) {
	var userID model.UserID
	var token string

	err := s.update(func(doc *authDoc) error {
		if doc.User1 == nil && doc.User2 == nil {
			userID = model.User1
		} else if doc.User1 != nil && bcrypt.CompareHashAndPassword([]byte(doc.User1.PasswordHash), []byte(password)) == nil {
			userID = model.User1
		} else if doc.User2 != nil && bcrypt.CompareHashAndPassword([]byte(doc.User2.PasswordHash), []byte(password)) == nil {
			userID = model.User2
		} else {
			return ErrBadPassword
		}

		t, err := newToken()
		if err != nil {
			return err
		}
		token = t

		now := s.now()
		for k, sess := range doc.Sessions {
			if sess.ExpiresAt < now.UnixMilli() {
				delete(doc.Sessions, k)
			}
		}
		doc.Sessions[token] = session{
			UserID:    userID,
			ExpiresAt: now.Add(SessionTTL).UnixMilli(),
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return userID, token, nil
}

// Verify resolves a token to a user id. Expired or unknown tokens resolve
// to ok=false; an expired token is removed as a side effect.
func (s *Service) Verify(token string) (model.UserID, bool, error) {
	if token == "" {
		return "", false, nil
	}
	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	sess, ok := doc.Sessions[token]
	if !ok {
		return "", false, nil
	}
	if sess.ExpiresAt < s.now().UnixMilli() {
		err := s.update(func(doc *authDoc) error {
			delete(doc.Sessions, token)
			return nil
		})
		return "", false, err
	}
	return sess.UserID, true, nil
}

// Logout deletes the session; unknown tokens are a no-op.
func (s *Service) Logout(token string) error {
	return s.update(func(doc *authDoc) error {
		delete(doc.Sessions, token)
		return nil
	})
}

// SetPassword sets or replaces a user's password. When the user already has
// one, the caller must prove identity with either a valid session for that
// user or the current password.
func (s *Service) SetPassword(id model.UserID, newPassword, currentPassword, token string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.update(func(doc *authDoc) error {
		other := *doc.forUser(id.Other())
		if other != nil && bcrypt.CompareHashAndPassword([]byte(other.PasswordHash), []byte(newPassword)) == nil {
			return ErrPasswordTaken
		}

		existing := *doc.forUser(id)
		if existing != nil && !s.authorized(doc, id, existing, currentPassword, token) {
			return ErrUnauthorized
		}

		*doc.forUser(id) = &userAuth{PasswordHash: string(hash)}
		return nil
	})
}

// RemovePassword clears a user's password under the same authorization
// rule as SetPassword.
func (s *Service) RemovePassword(id model.UserID, currentPassword, token string) error {
	return s.update(func(doc *authDoc) error {
		existing := *doc.forUser(id)
		if existing != nil && !s.authorized(doc, id, existing, currentPassword, token) {
			return ErrUnauthorized
		}
		*doc.forUser(id) = nil
		return nil
	})
}

func (s *Service) authorized(doc *authDoc, id model.UserID, existing *userAuth, currentPassword, token string) bool {
	if token != "" {
		if sess, ok := doc.Sessions[token]; ok &&
			sess.UserID == id && sess.ExpiresAt >= s.now().UnixMilli() {
			return true
		}
	}
	if currentPassword != "" &&
		bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(currentPassword)) == nil {
		return true
	}
	return false
}
