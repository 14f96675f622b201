// Package auth is the storefront's credential store: user registration,
// login and the current session.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/xenking/oolio-storefront/internal/storage"
)

const minPasswordLen = 4

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidEmail       = errors.New("please enter a valid email")
	ErrPasswordTooShort   = errors.New("password must be at least 4 characters")
	ErrUsernameTaken      = errors.New("that username already exists")
	ErrMissingCredentials = errors.New("please enter username and password")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User is a registered account. Password holds a bcrypt hash.
type User struct {
	FullName string `json:"fullname"`
	DOB      string `json:"dob"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the currently signed-in identity.
type Session struct {
	Username string `json:"username"`
	FullName string `json:"fullname"`
}

// Registration is the sign-up form.
type Registration struct {
	FullName string `json:"fullname"`
	DOB      string `json:"dob"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Sessions reports the active session. The order finalizer depends on this
// alone.
type Sessions interface {
	Current(ctx context.Context) (Session, bool)
}

var _ Sessions = (*Service)(nil)

// Service registers users and manages the session record.
type Service struct {
	store storage.Store
	cost  int
}

// NewService creates a Service backed by store.
func NewService(store storage.Store) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost}
}

// Register validates r and appends a new user. Usernames are unique.
func (s *Service) Register(ctx context.Context, r Registration) (User, error) {
	u := User{
		FullName: strings.TrimSpace(r.FullName),
		DOB:      strings.TrimSpace(r.DOB),
		Email:    strings.TrimSpace(r.Email),
		Username: strings.TrimSpace(r.Username),
	}
	password := strings.TrimSpace(r.Password)

	if u.FullName == "" || u.DOB == "" || u.Email == "" || u.Username == "" || password == "" {
		return User{}, ErrMissingFields
	}
	if !emailRe.MatchString(u.Email) {
		return User{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return User{}, ErrPasswordTooShort
	}

	users := s.users(ctx)
	for _, existing := range users {
		if existing.Username == u.Username {
			return User{}, ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(password), s.cost)
	if err != nil {
		return User{}, errors.Wrap(err, "hash password")
	}
	u.Password = string(hash)

	if err := storage.Save(ctx, s.store, storage.KeyUsers, append(users, u)); err != nil {
		return User{}, errors.Wrap(err, "save users")
	}
	return u, nil
}

// Login checks the credentials and, on success, records the session.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	var match *User
	users := s.users(ctx)
	for i := range users {
		if users[i].Username == username {
			match = &users[i]
			break
		}
	}
	if match == nil {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(match.Password), prehash(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	sess := Session{Username: match.Username, FullName: match.FullName}
	if err := storage.Save(ctx, s.store, storage.KeySession, sess); err != nil {
		return Session{}, errors.Wrap(err, "save session")
	}
	return sess, nil
}

// Logout destroys the session. It is not an error to log out twice.
func (s *Service) Logout(ctx context.Context) error {
	if err := storage.Delete(ctx, s.store, storage.KeySession); err != nil {
		return errors.Wrap(err, "remove session")
	}
	return nil
}

// Current returns the active session, if any.
func (s *Service) Current(ctx context.Context) (Session, bool) {
	sess := storage.Load(ctx, s.store, storage.KeySession, Session{})
	if sess.Username == "" {
		return Session{}, false
	}
	return sess, true
}

// prehash digests the password so bcrypt sees a fixed 44 bytes, below its
// 72-byte input limit, whatever the password length.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func (s *Service) users(ctx context.Context) []User {
	return storage.Load(ctx, s.store, storage.KeyUsers, []User{})
}
