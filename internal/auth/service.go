package auth

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"swiftpos/internal/ids"
	"swiftpos/internal/models"
	"swiftpos/internal/store"
)

// ErrInvalidCredentials is returned on a failed login or secret check.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Service owns the user roster and the single process-wide session. At most
// one user is logged in at a time; the session survives restarts through the
// record store.
type Service struct {
	mu      sync.Mutex
	store   *store.Store
	ids     *ids.Generator
	users   []models.User
	session *models.User
}

// NewService loads the user roster and any persisted session.
func NewService(st *store.Store) (*Service, error) {
	s := &Service{store: st, ids: ids.NewGenerator()}
	var err error
	if s.users, err = st.GetUsers(); err != nil {
		return nil, err
	}
	if s.session, err = st.GetSession(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the roster and session from the record store, discarding
// the cached copies. Called after a restore overwrites the users collection,
// the way a page reload re-read it in the browser.
func (s *Service) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.store.GetUsers()
	if err != nil {
		return err
	}
	session, err := s.store.GetSession()
	if err != nil {
		return err
	}
	s.users = users
	s.session = session
	return nil
}

// Login verifies the secret against the stored bcrypt hash and, on success,
// makes the user the current session.
func (s *Service) Login(username, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			break
		}
		session := u
		s.session = &session
		if err := s.store.SaveSession(s.session); err != nil {
			return models.User{}, err
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  u.ID,
			"username": u.Username,
			"role":     u.Role,
		}).Info("User logged in")
		return u, nil
	}
	return models.User{}, ErrInvalidCredentials
}

// Logout clears the current session.
func (s *Service) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return s.store.SaveSession(nil)
}

// Current returns the logged-in user, or nil.
func (s *Service) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// VerifySecret is the policy gate for edits to settled transactions and
// expenses: it checks the candidate against the session user's stored hash.
// With no session it always fails.
func (s *Service) VerifySecret(candidate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.session.PasswordHash), []byte(candidate)) == nil
}

// Users returns a copy of the roster.
func (s *Service) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// UserInput carries the fields of a new user account.
type UserInput struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
	Role     string `json:"role" binding:"required,oneof=admin manager staff"`
}

// UserPatch holds a partial update; nil fields are left unchanged. A new
// password is re-hashed before storage.
type UserPatch struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// AddUser hashes the secret and appends the account.
func (s *Service) AddUser(in UserInput) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		ID:           s.ids.Next(),
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	s.users = append(s.users, user)
	if err := s.store.SaveUsers(s.users); err != nil {
		return models.User{}, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	}).Info("User created")
	return user, nil
}

// UpdateUser merges the patch into the matching account; a missing id is a
// silent no-op. Updating the logged-in user refreshes the persisted session
// as well.
func (s *Service) UpdateUser(id string, patch UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Username != nil {
			u.Username = *patch.Username
		}
		if patch.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u.PasswordHash = string(hash)
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		if err := s.store.SaveUsers(s.users); err != nil {
			return err
		}
		if s.session != nil && s.session.ID == id {
			session := *u
			s.session = &session
			if err := s.store.SaveSession(s.session); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// DeleteUser removes an account by id; a missing id is a silent no-op.
func (s *Service) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		s.users = append(s.users[:i], s.users[i+1:]...)
		if err := s.store.SaveUsers(s.users); err != nil {
			return err
		}
		logrus.WithField("user_id", id).Info("User deleted")
		return nil
	}
	return nil
}
