package stores

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lofireads/internal/domain"
	"lofireads/internal/storage"
)

// storedUser pairs the public profile with its credential hash; the hash
// never leaves this package.
type storedUser struct {
	Profile      domain.Profile `json:"user"`
	PasswordHash string         `json:"passwordHash"`
}

// UserStore persists the user directory and the sid → userID session map.
// There is no ambient "current user": callers always pass a session id.
type UserStore struct {
	mu sync.Mutex
	kv *storage.Store
}

func NewUserStore(kv *storage.Store) *UserStore {
	return &UserStore{kv: kv}
}

func (s *UserStore) loadUsers() []storedUser {
	var users []storedUser
	s.kv.Get(storage.KeyUsers, &users)
	return users
}

func (s *UserStore) loadSessions() map[string]string {
	sessions := map[string]string{}
	s.kv.Get(storage.KeySessions, &sessions)
	return sessions
}

// Register creates a directory entry. A duplicate email (case-insensitive)
// is a reported condition, not an exception.
func (s *UserStore) Register(email, password, name string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.loadUsers()
	for _, u := range users {
		if strings.EqualFold(u.Profile.Email, email) {
			return domain.User{}, ErrEmailTaken
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return domain.User{}, err
	}
	now := time.Now().UTC()
	u := domain.User{
		ID:        fmt.Sprintf("user_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9]),
		Email:     email,
		Name:      name,
		Role:      domain.RoleUser,
		CreatedAt: now,
	}
	users = append(users, storedUser{
		Profile: domain.Profile{
			User:        u,
			Addresses:   []domain.Address{},
			Preferences: domain.Preferences{FavoriteGenres: []string{}},
		},
		PasswordHash: string(hash),
	})
	s.kv.Set(storage.KeyUsers, users)
	return u, nil
}

// Authenticate checks credentials and returns the directory record.
func (s *UserStore) Authenticate(email, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.loadUsers() {
		if !strings.EqualFold(u.Profile.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return domain.User{}, ErrBadCreds
		}
		return u.Profile.User, nil
	}
	return domain.User{}, ErrBadCreds
}

// ByID returns the full profile for a user id.
func (s *UserStore) ByID(userID string) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.loadUsers() {
		if u.Profile.ID == userID {
			return u.Profile, nil
		}
	}
	return domain.Profile{}, ErrNotFound
}

// ProfileUpdate holds editable profile fields; nil means leave unchanged.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Addresses   *[]domain.Address
	Preferences *domain.Preferences
}

// UpdateProfile merges upd into the stored profile.
func (s *UserStore) UpdateProfile(userID string, upd ProfileUpdate) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.loadUsers()
	for i := range users {
		if users[i].Profile.ID != userID {
			continue
		}
		if upd.Name != nil {
			users[i].Profile.Name = *upd.Name
		}
		if upd.Phone != nil {
			users[i].Profile.Phone = *upd.Phone
		}
		if upd.Addresses != nil {
			users[i].Profile.Addresses = *upd.Addresses
		}
		if upd.Preferences != nil {
			users[i].Profile.Preferences = *upd.Preferences
		}
		s.kv.Set(storage.KeyUsers, users)
		return users[i].Profile, nil
	}
	return domain.Profile{}, ErrNotFound
}

// UpdatePassword swaps the credential hash after verifying the current one.
func (s *UserStore) UpdatePassword(userID, current, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.loadUsers()
	for i := range users {
		if users[i].Profile.ID != userID {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(current)) != nil {
			return ErrBadCreds
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(next), 12)
		if err != nil {
			return err
		}
		users[i].PasswordHash = string(hash)
		s.kv.Set(storage.KeyUsers, users)
		return nil
	}
	return ErrNotFound
}

// BindSession links sid to userID.
func (s *UserStore) BindSession(sid, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := s.loadSessions()
	sessions[sid] = userID
	s.kv.Set(storage.KeySessions, sessions)
}

// UnbindSession logs the session out; no-op if already unbound.
func (s *UserStore) UnbindSession(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := s.loadSessions()
	delete(sessions, sid)
	s.kv.Set(storage.KeySessions, sessions)
}

// SessionUser resolves the user bound to sid, or ErrNotFound for an
// anonymous session.
func (s *UserStore) SessionUser(sid string) (*domain.User, error) {
	s.mu.Lock()
	userID, ok := s.loadSessions()[sid]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	p, err := s.ByID(userID)
	if err != nil {
		return nil, err
	}
	u := p.User
	return &u, nil
}

// SeedUsers ensures demo accounts exist, including one admin. Idempotent;
// safe to run every start.
func (s *UserStore) SeedUsers() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.loadUsers()
	if len(users) > 0 {
		return nil
	}

	mk := func(id, email, name, role, raw string) storedUser {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return storedUser{
			Profile: domain.Profile{
				User: domain.User{
					ID: id, Email: email, Name: name, Role: role,
					CreatedAt: time.Now().UTC(),
				},
				Addresses:   []domain.Address{},
				Preferences: domain.Preferences{FavoriteGenres: []string{}},
			},
			PasswordHash: string(h),
		}
	}

	users = []storedUser{
		mk("u-maya", "maya@lofireads.test", "Maya", domain.RoleUser, "Passw0rd!"),
		mk("u-iris", "iris@lofireads.test", "Iris", domain.RoleUser, "Passw0rd!"),
		mk("u-admin", "admin@lofireads.test", "Admin", domain.RoleAdmin, "Passw0rd!"),
	}
	s.kv.Set(storage.KeyUsers, users)
	return nil
}
