package store

import (
	"errors"
	"sync"
	"time"

	"miniblog/domain"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserStore keeps users in memory in creation order. Ids start at 1.
type UserStore struct {
	mu     sync.RWMutex
	users  []domain.User
	byID   map[int64]int
	nextID int64
	now    func() time.Time
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:   make(map[int64]int),
		nextID: 1,
		now:    time.Now,
	}
}

// CreateUser appends a user without any uniqueness check.
func (s *UserStore) CreateUser(username, email, hashedPassword string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(username, email, hashedPassword)
}

// CreateUserIfAbsent inserts the user unless the email or the username is
// already in use. The check and the insert happen under the same lock.
func (s *UserStore) CreateUserIfAbsent(username, email, hashedPassword string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(func(u domain.User) bool { return u.Email == email }); ok {
		return domain.User{}, ErrEmailTaken
	}
	if _, ok := s.find(func(u domain.User) bool { return u.Username == username }); ok {
		return domain.User{}, ErrUsernameTaken
	}

	return s.insert(username, email, hashedPassword), nil
}

func (s *UserStore) FindUserByID(id int64) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return domain.User{}, false
	}
	return s.users[i], true
}

func (s *UserStore) FindUserByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.find(func(u domain.User) bool { return u.Email == email })
}

func (s *UserStore) FindUserByUsername(username string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.find(func(u domain.User) bool { return u.Username == username })
}

// GetAllUsers returns every user with the password hash cleared.
func (s *UserStore) GetAllUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		u.Password = ""
		users = append(users, u)
	}
	return users
}

// caller holds the write lock
func (s *UserStore) insert(username, email, hashedPassword string) domain.User {
	u := domain.User{
		ID:        s.nextID,
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: s.now().UTC(),
	}
	s.nextID++
	s.byID[u.ID] = len(s.users)
	s.users = append(s.users, u)
	return u
}

func (s *UserStore) find(match func(domain.User) bool) (domain.User, bool) {
	for _, u := range s.users {
		if match(u) {
			return u, true
		}
	}
	return domain.User{}, false
}
