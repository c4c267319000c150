package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/google/uuid"
)

var errMemoryOffline = errors.New("memory store switched offline")

// MemoryUserRepository keeps users and friend references in process. It
// implements both UserRepository and FriendshipRepository.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]models.User
	friends map[string][]string
	offline bool
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[string]models.User),
		friends: make(map[string][]string),
	}
}

// SetOffline makes every call fail with ErrStoreUnavailable.
func (r *MemoryUserRepository) SetOffline(offline bool) {
	r.mu.Lock()
	r.offline = offline
	r.mu.Unlock()
}

func (r *MemoryUserRepository) check(op string) error {
	if r.offline {
		return storeError(op, errMemoryOffline)
	}
	return nil
}

func (r *MemoryUserRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("create user"); err != nil {
		return err
	}
	if r.emailTaken(user.Email, user.ID) {
		return fmt.Errorf("%w: create user", ErrDuplicate)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = *user
	return nil
}

// emailTaken mirrors the partial unique index on users.email.
func (r *MemoryUserRepository) emailTaken(email, exceptID string) bool {
	if email == "" {
		return false
	}
	for id, u := range r.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *MemoryUserRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check("get user"); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find("get user by email", func(u models.User) bool { return email != "" && u.Email == email })
}

func (r *MemoryUserRepository) GetUserByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	return r.find("get user by identifier", func(u models.User) bool {
		return identifier != "" && (u.Email == identifier || u.Phone == identifier)
	})
}

func (r *MemoryUserRepository) GetUserByFirebaseUID(_ context.Context, firebaseUID string) (*models.User, error) {
	return r.find("get user by firebase uid", func(u models.User) bool {
		return firebaseUID != "" && u.FirebaseUID == firebaseUID
	})
}

func (r *MemoryUserRepository) find(op string, match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check(op); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) GetUsersByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check("get users"); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) UpdateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("update user"); err != nil {
		return err
	}
	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return fmt.Errorf("%w: update user", ErrDuplicate)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) DeleteAllUsers(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("delete users"); err != nil {
		return err
	}
	r.users = make(map[string]models.User)
	return nil
}

func (r *MemoryUserRepository) AddFriend(_ context.Context, userID, friendID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("add friend"); err != nil {
		return err
	}
	for _, id := range r.friends[userID] {
		if id == friendID {
			return nil
		}
	}
	r.friends[userID] = append(r.friends[userID], friendID)
	return nil
}

func (r *MemoryUserRepository) CountFriends(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check("count friends"); err != nil {
		return 0, err
	}
	return int64(len(r.friends[userID])), nil
}

func (r *MemoryUserRepository) GetFriendIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check("list friends"); err != nil {
		return nil, err
	}
	return append([]string{}, r.friends[userID]...), nil
}

func (r *MemoryUserRepository) DeleteAllFriendships(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("delete friendships"); err != nil {
		return err
	}
	r.friends = make(map[string][]string)
	return nil
}
