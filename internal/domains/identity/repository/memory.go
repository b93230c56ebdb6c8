package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-catalog/internal/domains/identity/model"
)

// memoryRepository is an in-process Repository used by tests and by
// deployments without a database. All maps are guarded by a single
// mutex; reads return copies so callers cannot mutate stored state.
type memoryRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*model.User
	byName  map[string]uuid.UUID
	groups  map[string]*model.Group
	members map[uuid.UUID]map[string]bool // user -> group names
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		users:   make(map[uuid.UUID]*model.User),
		byName:  make(map[string]uuid.UUID),
		groups:  make(map[string]*model.Group),
		members: make(map[uuid.UUID]map[string]bool),
	}
}

func (r *memoryRepository) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[u.Username]; taken {
		return nil, model.ErrUsernameTaken
	}

	now := time.Now()
	stored := &model.User{
		ID:           uuid.New(),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Permissions:  append([]string(nil), u.Permissions...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[stored.ID] = stored
	r.byName[stored.Username] = stored.ID

	out := *stored
	return &out, nil
}

func (r *memoryRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLocked(id)
}

func (r *memoryRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return r.resolveLocked(id)
}

// resolveLocked copies a user and attaches the groups (with their
// permission sets) the user belongs to. Caller holds the lock.
func (r *memoryRepository) resolveLocked(id uuid.UUID) (*model.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	out := *stored
	out.Permissions = append([]string(nil), stored.Permissions...)
	for name := range r.members[id] {
		if g, ok := r.groups[name]; ok {
			gc := *g
			gc.Permissions = append([]string(nil), g.Permissions...)
			out.Groups = append(out.Groups, gc)
		}
	}
	return &out, nil
}

func (r *memoryRepository) AddUserToGroup(ctx context.Context, userID uuid.UUID, groupName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return model.ErrUserNotFound
	}
	if _, ok := r.groups[groupName]; !ok {
		return model.ErrGroupNotFound
	}
	if r.members[userID] == nil {
		r.members[userID] = make(map[string]bool)
	}
	r.members[userID][groupName] = true
	return nil
}

func (r *memoryRepository) EnsureGroup(ctx context.Context, name string, permissions []string) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.groups[name]; ok {
		out := *g
		out.Permissions = append([]string(nil), g.Permissions...)
		return &out, nil
	}

	g := &model.Group{
		ID:          uuid.New(),
		Name:        name,
		Permissions: append([]string(nil), permissions...),
	}
	r.groups[name] = g

	out := *g
	out.Permissions = append([]string(nil), g.Permissions...)
	return &out, nil
}

func (r *memoryRepository) GetGroup(ctx context.Context, name string) (*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[name]
	if !ok {
		return nil, model.ErrGroupNotFound
	}
	out := *g
	out.Permissions = append([]string(nil), g.Permissions...)
	return &out, nil
}
