package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Tomlord1122/task-manager/internal/domain"
	"github.com/Tomlord1122/task-manager/internal/repository"
)

// memStore backs both fake repositories so user deletes can cascade.
type memStore struct {
	mu     sync.Mutex
	tasks  map[uint]domain.Task
	users  map[uint]domain.User
	nextID uint
	clock  time.Time

	// failOn makes the named operation return err.
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		tasks:  make(map[uint]domain.Task),
		users:  make(map[uint]domain.User),
		clock:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		failOn: make(map[string]error),
	}
}

func (m *memStore) fail(op string) error {
	return m.failOn[op]
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type fakeTaskRepo struct{ *memStore }

func (r fakeTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("task.create"); err != nil {
		return err
	}
	if _, ok := r.users[t.UserID]; !ok {
		return fmt.Errorf("create task: %w", repository.ErrForeignKey)
	}
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = r.tick()
	r.tasks[t.ID] = *t
	return nil
}

func (r fakeTaskRepo) FindByID(_ context.Context, id uint) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("task.find"); err != nil {
		return nil, err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &t, nil
}

func (r fakeTaskRepo) ListByOwner(_ context.Context, ownerID uint, limit, offset int) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("task.list"); err != nil {
		return nil, err
	}
	all := r.sorted(func(t domain.Task) bool { return t.UserID == ownerID })
	if offset >= len(all) {
		return []domain.Task{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r fakeTaskRepo) ListByOwnerAndCompletion(_ context.Context, ownerID uint, completed bool) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(t domain.Task) bool { return t.UserID == ownerID && t.Completed == completed }), nil
}

func (r fakeTaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("task.update"); err != nil {
		return err
	}
	if _, ok := r.tasks[t.ID]; !ok {
		return fmt.Errorf("update task: %w", repository.ErrRecordNotFound)
	}
	r.tasks[t.ID] = *t
	return nil
}

func (r fakeTaskRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("task.delete"); err != nil {
		return err
	}
	delete(r.tasks, id)
	return nil
}

func (m *memStore) sorted(keep func(domain.Task) bool) []domain.Task {
	out := []domain.Task{}
	for _, t := range m.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type fakeUserRepo struct{ *memStore }

func (r fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("user.create"); err != nil {
		return err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w: idx_users_email", repository.ErrDuplicateKey)
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = r.tick()
	r.users[u.ID] = *u
	return nil
}

func (r fakeUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("user.find"); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &u, nil
}

func (r fakeUserRepo) FindByIDWithTasks(ctx context.Context, id uint) (*domain.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Tasks = r.sorted(func(t domain.Task) bool { return t.UserID == id })
	return u, nil
}

func (r fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("user.find"); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (r fakeUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	if offset >= len(all) {
		return []domain.User{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("user.update"); err != nil {
		return err
	}
	stored, ok := r.users[u.ID]
	if !ok {
		return fmt.Errorf("update user: %w", repository.ErrRecordNotFound)
	}
	stored.Name = u.Name
	stored.PasswordHash = u.PasswordHash
	stored.Active = u.Active
	r.users[u.ID] = stored
	return nil
}

func (r fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("user.delete"); err != nil {
		return err
	}
	delete(r.users, id)
	for tid, t := range r.tasks {
		if t.UserID == id {
			delete(r.tasks, tid)
		}
	}
	return nil
}

// plainHasher keeps tests fast; bcrypt is covered in the auth package.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) bool {
	return hash == "hashed:"+password
}

func ptr[T any](v T) *T {
	return &v
}
