package application

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/taskhub-api/internal/dispatch"
	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func payloadOf(t *testing.T, fields map[string]any) dispatch.Payload {
	t.Helper()
	p := make(dispatch.Payload, len(fields))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		p[k] = raw
	}
	return p
}

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Verify(plain, hash string) bool    { return hash == "hashed:"+plain }

type fakeUserRepo struct {
	seq   int64
	users map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) add(u entity.User) *entity.User {
	r.seq++
	u.ID = r.seq
	r.users[u.ID] = &u
	return &u
}

func (r *fakeUserRepo) Insert(_ context.Context, u *entity.User) error {
	for _, ex := range r.users {
		if ex.Username == u.Username {
			return repository.ErrDuplicateUsername
		}
		if ex.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = r.seq
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, skip, limit int) ([]entity.User, int64, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int64(len(ids))
	out := make([]entity.User, 0, limit)
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *r.users[ids[i]])
	}
	return out, total, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeTaskRepo struct {
	seq   int64
	tasks map[int64]*entity.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*entity.Task)}
}

func (r *fakeTaskRepo) add(t entity.Task) *entity.Task {
	r.seq++
	t.ID = r.seq
	r.tasks[t.ID] = &t
	return &t
}

func (r *fakeTaskRepo) Insert(_ context.Context, t *entity.Task) error {
	r.seq++
	t.ID = r.seq
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func matchesFilter(t *entity.Task, f repository.TaskFilter) bool {
	if f.ViewerID != nil {
		if t.OwnerID != *f.ViewerID && (t.AssigneeID == nil || *t.AssigneeID != *f.ViewerID) {
			return false
		}
	}
	if f.OwnerID != nil && t.OwnerID != *f.OwnerID {
		return false
	}
	if f.AssigneeID != nil && (t.AssigneeID == nil || *t.AssigneeID != *f.AssigneeID) {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Search != nil {
		term := strings.ToLower(*f.Search)
		inTitle := strings.Contains(strings.ToLower(t.Title), term)
		inDesc := t.Description != nil && strings.Contains(strings.ToLower(*t.Description), term)
		if !inTitle && !inDesc {
			return false
		}
	}
	return true
}

func (r *fakeTaskRepo) List(_ context.Context, f repository.TaskFilter, skip, limit int) ([]entity.Task, int64, error) {
	ids := make([]int64, 0, len(r.tasks))
	for id, t := range r.tasks {
		if matchesFilter(t, f) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int64(len(ids))
	out := make([]entity.Task, 0, limit)
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *r.tasks[ids[i]])
	}
	return out, total, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *entity.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}
