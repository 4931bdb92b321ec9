// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/ittools/internal/core"
)

type memoryRepo struct {
	users  map[int64]*User
	nextID int64
	err    error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[int64]*User{}}
}

func (m *memoryRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return core.ErrDuplicateKey
		}
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (*User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memoryRepo) SetAdmin(_ context.Context, id int64, isAdmin bool) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.IsAdmin = isAdmin
	return nil
}

func (m *memoryRepo) List(context.Context, ListUsersParams) ([]User, int, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Counts(context.Context) (*Counts, error) {
	c := &Counts{}
	for _, u := range m.users {
		c.Total++
		if u.IsPremium {
			c.Premium++
		}
		if u.IsAdmin {
			c.Admins++
		}
	}
	return c, nil
}

func TestResolveViewerReadsCurrentFlags(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	info, err := svc.Create(ctx, "alice", "hash")
	require.NoError(t, err)

	v, err := svc.ResolveViewer(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, v.Premium())

	repo.users[info.ID].IsPremium = true

	v, err = svc.ResolveViewer(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, v.Premium())

	_, err = svc.ResolveViewer(ctx, 999)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, created, err := svc.EnsureAdmin(ctx, "root", "hash")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, u.IsAdmin)

	_, err = svc.Create(ctx, "bob", "bobhash")
	require.NoError(t, err)

	u, created, err = svc.EnsureAdmin(ctx, "bob", "ignored")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, "bobhash", u.PasswordHash)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Admins)
}

func TestGetMeRequiresUser(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.GetMe(context.Background(), 0)
	require.True(t, errors.Is(err, core.ErrUnauthorized))
}
