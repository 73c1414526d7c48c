package users

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"Backend-ShiftFilter/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	s := NewService(NewMemoryStore())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return s
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	t.Run("first account becomes approved admin", func(t *testing.T) {
		u, err := s.Signup(ctx, " Boss@Example.com ", "secret-1")
		require.NoError(t, err)
		assert.Equal(t, "boss@example.com", u.Email)
		assert.True(t, u.IsAdmin)
		assert.True(t, u.IsApproved)
		assert.NotEqual(t, "secret-1", u.PasswordHash)
	})

	t.Run("later accounts wait for approval", func(t *testing.T) {
		u, err := s.Signup(ctx, "clerk@example.com", "secret-2")
		require.NoError(t, err)
		assert.False(t, u.IsAdmin)
		assert.False(t, u.IsApproved)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.Signup(ctx, "CLERK@example.com", "other")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	_, err := s.Signup(ctx, "boss@example.com", "secret-1")
	require.NoError(t, err)
	clerk, err := s.Signup(ctx, "clerk@example.com", "secret-2")
	require.NoError(t, err)

	u, err := s.Authenticate(ctx, "BOSS@example.com", "secret-1")
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", u.Email)

	_, err = s.Authenticate(ctx, "boss@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody@example.com", "secret-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "clerk@example.com", "secret-2")
	assert.ErrorIs(t, err, ErrNotApproved)

	_, err = s.Approve(ctx, clerk.ID.Hex())
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, "clerk@example.com", "secret-2")
	assert.NoError(t, err)
}

func TestListApproveDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	boss, err := s.Signup(ctx, "boss@example.com", "pw")
	require.NoError(t, err)
	a, err := s.Signup(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	b, err := s.Signup(ctx, "b@example.com", "pw")
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Pending, 2)
	assert.Len(t, list.Approved, 1)
	assert.Equal(t, "a@example.com", list.Pending[0].Email)

	_, err = s.Approve(ctx, a.ID.Hex())
	require.NoError(t, err)

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Pending, 1)
	assert.Len(t, list.Approved, 2)

	_, err = s.Delete(ctx, boss.ID.Hex(), boss.ID.Hex())
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)

	deleted, err := s.Delete(ctx, boss.ID.Hex(), b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", deleted.Email)

	_, err = s.Delete(ctx, boss.ID.Hex(), b.ID.Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.Approve(ctx, "not-hex")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestSignupSingleAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("concurrent first signups", func(t *testing.T) {
		s := NewService(NewMemoryStore())
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.Signup(ctx, fmt.Sprintf("user%d@example.com", i), "pw")
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list.Approved, 1)
		assert.True(t, list.Approved[0].IsAdmin)
		assert.Len(t, list.Pending, 7)
	})

	t.Run("admin created elsewhere demotes the signup", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Insert(ctx, &models.User{Email: "boss@example.com", IsAdmin: true, IsApproved: true}))
		s := NewService(staleCountStore{store})

		u, err := s.Signup(ctx, "late@example.com", "pw")
		require.NoError(t, err)
		assert.False(t, u.IsAdmin)
		assert.False(t, u.IsApproved)

		_, err = s.Authenticate(ctx, "late@example.com", "pw")
		assert.ErrorIs(t, err, ErrNotApproved)
	})
}

// staleCountStore reports an empty store, as a second server would see it
// before the first admin is written.
type staleCountStore struct {
	*MemoryStore
}

func (staleCountStore) Count(ctx context.Context) (int64, error) { return 0, nil }
