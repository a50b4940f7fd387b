package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barthig/Biblioteka-sub005/internal/cache"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

type staticLoanRepo struct {
	loans []*repository.Loan
}

func (r *staticLoanRepo) GetAllActive(ctx context.Context) ([]*repository.Loan, error) {
	return r.loans, nil
}

func newLoan(due time.Time) *repository.Loan {
	return &repository.Loan{
		ID:       uuid.New(),
		CopyID:   uuid.New(),
		ItemID:   "item-1",
		PatronID: "p1",
		DueAt:    due,
	}
}

func TestLoanCacheLoadInitialData(t *testing.T) {
	now := time.Now().UTC()
	repo := &staticLoanRepo{loans: []*repository.Loan{
		newLoan(now.Add(24 * time.Hour)),
		newLoan(now.Add(48 * time.Hour)),
	}}
	c := cache.NewLoanCache(repo, zap.NewNop())

	require.NoError(t, c.LoadInitialData(context.Background()))

	for _, loan := range repo.loans {
		got, found := c.Get(loan.ID)
		require.True(t, found)
		assert.Equal(t, loan.ID, got.ID)
	}
}

func TestLoanCacheSetAndDelete(t *testing.T) {
	c := cache.NewLoanCache(nil, zap.NewNop())
	loan := newLoan(time.Now().UTC().Add(24 * time.Hour))

	c.Set(loan)
	_, found := c.Get(loan.ID)
	assert.True(t, found)

	// a returned loan is evicted, not stored
	now := time.Now().UTC()
	loan.ReturnedAt = &now
	c.Set(loan)
	_, found = c.Get(loan.ID)
	assert.False(t, found)
}

func TestLoanCacheGetReturnsACopy(t *testing.T) {
	c := cache.NewLoanCache(nil, zap.NewNop())
	loan := newLoan(time.Now().UTC().Add(24 * time.Hour))
	c.Set(loan)

	got, found := c.Get(loan.ID)
	require.True(t, found)
	got.PatronID = "someone-else"

	again, _ := c.Get(loan.ID)
	assert.Equal(t, "p1", again.PatronID)
}

func TestLoanCacheDueScans(t *testing.T) {
	now := time.Now().UTC()
	c := cache.NewLoanCache(nil, zap.NewNop())

	dueSoon := newLoan(now.Add(24 * time.Hour))
	dueLater := newLoan(now.Add(72 * time.Hour))
	overdue := newLoan(now.Add(-time.Hour))
	c.Set(dueSoon)
	c.Set(dueLater)
	c.Set(overdue)

	within := c.DueBetween(now, now.Add(48*time.Hour))
	require.Len(t, within, 1)
	assert.Equal(t, dueSoon.ID, within[0].ID)

	late := c.Overdue(now)
	require.Len(t, late, 1)
	assert.Equal(t, overdue.ID, late[0].ID)
}
