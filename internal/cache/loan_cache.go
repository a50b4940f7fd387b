package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barthig/Biblioteka-sub005/internal/metrics"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

type LoanRepository interface {
	GetAllActive(ctx context.Context) ([]*repository.Loan, error)
}

// LoanCache mirrors the active loan set in memory so the sweeper can scan
// due dates every couple of minutes without hitting the database. Writers go
// through the loans service, which keeps the cache in step after each commit.
type LoanCache struct {
	mu     sync.RWMutex
	cache  map[uuid.UUID]*repository.Loan
	repo   LoanRepository
	logger *zap.Logger
}

func NewLoanCache(repo LoanRepository, logger *zap.Logger) *LoanCache {
	return &LoanCache{
		cache:  make(map[uuid.UUID]*repository.Loan),
		repo:   repo,
		logger: logger,
	}
}

func (c *LoanCache) LoadInitialData(ctx context.Context) error {
	c.logger.Info("Loading active loans into cache")
	loans, err := c.repo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, loan := range loans {
		loanCopy := *loan
		c.cache[loan.ID] = &loanCopy
	}
	metrics.ActiveLoanCacheItems.Set(float64(len(c.cache)))
	c.logger.Info("Loan cache warmed", zap.Int("loans", len(c.cache)))
	return nil
}

func (c *LoanCache) Get(loanID uuid.UUID) (*repository.Loan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	loan, found := c.cache[loanID]
	if !found {
		return nil, false
	}
	loanCopy := *loan
	return &loanCopy, true
}

// Set stores or refreshes a loan. A returned loan is evicted instead.
func (c *LoanCache) Set(loan *repository.Loan) {
	if loan.ReturnedAt != nil {
		c.Delete(loan.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	loanCopy := *loan
	c.cache[loan.ID] = &loanCopy
	metrics.ActiveLoanCacheItems.Set(float64(len(c.cache)))
}

func (c *LoanCache) Delete(loanID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[loanID]; found {
		delete(c.cache, loanID)
		metrics.ActiveLoanCacheItems.Set(float64(len(c.cache)))
	}
}

// DueBetween returns cached loans whose due date falls in (from, to].
func (c *LoanCache) DueBetween(from, to time.Time) []*repository.Loan {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*repository.Loan
	for _, loan := range c.cache {
		if loan.DueAt.After(from) && !loan.DueAt.After(to) {
			loanCopy := *loan
			out = append(out, &loanCopy)
		}
	}
	return out
}

// Overdue returns cached loans whose due date has passed.
func (c *LoanCache) Overdue(now time.Time) []*repository.Loan {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*repository.Loan
	for _, loan := range c.cache {
		if loan.DueAt.Before(now) {
			loanCopy := *loan
			out = append(out, &loanCopy)
		}
	}
	return out
}
