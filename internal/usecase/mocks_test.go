package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, id entity.Identifier) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) FindByToken(ctx context.Context, token string) (*entity.SessionToken, error) {
	args := m.Called(ctx, token)
	stored, _ := args.Get(0).(*entity.SessionToken)
	return stored, args.Error(1)
}

func (m *MockTokenRepository) Rotate(ctx context.Context, token *entity.SessionToken, beforeCommit func(ctx context.Context) error) ([]string, error) {
	args := m.Called(ctx, token, beforeCommit)
	invalidated, _ := args.Get(0).([]string)
	return invalidated, args.Error(1)
}

func (m *MockTokenRepository) ListByUserID(ctx context.Context, userID uint) ([]*entity.SessionToken, error) {
	args := m.Called(ctx, userID)
	tokens, _ := args.Get(0).([]*entity.SessionToken)
	return tokens, args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, expiration)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) IsNotFound(err error) bool {
	return err == errCacheMiss
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockAuditLogRepository) ListByUserID(ctx context.Context, userID uint, page, limit int) ([]*entity.AuditLog, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	logs, _ := args.Get(0).([]*entity.AuditLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

// memoryTokenRepository keeps the rotate contract in memory.
type memoryTokenRepository struct {
	mu     sync.Mutex
	nextID uint
	rows   []*entity.SessionToken
}

func (r *memoryTokenRepository) FindByToken(_ context.Context, token string) (*entity.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Token == token {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryTokenRepository) Rotate(ctx context.Context, token *entity.SessionToken, beforeCommit func(ctx context.Context) error) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		invalidated []string
		touched     []*entity.SessionToken
	)
	for _, row := range r.rows {
		if row.UserID == token.UserID && row.IsValid {
			row.IsValid = false
			invalidated = append(invalidated, row.Token)
			touched = append(touched, row)
		}
	}

	stored := *token
	stored.ID = r.nextID + 1
	stored.IsValid = true
	r.rows = append(r.rows, &stored)

	if beforeCommit != nil {
		if err := beforeCommit(ctx); err != nil {
			r.rows = r.rows[:len(r.rows)-1]
			for _, row := range touched {
				row.IsValid = true
			}
			return nil, err
		}
	}

	r.nextID++
	token.ID = stored.ID
	return invalidated, nil
}

func (r *memoryTokenRepository) ListByUserID(_ context.Context, userID uint) ([]*entity.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SessionToken
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			copied := *r.rows[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

// memoryCache is a CacheRepository over a map. setErr fails every write.
type memoryCache struct {
	mu     sync.Mutex
	items  map[string]string
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}}
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.items[key] = value
	return nil
}

func (c *memoryCache) SetNX(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return false, c.setErr
	}
	if _, ok := c.items[key]; ok {
		return false, nil
	}
	c.items[key] = value
	return true, nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return "", errCacheMiss
	}
	return v, nil
}

// expire drops key as if its ttl ran out.
func (c *memoryCache) expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *memoryCache) IsNotFound(err error) bool {
	return err == errCacheMiss
}

type publishedMessage struct {
	channel string
	message interface{}
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []publishedMessage
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, publishedMessage{channel: channel, message: message})
	return nil
}

// interleavedTokenRepository runs afterFind once, right after a lookup has
// read its row and before the caller acts on it.
type interleavedTokenRepository struct {
	*memoryTokenRepository
	once      sync.Once
	afterFind func()
}

func (r *interleavedTokenRepository) FindByToken(ctx context.Context, token string) (*entity.SessionToken, error) {
	stored, err := r.memoryTokenRepository.FindByToken(ctx, token)
	r.once.Do(r.afterFind)
	return stored, err
}
