package service

import (
	"context"
	"fmt"
	"time"

	"library-lending/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// moveCounterScript atomically moves one unit from KEYS[1] to KEYS[2].
// The Redis Go client automatically uses EVALSHA (send SHA hash only) after
// the first call, instead of EVAL (send full script text every time).
//
// Logic:
// 1. DECR source key
// 2. If result < 0 → INCR back (rollback) and return -1 (counter exhausted)
// 3. If result >= 0 → INCR destination key and return its new value
var moveCounterScript = redis.NewScript(`
	local remaining = redis.call('DECR', KEYS[1])
	if remaining < 0 then
		redis.call('INCR', KEYS[1])
		return -1
	end
	return redis.call('INCR', KEYS[2])
`)

const (
	// Redis keys for circulation counters
	RedisAvailableKey = "books:available"
	RedisOnLoanKey    = "books:on_loan"

	// Timeout for individual Redis operations
	redisOpTimeout = 5 * time.Second
)

// AvailabilitySyncService keeps the books:available / books:on_loan counters
// in Redis so statistics reads do not hit Postgres. The database remains the
// source of truth: counter failures are non-fatal and the counters are
// rebuilt from the database on every startup.
type AvailabilitySyncService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAvailabilitySyncService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *AvailabilitySyncService {
	return &AvailabilitySyncService{
		db:          db,
		redisClient: redisClient,
		log:         log,
	}
}

// SyncOnStartup rebuilds both counters from Postgres. Should be called before
// accepting traffic (startup or disaster recovery).
func (s *AvailabilitySyncService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting circulation counter re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	var counts []struct {
		Status entity.BookStatus
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(&entity.Book{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return fmt.Errorf("count books by status: %w", err)
	}

	var available, onLoan int64
	for _, c := range counts {
		switch c.Status {
		case entity.BookStatusAvailable:
			available = c.Total
		case entity.BookStatusBorrowed:
			onLoan = c.Total
		}
	}

	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, RedisAvailableKey, available, 0)
	pipe.Set(ctx, RedisOnLoanKey, onLoan, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("pipeline exec: %w", err)
	}

	s.log.Infof("Circulation counter re-sync completed: available=%d, on_loan=%d in %v",
		available, onLoan, time.Since(startTime))
	return nil
}

// OnBorrow moves one unit from available to on_loan after a borrow commits.
func (s *AvailabilitySyncService) OnBorrow(ctx context.Context) error {
	return s.move(ctx, RedisAvailableKey, RedisOnLoanKey)
}

// OnReturn moves one unit from on_loan back to available after a return commits.
func (s *AvailabilitySyncService) OnReturn(ctx context.Context) error {
	return s.move(ctx, RedisOnLoanKey, RedisAvailableKey)
}

// OnBookAdded bumps the available counter after a new book commits.
func (s *AvailabilitySyncService) OnBookAdded(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return s.redisClient.Incr(opCtx, RedisAvailableKey).Err()
}

// OnBookRemoved drops the available counter after a book delete commits.
// Books with an open loan cannot be deleted, so on_loan never changes here.
func (s *AvailabilitySyncService) OnBookRemoved(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return s.redisClient.Decr(opCtx, RedisAvailableKey).Err()
}

// GetCounts reads both counters. The bool result reports whether the counters
// were present; callers fall back to database counts when they are not.
func (s *AvailabilitySyncService) GetCounts(ctx context.Context) (available int64, onLoan int64, ok bool, err error) {
	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	values, err := s.redisClient.MGet(opCtx, RedisAvailableKey, RedisOnLoanKey).Result()
	if err != nil {
		return 0, 0, false, err
	}
	if len(values) != 2 || values[0] == nil || values[1] == nil {
		return 0, 0, false, nil
	}

	if _, err := fmt.Sscan(values[0].(string), &available); err != nil {
		return 0, 0, false, err
	}
	if _, err := fmt.Sscan(values[1].(string), &onLoan); err != nil {
		return 0, 0, false, err
	}
	return available, onLoan, true, nil
}

func (s *AvailabilitySyncService) move(ctx context.Context, from, to string) error {
	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	result, err := moveCounterScript.Run(opCtx, s.redisClient, []string{from, to}).Int64()
	if err != nil {
		return err
	}
	if result < 0 {
		// Counter drifted (e.g. Redis flushed mid-flight); next startup sync heals it.
		s.log.Warnf("Circulation counter %s exhausted during move, skipping", from)
	}
	return nil
}
