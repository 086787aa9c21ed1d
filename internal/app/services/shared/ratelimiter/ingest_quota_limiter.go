package ratelimiter

import (
	"context"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/pkg/constvars"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// IngestQuotaLimiter counts writes per subject in fixed windows stored in
// Redis. The counter key expires one second after its window closes.
type IngestQuotaLimiter struct {
	redis     contracts.RedisRepository
	log       *zap.Logger
	windowSec int
	maxQuota  int
	now       func() time.Time
}

func NewIngestQuotaLimiter(redis contracts.RedisRepository, log *zap.Logger, windowSec, maxQuota int) *IngestQuotaLimiter {
	if windowSec <= 0 {
		windowSec = 60
	}
	return &IngestQuotaLimiter{
		redis:     redis,
		log:       log,
		windowSec: windowSec,
		maxQuota:  maxQuota,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Allow reports whether subject may write once more in the current window.
// A non-positive quota admits everything.
func (l *IngestQuotaLimiter) Allow(ctx context.Context, subject string) (*contracts.QuotaDecision, error) {
	if l.maxQuota <= 0 {
		return &contracts.QuotaDecision{Allowed: true}, nil
	}

	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return &contracts.QuotaDecision{Allowed: false, RetryAfterSecs: l.windowSec}, nil
	}

	now := l.now()
	windowID := now.Unix() / int64(l.windowSec)
	key := fmt.Sprintf(constvars.RedisIngestQuotaKeyFormat, subject, windowID)

	ttl := time.Duration(l.windowSec)*time.Second + time.Second
	count, err := l.redis.IncrementWithTTL(ctx, key, ttl)
	if err != nil {
		l.log.Error("IngestQuotaLimiter.Allow increment failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	nextWindowStart := (windowID + 1) * int64(l.windowSec)
	retryAfter := int(nextWindowStart-now.Unix()) + 1

	if count > l.maxQuota {
		l.log.Warn("IngestQuotaLimiter.Allow quota exceeded",
			zap.String(constvars.LoggingAuthSubjectKey, subject),
			zap.Int("count", count),
			zap.Int("quota", l.maxQuota),
		)
		return &contracts.QuotaDecision{Allowed: false, RetryAfterSecs: retryAfter}, nil
	}
	return &contracts.QuotaDecision{Allowed: true, Remaining: l.maxQuota - count}, nil
}
