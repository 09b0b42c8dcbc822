package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSummaryKey returns the cache key for a user's computed GPA summary
func (r *CacheKeyStruct) UserSummaryKey(userID int) string {
	return fmt.Sprintf("user:%d:gpa_summary", userID)
}

// UserSummaryChannel returns the pub/sub channel carrying a user's recomputed summaries
func (r *CacheKeyStruct) UserSummaryChannel(userID int) string {
	return fmt.Sprintf("user:%d:gpa_events", userID)
}

// RevokedTokenKey returns the cache key marking a token ID as logged out
func (r *CacheKeyStruct) RevokedTokenKey(jti string) string {
	return fmt.Sprintf("token:%s:revoked", jti)
}

// RateLimitKey returns the counter key for one client in one rate-limit window
func (r *CacheKeyStruct) RateLimitKey(scope, ip string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, ip, window)
}

var CacheKey = NewCacheKeyStruct()

type WorkerKeyStruct struct {
	RecalcSummaryQueue string
}

var WorkerKey = &WorkerKeyStruct{
	RecalcSummaryQueue: "recalc_summary_queue",
}
