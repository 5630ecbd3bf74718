package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CandidateSessionKey returns the cache key holding a candidate's active session JTI.
func (r *CacheKeyStruct) CandidateSessionKey(candidateID string) string {
	return fmt.Sprintf("login:candidate:%s", candidateID)
}

// StatisticsKey returns the cache key for the precomputed exam statistics snapshot.
func (r *CacheKeyStruct) StatisticsKey() string {
	return "exam:statistics"
}

// SubmissionChannel returns the Redis PubSub channel carrying scored submissions
// for the admin monitor feed.
func (r *CacheKeyStruct) SubmissionChannel() string {
	return "exam:submissions"
}

var CacheKey = NewCacheKeyStruct()
