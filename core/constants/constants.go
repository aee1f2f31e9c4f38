package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Timeouts
const (
	DefaultTimeout        = 10 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// Database settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyMatchmakingQuota = "matchmaking:quota:"
	RedisKeyTokenBlacklist   = "token:blacklist:"
)

// Matchmaking limits
const (
	// MatchmakingDailyQuota is the maximum number of matchmaking requests
	// a single caller may make per rolling day.
	MatchmakingDailyQuota = 100
	// MatchmakingQuotaWindow is the rolling window for the daily quota.
	MatchmakingQuotaWindow = 24 * time.Hour
	// MinQualifyingScore - recommendations are persisted only when the
	// computed score is strictly greater than this value.
	MinQualifyingScore = 60
	// MaxReasoningLength bounds the stored reasoning text.
	MaxReasoningLength = 500
)

// User roles (user_roles table)
const (
	RoleStudent = "student"
	RoleSponsor = "sponsor"
)
