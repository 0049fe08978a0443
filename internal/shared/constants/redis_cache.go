package constants

import (
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis keys and TTL values for the stagebook application
// Pattern: stagebook:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_LONG = 4 * time.Hour // 4 hours - for venue layouts
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_LOCK = 5 * time.Second // 5 seconds - for seat booking locks
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "stagebook"
)

// ================== LAYOUTS MODULE ==================

// Layout Cache Keys
const (
	CACHE_KEY_VENUE_LAYOUT = CACHE_PREFIX + ":layouts:venue:uuid:" // + venue-id
)

// Layout Cache TTLs
const (
	TTL_VENUE_LAYOUT = TTL_SEMI_STATIC_LONG // 4 hours
)

// ================== BOOKINGS MODULE ==================

// Booking Lock Keys
const (
	LOCK_KEY_SEAT             = CACHE_PREFIX + ":locks:seat:uuid:"        // + seat-id
	LOCK_KEY_USER_PERFORMANCE = CACHE_PREFIX + ":locks:user_performance:" // + user-id:performance-id
)

// Booking Lock TTLs
const (
	TTL_SEAT_LOCK = TTL_REALTIME_LOCK // 5 seconds
)

// ================== RATE LIMITING ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":rate_limit" // + :type:client-ip
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis SCAN)
const (
	PATTERN_INVALIDATE_LAYOUTS_ALL = CACHE_PREFIX + ":layouts:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildVenueLayoutKey(venueID string) string {
	return CACHE_KEY_VENUE_LAYOUT + venueID
}

func BuildSeatLockKey(seatID string) string {
	return LOCK_KEY_SEAT + seatID
}

func BuildUserPerformanceLockKey(userID, performanceID string) string {
	return LOCK_KEY_USER_PERFORMANCE + userID + ":" + performanceID
}
