package constants

import "time"

const (
	// RedisKeyPrefix prefixes every key written by the report publisher.
	RedisKeyPrefix = "dailystats"
	// RedisHistoryLength caps the per-strategy report history list.
	RedisHistoryLength = 100
	// RedisDialTimeout is the timeout for the Redis dialer.
	RedisDialTimeout = 10 * time.Second
	// RedisClientMaxRetries is the maximum number of retries for the Redis client.
	RedisClientMaxRetries = 3
	// RedisClientReadTimeout is the read timeout for the Redis client.
	RedisClientReadTimeout = 5 * time.Second
	// RedisClientWriteTimeout is the write timeout for the Redis client.
	RedisClientWriteTimeout = 5 * time.Second
)
