// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Enrichment: Concurrency and pacing defaults for the external review source.
  - Security: JWT issuers and token lifetimes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "shelfmark-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Enrichment

const (
	// EnrichMinSpacing is the default minimum gap between successive request
	// starts against the external review source. The source enforces roughly
	// 100 requests/minute; 650ms keeps the whole pool under that with margin.
	EnrichMinSpacing = 650 * time.Millisecond

	// EnrichConcurrency is the default number of enrichment workers.
	EnrichConcurrency = 3

	// EnrichMaxConcurrency caps the worker pool regardless of request input.
	EnrichMaxConcurrency = 8

	// EnrichLookupTimeout bounds a single external lookup so one stalled
	// request cannot stall the pool indefinitely.
	EnrichLookupTimeout = 15 * time.Second

	// EnrichMaxBatch is the maximum number of books per enrichment run.
	EnrichMaxBatch = 500

	// EnrichActorID is the reserved user ID under which externally sourced
	// content submissions are recorded. It must match the seeded system
	// account in the migrations.
	EnrichActorID = "00000000-0000-7000-8000-000000000001"
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "shelfmark.app"

	// AccessTokenTTL is the lifetime of an issued access token.
	AccessTokenTTL = 7 * 24 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
	SchemaSocial  = "social"
	SchemaUsers   = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixFingerprint      = "cache:fingerprint:"
	RedisPrefixContentAggregate = "cache:content_aggregate:"
)

// # Cache Lifetimes

const (
	// AggregateCacheTTL bounds staleness of cached per-book aggregates. The
	// services invalidate on every write, so the TTL is only a backstop.
	AggregateCacheTTL = 12 * time.Hour
)
