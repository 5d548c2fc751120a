// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and per-route request windows.
  - Security: Cookie configuration and credential lifetimes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "memoria-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads carry multi-megabyte bodies, so this is looser than a JSON-only API.
	DefaultReadTimeout = 60 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// Derivative generation for large images must finish inside this window.
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

// # Per-Route Request Windows (Redis fixed window)

const (
	// LoginRateLimitPerMinute caps credential attempts per IP.
	LoginRateLimitPerMinute = 5

	// InviteRateLimitPerMinute caps invite creation per IP.
	InviteRateLimitPerMinute = 3

	// ShareRateLimitPerMinute caps anonymous share-token probing per IP.
	ShareRateLimitPerMinute = 30
)

// # Authentication

const (
	// SessionCookieName is the name of the cookie carrying the opaque session token.
	SessionCookieName = "memoria_session"

	// SessionCookiePath scopes the session cookie to the whole site.
	SessionCookiePath = "/"

	// SessionTTL is the fixed session lifetime. There is no sliding expiry;
	// a fresh session is only issued by re-login.
	SessionTTL = 14 * 24 * time.Hour
)

// # Token Byte Lengths

const (
	// SessionTokenBytes is the entropy of a session token (64 hex chars).
	SessionTokenBytes = 32

	// InviteTokenBytes is the entropy of an invite token.
	InviteTokenBytes = 24

	// ShareTokenBytes is the entropy of a share-link token.
	ShareTokenBytes = 20

	// SlugSuffixBytes disambiguates slugs generated from similar titles.
	SlugSuffixBytes = 3
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	// HeaderAccelRedirect hands an authorized media path to the fronting
	// static file server. The API process never streams image bytes itself.
	HeaderAccelRedirect = "X-Accel-Redirect"
)

// # Media Delivery

const (
	// InternalMediaPrefix is the internal location the static file server
	// maps to the media root on disk.
	InternalMediaPrefix = "/internal/media"

	// CacheControlOriginal keeps originals revalidated, since a future
	// replace-original feature would change bytes under the same id.
	CacheControlOriginal = "private, max-age=0"

	// CacheControlDerived marks derivatives immutable: a given id+size
	// never changes after creation.
	CacheControlDerived = "public, max-age=31536000, immutable"
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
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCore  = "core"
	SchemaUsers = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRateLimit = "ratelimit:"
)
