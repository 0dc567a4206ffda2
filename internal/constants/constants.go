package constants

import "time"

// Context keys shared between middleware and handlers
const (
	ContextKeyClaims = "auth_claims"
	ContextKeyEmail  = "auth_email"
	ContextKeyUser   = "auth_user"
)

// Session and cookie settings
const (
	SessionCookieName = "token"
	SessionKeyToken   = "access_token"
	TokenLifetime     = 365 * 24 * time.Hour

	// HeaderIdentitySecret carries the identity provider's shared secret to /jwt.
	HeaderIdentitySecret = "X-Identity-Secret"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Task limits. MaxTaskQuantity*MaxPayableAmount is the largest refund a task can hold.
const (
	MaxTaskQuantity  = 100_000
	MaxPayableAmount = 1_000_000
)

// AI drafting limits
const (
	MaxDraftBriefLength = 2000
)
