package constants

import "time"

// Context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// TokenTTL is the validity window of an issued session token.
const TokenTTL = 24 * time.Hour

// TokenIssuer names this service in issued token claims.
const TokenIssuer = "promanage"
