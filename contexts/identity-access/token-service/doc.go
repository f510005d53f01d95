// Package tokenservice implements the token manager inside taskforge.
//
// Access tokens are stateless HS256 JWTs: validity is a function of
// signature and expiry only, so they cannot be revoked before natural
// expiry. Refresh tokens are also signed JWTs but every issued one is
// persisted as a single-use row; logout and rotation delete the row, which
// is what makes early revocation enforceable.
//
// IssueTokenPair replaces all prior refresh rows for the user, enforcing a
// single active session per user. This mirrors the observed login behavior
// and is a product-policy choice; multi-device sessions would require
// relaxing the replacement in the repository.
//
// Layering:
// - domain: refresh token entity, error taxonomy
// - application: token manager service + sweeper worker using explicit ports
// - ports: persistence boundary for refresh token rows
// - adapters: memory and postgres implementations
package tokenservice
