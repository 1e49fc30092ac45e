// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth identifies the acting user from a signed bearer token.

# Tokens

Tokens are HS256 JWTs whose subject is the user ID:

	token, err := auth.IssueToken(secret, userID, 24*time.Hour)
	claims, err := auth.ParseToken(secret, token)

Only HS256 is accepted; "none" and asymmetric algorithms are rejected.
Expiry and not-before are enforced by the parser.

# Requests

Handlers resolve the actor from the Authorization header:

	userID, err := auth.ActorFromRequest(r, secret)

ErrNoToken means the request is anonymous. ErrInvalidToken means a token
was sent but could not be trusted. Reads treat both as anonymous; writes
answer 401.
*/
package auth
