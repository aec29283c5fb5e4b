// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// userFromToken decodes the token's subject and expiry without verifying the
// signature. Opaque or malformed tokens yield nil; they still authenticate.
func userFromToken(token string) *User {
	if token == "" {
		return nil
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.Subject == "" {
		return nil
	}
	u := &User{Username: claims.Subject}
	if claims.ExpiresAt != nil {
		u.ExpiresAt = claims.ExpiresAt.Time
	}
	return u
}
