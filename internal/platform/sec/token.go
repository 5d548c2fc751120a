// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// # Opaque Token Generation

/*
GenerateToken returns a cryptographically secure random token encoded as hex.

Description: The single source of every opaque credential in the system —
session tokens (32 bytes), invite tokens (24), share-link tokens (20), and
slug-disambiguation suffixes (3). Output length is always 2*byteLength
hex characters.

Parameters:
  - byteLength: Number of random bytes to draw (must be > 0)

Returns:
  - string: Lowercase hex token
  - error: Entropy source failures or a non-positive byteLength
*/
func GenerateToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", fmt.Errorf("sec: token byte length must be positive, got %d", byteLength)
	}

	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(buffer), nil
}
