// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoang/memoria/internal/platform/sec"
)

/*
TestGenerateToken verifies hex encoding and output length.
*/
func TestGenerateToken(t *testing.T) {
	for _, byteLength := range []int{3, 20, 24, 32} {
		token, err := sec.GenerateToken(byteLength)
		require.NoError(t, err)

		assert.Len(t, token, 2*byteLength)
		assert.Regexp(t, "^[0-9a-f]+$", token)
	}
}

/*
TestGenerateToken_Unique verifies consecutive tokens differ.
*/
func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		token, err := sec.GenerateToken(32)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

/*
TestGenerateToken_InvalidLength verifies non-positive lengths are rejected.
*/
func TestGenerateToken_InvalidLength(t *testing.T) {
	for _, byteLength := range []int{0, -1} {
		_, err := sec.GenerateToken(byteLength)
		assert.Error(t, err)
	}
}

/*
TestHashPassword verifies the bcrypt round trip.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse battery staple", "not a hash"))
}
