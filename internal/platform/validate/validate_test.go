// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/platform/validate"
)

/*
TestRequired verifies empty and whitespace-only values fail.
*/
func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"present", "hello", true},
		{"empty", "", false},
		{"whitespace", "   \t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Required("title", tt.value).Err()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestEmail verifies RFC 5322 address parsing.
*/
func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain", "user@example.com", true},
		{"no_at", "userexample.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Email("email", tt.value).Err()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestUUID verifies canonical UUID strings, case-insensitively.
*/
func TestUUID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"v7", "0191a8b0-1234-7abc-8def-0123456789ab", true},
		{"uppercase", "0191A8B0-1234-7ABC-8DEF-0123456789AB", true},
		{"missing_dashes", "0191a8b012347abc8def0123456789ab", false},
		{"garbage", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.UUID("id", tt.value).Err()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestOneOf verifies closed-set membership.
*/
func TestOneOf(t *testing.T) {
	v := &validate.Validator{}
	assert.NoError(t, v.OneOf("resource_type", "photo", "photo", "album").Err())

	v = &validate.Validator{}
	assert.Error(t, v.OneOf("resource_type", "video", "photo", "album").Err())
}

/*
TestChain verifies multiple failures are collected into one error with
per-field details.
*/
func TestChain(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("email", "").
		MinLen("password", "short", 8).
		MaxLen("title", "abcdef", 3).
		Err()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)

	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 3)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password", "title"}, fields)
}

/*
TestChain_AllPass verifies a fully passing chain yields nil.
*/
func TestChain_AllPass(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("email", "user@example.com").
		Email("email", "user@example.com").
		MinLen("password", "long enough", 8).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestCustom verifies arbitrary predicate failures.
*/
func TestCustom(t *testing.T) {
	v := &validate.Validator{}
	err := v.Custom("expires_hours", true, "Must not be negative").Err()
	require.Error(t, err)
	assert.Equal(t, "Must not be negative", apperr.As(err).Details[0].Message)

	v = &validate.Validator{}
	assert.NoError(t, v.Custom("expires_hours", false, "Must not be negative").Err())
}
