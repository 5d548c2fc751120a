// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buihoang/memoria/pkg/slug"
)

/*
TestFrom verifies Unicode titles flatten into stable ASCII slugs.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Sunset Over The Bay", "sunset-over-the-bay"},
		{"accents", "Sunset over Đà Nẵng", "sunset-over-a-nang"},
		{"punctuation", "Hello, World! (2026)", "hello-world-2026"},
		{"multi_space", "a   b", "a-b"},
		{"leading_trailing", "  --trim me--  ", "trim-me"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
