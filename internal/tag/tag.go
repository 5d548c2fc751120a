// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package tag

// Tag is a flat label attached to photos. Tags are created implicitly
// during upload (connect-or-create by slug) and never mutated directly.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
