// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package tag

import "context"

// Repository defines read operations for tags.
type Repository interface {
	// List returns all tags ordered alphabetically by name.
	List(context context.Context) ([]Tag, error)
}
