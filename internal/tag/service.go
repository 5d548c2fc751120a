// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

// Package tag exposes the flat tag vocabulary used to filter photos.
package tag

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) List(context context.Context) ([]Tag, error) {
	return service.repo.List(context)
}
