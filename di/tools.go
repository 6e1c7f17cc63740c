package di

import (
	authService "floorplan/internal/domains/auth/service"
	layoutService "floorplan/internal/domains/layout/service"
)

// Tools are the services the migrate command drives directly.
type Tools struct {
	Layout layoutService.Layout
	Auth   authService.Auth
}
