// Package course owns the immutable course catalog: upload, lookup, listing.
package course

import (
	"log/slog"

	"courze/internal/course/handler"
	"courze/internal/course/service"
)

// Service exposes course catalog operations.
type Service = service.Service

// Handler wires HTTP endpoints to the course service.
type Handler = handler.Handler

// NewService constructs the course registry service.
func NewService(courses service.CourseStore, opts ...service.Option) *Service {
	return service.New(courses, opts...)
}

// NewHandler constructs an HTTP handler for course routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
