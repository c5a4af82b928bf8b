package router

import (
	"himalayandays/internal/handlers/application"
	"himalayandays/internal/handlers/auth"
	"himalayandays/internal/handlers/booking"
	"himalayandays/internal/handlers/hotel"
	"himalayandays/internal/handlers/inquiry"
	"himalayandays/internal/handlers/media"
	"himalayandays/internal/handlers/subscriber"
	"himalayandays/internal/handlers/tour"
	"himalayandays/internal/handlers/user"
	"himalayandays/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Hotel       hotel.Handler
	Inquiry     inquiry.Handler
	Booking     booking.Handler
	Subscriber  subscriber.Handler
	Application application.Handler
	Tour        tour.Handler
	Media       media.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AuthRole
}

// SetupRoutes mounts every domain under /v1. Authentication and role checks
// run for the whole group; public endpoints are skipped via the embedded
// permissions table.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Middleware.APIKey)
		routerGroup.Use(r.Middleware.Auth)
		routerGroup.Use(r.Middleware.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Inquiry.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Subscriber.Router(routerGroup)
		r.DomainHandlers.Application.Router(routerGroup)
		r.DomainHandlers.Tour.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     authRole,
	}
}
