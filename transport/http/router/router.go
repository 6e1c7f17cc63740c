package router

import (
	"floorplan/internal/handlers/auth"
	"floorplan/internal/handlers/availability"
	"floorplan/internal/handlers/block"
	"floorplan/internal/handlers/layout"
	"floorplan/internal/handlers/reservation"
	"floorplan/internal/handlers/table"
	"floorplan/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Table        table.Handler
	Reservation  reservation.Handler
	Availability availability.Handler
	Block        block.Handler
	Layout       layout.Handler
	User         user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Route("/tables", func(tables chi.Router) {
			r.DomainHandlers.Table.Router(tables)
			r.DomainHandlers.Reservation.TableRouter(tables)
		})

		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Block.Router(routerGroup)
		r.DomainHandlers.Layout.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
