package router

import (
	"loft/internal/handlers/auth"
	"loft/internal/handlers/building"
	"loft/internal/handlers/complaint"
	"loft/internal/handlers/contract"
	"loft/internal/handlers/member"
	"loft/internal/handlers/room"
	"loft/internal/handlers/score"
	"loft/internal/handlers/tenant"
	"loft/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Member    member.Handler
	Building  building.Handler
	Room      room.Handler
	Tenant    tenant.Handler
	Contract  contract.Handler
	Score     score.Handler
	Complaint complaint.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Member.Router(routerGroup)
		r.DomainHandlers.Building.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Tenant.Router(routerGroup)
		r.DomainHandlers.Contract.Router(routerGroup)
		r.DomainHandlers.Score.Router(routerGroup)
		r.DomainHandlers.Complaint.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
