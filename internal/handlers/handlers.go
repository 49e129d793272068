package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/orderdesk/docs"
	adminhandlers "github.com/GlebRadaev/orderdesk/internal/handlers/admin"
	chathandlers "github.com/GlebRadaev/orderdesk/internal/handlers/chat"
	ordershandlers "github.com/GlebRadaev/orderdesk/internal/handlers/orders"
	"github.com/GlebRadaev/orderdesk/internal/service"
	"github.com/GlebRadaev/orderdesk/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type ChatHandler interface {
	HandleEvent(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	GetOrder(w http.ResponseWriter, r *http.Request)
	GetUserOrders(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ChangeStatus(w http.ResponseWriter, r *http.Request)
	ListOrders(w http.ResponseWriter, r *http.Request)
	CreatePromo(w http.ResponseWriter, r *http.Request)
	ListPromoUsages(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	ChatHandler  ChatHandler
	OrderHandler OrderHandler
	AdminHandler AdminHandler

	jwt     *auth.JWTService
	isAdmin func(userID int64) bool
}

func New(s *service.Services, jwt *auth.JWTService, isAdmin func(userID int64) bool) *Handlers {
	return &Handlers{
		ChatHandler:  chathandlers.New(s.Machine),
		OrderHandler: ordershandlers.New(s.OrderService),
		AdminHandler: adminhandlers.New(s.OrderService, s.PromoService),
		jwt:          jwt,
		isAdmin:      isAdmin,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Use(h.jwt.Middleware)

		r.With(auth.RequireRole(auth.RoleGateway)).Post("/chat/events", h.ChatHandler.HandleEvent)
		r.Get("/orders/{orderID}", h.OrderHandler.GetOrder)
		r.Get("/users/{userID}/orders", h.OrderHandler.GetUserOrders)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin(h.isAdmin))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.AdminHandler.ListOrders)
				r.Patch("/{orderID}/status", h.AdminHandler.ChangeStatus)
			})
			r.Route("/promos", func(r chi.Router) {
				r.Post("/", h.AdminHandler.CreatePromo)
				r.Get("/{code}/usages", h.AdminHandler.ListPromoUsages)
			})
		})
	})

	return r
}
