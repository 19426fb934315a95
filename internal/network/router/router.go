package router

import (
	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/metrics"
	"github.com/denmor86/dessert-shop/internal/network/handlers"
	"github.com/denmor86/dessert-shop/internal/network/middleware"
	"github.com/denmor86/dessert-shop/internal/services"
	"github.com/go-chi/chi/v5"

	"github.com/go-chi/jwtauth/v5"
)

type Router struct {
	Config      config.Config
	Indentity   services.IdentityService
	Orders      services.OrdersService
	Payments    services.PaymentsService
	Subscribers services.SubscribersService
	Dispatcher  services.BroadcastService
}

func NewRouter(
	config config.Config,
	identity services.IdentityService,
	orders services.OrdersService,
	payments services.PaymentsService,
	subscribers services.SubscribersService,
	dispatcher services.BroadcastService,
) *Router {
	return &Router{
		Config:      config,
		Indentity:   identity,
		Orders:      orders,
		Payments:    payments,
		Subscribers: subscribers,
		Dispatcher:  dispatcher,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Indentity.GetTokenAuth()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handlers.RegisterUserHandler(router.Indentity))
			r.Post("/login", handlers.AuthenticateUserHandle(router.Indentity))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))
			r.Post("/", handlers.CreateOrderHandler(router.Orders))
			r.Get("/history", handlers.GetOrdersHandler(router.Orders))
			r.Get("/{id}", handlers.GetOrderHandler(router.Orders))
			r.Post("/{id}/payment", handlers.AttachPaymentHandler(router.Orders))
			r.Post("/{id}/cancel", handlers.CancelOrderHandler(router.Orders))
			r.Post("/{id}/confirm", handlers.ConfirmDeliveryHandler(router.Orders))
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Put("/{id}/status", handlers.UpdateOrderStatusHandler(router.Orders))
			})
		})
		r.Route("/notifications", func(r chi.Router) {
			// провайдер платежей шлёт уведомления без авторизации
			r.Post("/payment/webhook", handlers.PaymentWebhookHandler(router.Payments))
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(ja))
				r.Use(jwtauth.Authenticator(ja))
				r.Use(middleware.AdminOnly)
				r.Post("/broadcast", handlers.BroadcastHandler(router.Dispatcher))
				r.Get("/subscribers", handlers.SubscribersStatsHandler(router.Subscribers))
			})
		})
	})
	r.Method("GET", "/metrics", metrics.Handler())
	return r
}
