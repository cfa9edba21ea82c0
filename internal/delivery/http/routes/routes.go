package routes

import (
	"talenthub/internal/delivery/http/handler"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health          *handler.HealthHandler
	Applications    *handler.ApplicationHandler
	Offers          *handler.OfferHandler
	Recommendations *handler.RecommendationHandler
	Skills          *handler.SkillHandler
	Feed            *handler.FeedHandler
	WS              *ws.Handler

	Auth *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1", r.Auth.Middleware())

	r.Applications.RegisterRoutes(v1)
	r.Offers.RegisterRoutes(v1)
	r.Recommendations.RegisterRoutes(v1)
	r.Skills.RegisterRoutes(v1)
	r.Feed.RegisterRoutes(v1)

	if r.WS != nil {
		app.Get("/ws/notifications", r.WS.HandleNotificationsWS, r.Auth.Middleware())
	}
}
