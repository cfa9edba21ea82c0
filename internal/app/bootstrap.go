package app

import (
	"fmt"
	"log"
	"strings"

	"talenthub/internal/config"
	"talenthub/internal/delivery/http/handler"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/delivery/http/routes"
	"talenthub/internal/localization"
	"talenthub/internal/notify"
	"talenthub/internal/pkg/jwt"
	"talenthub/internal/repository"
	"talenthub/internal/usecase/feed"
	"talenthub/internal/usecase/lifecycle"
	"talenthub/internal/usecase/recommend"
	"talenthub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// Bootstrap wires repositories, usecases, and the HTTP surface. The returned
// cleanup closes everything the container opened.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	notifier := notify.NewWSNotifier(hub)

	jobRepo := repository.NewPostgresJobRepository()
	appRepo := repository.NewPostgresApplicationRepository()
	offerRepo := repository.NewPostgresOfferRepository()
	interviewRepo := repository.NewPostgresInterviewRepository()
	workerRepo := repository.NewPostgresWorkerQueryRepository(container.DB)
	jobQueryRepo := repository.NewPostgresJobQueryRepository(container.DB)
	postRepo := repository.NewPostgresPostRepository(container.DB)
	skillRepo := repository.NewPostgresSkillRepository(container.DB)

	lifecycleUC := lifecycle.NewService(
		container.DB, jobRepo, appRepo, offerRepo, interviewRepo, skillRepo, notifier, logger,
	)
	engine := recommend.NewEngine(
		workerRepo, jobQueryRepo, postRepo, skillRepo,
		container.Cache, cfg.Redis.TTL, nil, logger,
	)
	assembler := feed.NewAssembler(container.DB, offerRepo, jobQueryRepo, engine, logger)

	loc := localization.NewRepoResolver(skillRepo)
	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	registry := &routes.Registry{
		Health:       handler.NewHealthHandler(),
		Applications: handler.NewApplicationHandler(lifecycleUC),
		Offers:       handler.NewOfferHandler(lifecycleUC),
		Recommendations: handler.NewRecommendationHandler(
			engine, workerRepo, loc, cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit,
		),
		Skills: handler.NewSkillHandler(engine, loc, cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit),
		Feed:   handler.NewFeedHandler(assembler, workerRepo, cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit),
		WS:     ws.NewHandler(hub, logger),
		Auth:   middleware.NewAuthMiddleware(jwtSvc),
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware()
	f.Use(errMw.Middleware())
	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(accessMw.Middleware())

	registry.Register(f)

	a := &App{Fiber: f, Container: container, Hub: hub}
	return a, container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
