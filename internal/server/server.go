package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/harvestx-backend/internal/handler"
	"github.com/shinyyama/harvestx-backend/internal/media"
	"github.com/shinyyama/harvestx-backend/internal/metrics"
	appmw "github.com/shinyyama/harvestx-backend/internal/middleware"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"github.com/shinyyama/harvestx-backend/internal/service"
	"go.uber.org/zap"
)

const healthMessage = "HarvestX backend is healthy"

// Deps are the collaborators the HTTP server is built from. Verifier and
// Uploader may be nil.
type Deps struct {
	Store     repository.Store
	Verifier  appmw.TokenVerifier
	Uploader  media.Uploader
	Metrics   *metrics.Recorder
	Logger    *zap.Logger
	GitSHA    string
	BuildTime string
}

type Server struct {
	e *echo.Echo
}

func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.NewRecorder()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin,
	}))

	opts := service.Options{Logger: d.Logger, Metrics: d.Metrics}

	userHandler := handler.NewUserHandler(service.NewUserService(d.Store, opts), d.Logger)
	offerHandler := handler.NewOfferHandler(service.NewOfferService(d.Store, opts), d.Logger)
	requestHandler := handler.NewRequestHandler(
		service.NewRequestService(d.Store, opts),
		service.NewSettlementService(d.Store, opts),
		d.Logger,
	)
	txnHandler := handler.NewTransactionHandler(service.NewTransactionService(d.Store), d.Logger)
	statsHandler := handler.NewStatsHandler(service.NewStatsService(d.Store), d.Logger)
	uploadHandler := handler.NewUploadHandler(service.NewMediaService(d.Store, d.Uploader, opts), d.Logger)

	authMw := appmw.NewAuthMiddleware(d.Verifier)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"message":    healthMessage,
			"git_sha":    d.GitSHA,
			"build_time": d.BuildTime,
		})
	})
	e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))

	api := e.Group("/api", authMw.Identify)

	api.POST("/users", userHandler.Register)
	api.GET("/users", userHandler.List)
	api.PUT("/users/:uid/role", userHandler.UpdateRole)
	api.GET("/me", userHandler.Me)

	api.POST("/offers", offerHandler.Create)
	api.GET("/offers", offerHandler.ListActive)
	api.GET("/offers/:id", offerHandler.Get)
	api.GET("/me/offers", offerHandler.ListMine)

	api.POST("/offers/:id/requests", requestHandler.Create)
	api.GET("/offers/:id/requests", requestHandler.ListForOffer)
	api.GET("/me/requests", requestHandler.ListMine)
	api.POST("/requests/:id/respond", requestHandler.Respond)

	api.GET("/me/sales", txnHandler.ListSales)
	api.GET("/me/investments", txnHandler.ListInvestments)

	api.GET("/stats", statsHandler.Get)

	api.POST("/uploads/offer-images", uploadHandler.OfferImage, middleware.BodyLimit("6M"))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func allowOrigin(origin string) (bool, error) {
	low := strings.ToLower(origin)
	if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
		strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
		return true, nil
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false, nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false, nil
	}
	host := u.Hostname()
	if strings.HasSuffix(host, "vercel.app") || strings.HasSuffix(host, "web.app") || strings.HasSuffix(host, "firebaseapp.com") {
		return true, nil
	}
	return false, nil
}
