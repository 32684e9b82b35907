package server

import (
	"context"
	"errors"
	"net/http"
	"nexuslink/internal/config"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/handlers/analytics/dashboard"
	"nexuslink/internal/http/handlers/analytics/record_event"
	"nexuslink/internal/http/handlers/link/create_json"
	"nexuslink/internal/http/handlers/link/create_text"
	"nexuslink/internal/http/handlers/link/list"
	"nexuslink/internal/http/handlers/link/redirect"
	"nexuslink/internal/http/handlers/middlewares/auth"
	"nexuslink/internal/http/handlers/middlewares/compress"
	"nexuslink/internal/http/handlers/middlewares/logger"
	"nexuslink/internal/http/handlers/middlewares/metrics"
	"nexuslink/internal/http/handlers/pages"
	"nexuslink/internal/http/handlers/system/code"
	"nexuslink/internal/http/handlers/system/ping"
	"nexuslink/internal/http/handlers/user/register"
	"nexuslink/internal/http/templates"
	appmetrics "nexuslink/internal/metrics"
	"nexuslink/internal/services/recorder"
	redirectsvc "nexuslink/internal/services/redirect"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const rateLimitWindow = time.Minute

type URLShortener interface {
	Create(ctx context.Context, destination string) (models.Link, error)
	ShortURL(code string) string
	GenerateCode(length int) (string, error)
	PingDataBase(ctx context.Context) error
}

type Resolver interface {
	Resolve(ctx context.Context, code string, click redirectsvc.ClickContext) redirectsvc.Outcome
}

type Dashboard interface {
	Load(ctx context.Context) (models.Dashboard, error)
}

type Recorder interface {
	Record(ctx context.Context, params recorder.RecordParams) (models.Event, error)
}

type Authentication interface {
	Register() (models.User, string, time.Time, error)
	Validate(token string) (models.User, error)
}

type Services struct {
	Shortener URLShortener
	Resolver  Resolver
	Dashboard Dashboard
	Recorder  Recorder
	Auth      Authentication
}

type Server struct {
	httpServer *http.Server
	router     *mux.Router
	log        *zerolog.Logger
	cfg        config.Config
	svc        Services
	metrics    *appmetrics.Metrics
	renderer   *templates.Renderer
}

func NewServer(log *zerolog.Logger, cfg config.Config, svc Services, m *appmetrics.Metrics) (*Server, error) {
	if cfg.ServerAddress == "" {
		return nil, errors.New("server address cannot be empty")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if svc.Shortener == nil || svc.Resolver == nil || svc.Dashboard == nil || svc.Recorder == nil || svc.Auth == nil {
		return nil, errors.New("services cannot be nil")
	}
	if m == nil {
		m = appmetrics.New()
	}

	renderer, err := templates.New()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   mux.NewRouter(),
		log:      log,
		cfg:      cfg,
		svc:      svc,
		metrics:  m,
		renderer: renderer,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           s.router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	secure := strings.HasPrefix(s.cfg.BaseURL, "https://")
	limit := s.shortenLimiter()

	s.router.Use(metrics.MiddlewareMetrics(s.metrics))
	s.router.Use(logger.MiddlewareLogging(s.log))
	s.router.Use(compress.MiddlewareCompressing())

	/*
		Служебные маршруты (без auth)
	*/
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/ping", ping.HandlerPing(s.svc.Shortener, s.log)).Methods(http.MethodGet)

	s.router.NotFoundHandler = logger.MiddlewareLogging(s.log)(
		pages.HandlerPage(s.renderer, templates.PageNotFound, http.StatusNotFound, s.log),
	)

	app := s.router.PathPrefix("/").Subrouter()
	app.Use(auth.MiddlewareAuth(s.svc.Auth, s.log, secure))

	// Ссылки
	app.Handle("/", limit(create_text.HandlerCreateText(s.svc.Shortener, s.metrics))).Methods(http.MethodPost)            // 201
	app.Handle("/api/shorten", limit(create_json.HandlerCreateJSON(s.svc.Shortener, s.metrics))).Methods(http.MethodPost) // 201
	app.HandleFunc("/r/{code}", redirect.HandlerRedirect(s.svc.Resolver, s.metrics)).Methods(http.MethodGet)              // 302
	app.HandleFunc("/r/", redirect.HandlerRedirect(s.svc.Resolver, s.metrics)).Methods(http.MethodGet)                    // 302 на главную
	app.HandleFunc("/api/links", list.HandlerListLinks(s.svc.Dashboard, s.log)).Methods(http.MethodGet)                   // 200
	app.HandleFunc("/api/code", code.HandlerGenerateCode(s.svc.Shortener)).Methods(http.MethodGet)                        // 200

	// Аналитика
	app.HandleFunc("/api/dashboard", dashboard.HandlerDashboardJSON(s.svc.Dashboard, s.log)).Methods(http.MethodGet)         // 200
	app.HandleFunc("/dashboard", dashboard.HandlerDashboardPage(s.svc.Dashboard, s.renderer, s.log)).Methods(http.MethodGet) // 200
	app.HandleFunc("/api/events", record_event.HandlerRecordEvent(s.svc.Recorder, s.metrics)).Methods(http.MethodPost)       // 201

	// Пользователь
	app.HandleFunc("/api/user/register", register.HandlerRegister(s.svc.Auth, s.log, secure)).Methods(http.MethodPost) // 201

	// Страницы
	for path, page := range map[string]string{
		"/":          templates.PageHome,
		"/features":  templates.PageFeatures,
		"/analytics": templates.PageAnalytics,
		"/about":     templates.PageAbout,
		"/login":     templates.PageLogin,
		"/register":  templates.PageRegister,
	} {
		app.HandleFunc(path, pages.HandlerPage(s.renderer, page, http.StatusOK, s.log)).Methods(http.MethodGet)
	}
	app.HandleFunc(redirectsvc.NotFoundPath, pages.HandlerPage(s.renderer, templates.PageNotFound, http.StatusNotFound, s.log)).Methods(http.MethodGet)
}

// shortenLimiter ограничивает создание ссылок с одного IP; 0 отключает лимит
func (s *Server) shortenLimiter() func(http.Handler) http.Handler {
	if s.cfg.RateLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(s.cfg.RateLimit, rateLimitWindow)
}

func (s *Server) Start(ctx context.Context) error {
	s.log.Info().Str("address", s.cfg.ServerAddress).Msg("Starting server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
