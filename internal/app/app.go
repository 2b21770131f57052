package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/relasjon/crm/config"
	"github.com/relasjon/crm/internal/database"
	"github.com/relasjon/crm/internal/domain"
	httpHandler "github.com/relasjon/crm/internal/http"
	"github.com/relasjon/crm/internal/http/middleware"
	"github.com/relasjon/crm/internal/migrations"
	"github.com/relasjon/crm/internal/policy"
	"github.com/relasjon/crm/internal/repository"
	"github.com/relasjon/crm/internal/service"
	"github.com/relasjon/crm/pkg/cache"
	"github.com/relasjon/crm/pkg/logger"
	"github.com/relasjon/crm/pkg/ratelimiter"
	"github.com/relasjon/crm/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	Addr() string

	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	InitTracing() error
	InitDB() error
	InitCache() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
}

type repositories struct {
	customers      domain.CustomerRepository
	contacts       domain.ContactRepository
	deals          domain.DealRepository
	communications domain.CommunicationRepository
	profiles       domain.ProfileRepository
	search         domain.SearchRepository
	dashboard      domain.DashboardRepository
}

type services struct {
	customers      *service.CustomerService
	contacts       *service.ContactService
	deals          *service.DealService
	communications *service.CommunicationService
	profiles       *service.ProfileService
	search         *service.SearchService
	dashboard      *service.DashboardService
}

// App encapsulates the application dependencies and configuration
type App struct {
	config    *config.Config
	logger    logger.Logger
	db        *sql.DB
	exporters *tracing.Exporters
	policies  *policy.Engine

	pages       *cache.InMemoryCache
	publisher   *service.RedisPublisher
	invalidator *service.PageInvalidator

	repos    repositories
	services services
	signups  *ratelimiter.Limiter

	mux      *http.ServeMux
	server   *http.Server
	listener net.Listener
	serverMu sync.RWMutex
	// closed once the server has been created
	serverStarted chan struct{}

	shutdownTimeout time.Duration
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB uses db instead of connecting, and skips migrations
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	a := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		policies:        policy.Default(),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownTimeout: 30 * time.Second,
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *App) InitTracing() error {
	exporters, err := tracing.InitTracing(&a.config.Tracing, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.exporters = exporters
	return nil
}

func (a *App) InitDB() error {
	if a.db != nil {
		a.logger.Info("Using provided database connection")
		return nil
	}

	ctx, cancel := context.WithTimeout(a.shutdownCtx, 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, &a.config.Database, a.config.Tracing.Enabled)
	if err != nil {
		return err
	}

	// Row security only holds for a role that cannot bypass it
	if err := database.RejectsRowSecurityBypass(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	if err := migrations.NewManager(a.logger).RunMigrations(ctx, a.config, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.db = db
	a.logger.WithFields(map[string]interface{}{
		"host":     a.config.Database.Host,
		"database": a.config.Database.DBName,
	}).Info("Database connection established")
	return nil
}

// InitCache sets up the page cache and, when configured, the redis
// channel that fans invalidation hints out to the other instances.
func (a *App) InitCache() error {
	a.pages = cache.NewInMemoryCache(a.config.Cache.CleanupInterval)

	var publisher service.Publisher
	if a.config.Cache.RedisURL != "" {
		p, err := service.NewRedisPublisher(a.config.Cache.RedisURL, a.config.Cache.RedisChannel)
		if err != nil {
			return err
		}
		a.publisher = p
		publisher = p
	}

	a.invalidator = service.NewPageInvalidator(a.pages, publisher, a.logger)

	if a.publisher != nil {
		go a.publisher.Listen(a.shutdownCtx, a.invalidator)
		a.logger.WithField("channel", a.config.Cache.RedisChannel).Info("Listening for cache invalidation hints")
	}
	return nil
}

func (a *App) InitRepositories() error {
	if a.db == nil {
		return errors.New("database is not initialized")
	}
	a.repos = repositories{
		customers:      repository.NewCustomerRepository(a.db, a.policies),
		contacts:       repository.NewContactRepository(a.db, a.policies),
		deals:          repository.NewDealRepository(a.db, a.policies),
		communications: repository.NewCommunicationRepository(a.db, a.policies),
		profiles:       repository.NewProfileRepository(a.db, a.policies),
		search:         repository.NewSearchRepository(a.db, a.policies),
		dashboard:      repository.NewDashboardRepository(a.db, a.policies),
	}
	return nil
}

func (a *App) InitServices() error {
	if a.repos.customers == nil {
		return errors.New("repositories are not initialized")
	}

	deps := service.Deps{
		Identities: service.ContextIdentityProvider{},
		Logger:     a.logger,
		Presenter: domain.ErrorPresenter{
			Locale:      a.config.Locale,
			Development: a.config.IsDevelopment(),
		},
	}
	if a.invalidator != nil {
		deps.Invalidator = a.invalidator
	}

	var pages cache.Cache
	if a.pages != nil {
		pages = a.pages
	}

	a.services = services{
		customers:      service.NewCustomerService(a.repos.customers, deps),
		contacts:       service.NewContactService(a.repos.contacts, deps),
		deals:          service.NewDealService(a.repos.deals, a.repos.contacts, deps),
		communications: service.NewCommunicationService(a.repos.communications, a.repos.contacts, deps),
		profiles:       service.NewProfileService(a.repos.profiles, deps),
		search:         service.NewSearchService(a.repos.search, deps),
		dashboard:      service.NewDashboardService(a.repos.dashboard, pages, a.config.Cache.PageTTL, deps),
	}
	return nil
}

func (a *App) InitHandlers() error {
	if a.services.customers == nil {
		return errors.New("services are not initialized")
	}

	httpHandler.NewCustomerHandler(a.services.customers, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewContactHandler(a.services.contacts, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewDealHandler(a.services.deals, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewCommunicationHandler(a.services.communications, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewProfileHandler(a.services.profiles, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewSearchHandler(a.services.search, a.services.dashboard, a.logger).RegisterRoutes(a.mux)
	a.mux.HandleFunc("/healthz", a.handleHealth)

	if a.config.Security.SignupAttempts > 0 && a.signups == nil {
		a.signups = ratelimiter.New(a.config.Security.SignupAttempts, a.config.Security.SignupWindow)
	}
	return nil
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if err := a.db.PingContext(r.Context()); err != nil {
		a.logger.Warn(fmt.Sprintf("Health check failed: %v", err))
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status, "version": a.config.Version})
}

// Handler returns the mux wrapped in the request middleware chain
func (a *App) Handler() http.Handler {
	auth := middleware.NewAuthMiddleware(
		[]byte(a.config.Security.JWTSecret),
		a.config.Security.JWTIssuer,
		a.config.Security.JWTAudience,
	)

	var handler http.Handler = auth.Authenticate(a.mux)
	if a.signups != nil {
		handler = middleware.RateLimit(a.signups, "/api/auth.signup")(handler)
	}
	handler = a.gracefulShutdownMiddleware(handler)
	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}
	return middleware.CORSMiddleware(a.config.Server.CORSOrigin)(handler)
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"tracing", a.InitTracing},
		{"database", a.InitDB},
		{"cache", a.InitCache},
		{"repositories", a.InitRepositories},
		{"services", a.InitServices},
		{"handlers", a.InitHandlers},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			a.logger.WithField("step", step.name).Error(fmt.Sprintf("Initialization failed: %v", err))
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Start serves HTTP until the server is shut down
func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	a.serverMu.Lock()
	a.listener = listener
	a.server = &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := a.server
	close(a.serverStarted)
	a.serverMu.Unlock()

	a.logger.WithField("address", listener.Addr().String()).Info("Server starting")

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr is the address the server listens on, empty before Start
func (a *App) Addr() string {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Shutdown stops accepting requests, waits for in-flight ones and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")
	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	var shutdownErr error
	if server != nil {
		timeout := a.shutdownTimeout
		if deadline, ok := ctx.Deadline(); ok {
			if remaining := time.Until(deadline); remaining < timeout {
				timeout = remaining
			}
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		a.logger.WithField("active_requests", a.GetActiveRequestCount()).Info("Stopping HTTP server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErr = fmt.Errorf("http server shutdown: %w", err)
		}

		done := make(chan struct{})
		go func() {
			a.requestWg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-shutdownCtx.Done():
			a.logger.WithField("active_requests", a.GetActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
		}
	}

	if err := a.cleanupResources(); err != nil {
		a.logger.Error(fmt.Sprintf("Error during resource cleanup: %v", err))
		shutdownErr = errors.Join(shutdownErr, err)
	}

	if shutdownErr != nil {
		a.logger.Error(fmt.Sprintf("Graceful shutdown completed with errors: %v", shutdownErr))
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

func (a *App) cleanupResources() error {
	var errs []error

	// Pending last-login writes hold the pool
	if a.services.profiles != nil {
		a.services.profiles.Wait()
	}
	if a.pages != nil {
		a.pages.Stop()
	}
	if a.signups != nil {
		a.signups.Stop()
	}
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	errs = append(errs, a.exporters.Close())

	return errors.Join(errs...)
}

func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart blocks until Start has created the server or ctx is done
func (a *App) WaitForServerStart(ctx context.Context) bool {
	select {
	case <-a.serverStarted:
		return true
	case <-ctx.Done():
		return false
	}
}

func (a *App) GetConfig() *config.Config { return a.config }

func (a *App) GetLogger() logger.Logger { return a.logger }

func (a *App) GetMux() *http.ServeMux { return a.mux }

func (a *App) GetDB() *sql.DB { return a.db }

func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

func (a *App) GetActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks in-flight requests and refuses new ones once shutdown began
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			w.Header().Set("Connection", "close")
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		atomic.AddInt64(&a.activeRequests, 1)
		a.requestWg.Add(1)
		defer func() {
			atomic.AddInt64(&a.activeRequests, -1)
			a.requestWg.Done()
		}()

		next.ServeHTTP(w, r)
	})
}
