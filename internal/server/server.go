package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"grievancehub/internal/config"
	"grievancehub/internal/handler"
	"grievancehub/internal/middleware"
	"grievancehub/internal/repository"
	"grievancehub/internal/service"
	"grievancehub/internal/store"
	"grievancehub/pkg/blobstore"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	log    *zap.Logger
	router *gin.Engine
	mongo  *mongo.Client
}

// Repositories groups the persistence layer.
type Repositories struct {
	Users      repository.IUserRepository
	Grievances repository.IGrievanceRepository
}

// Services groups the business layer.
type Services struct {
	Auth      *service.AuthService
	Grievance *service.GrievanceService
	System    *service.SystemService
	Feed      *service.Hub
}

// Handlers groups the HTTP layer.
type Handlers struct {
	Auth      *handler.AuthHandler
	Grievance *handler.GrievanceHandler
	Admin     *handler.AdminHandler
	System    *handler.SystemHandler
}

// New creates a new server instance
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	backend, mongoClient, err := initBackend(cfg)
	if err != nil {
		return nil, err
	}

	recordStore := store.New(backend, log)
	repos := InitRepositories(recordStore, log)
	services := InitServices(cfg, recordStore, repos, log)
	handlers := InitHandlers(services, log)

	router := setupRouter(handlers, repos, log)

	return &Server{
		cfg:    cfg,
		log:    log,
		router: router,
		mongo:  mongoClient,
	}, nil
}

// initBackend builds the blob backend selected by store.backend. The mongo
// client is returned so Close can disconnect it.
func initBackend(cfg *config.Config) (blobstore.Backend, *mongo.Client, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return blobstore.NewFileBackend(cfg.Store.DataDir), nil, nil
	case config.BackendMemory:
		return blobstore.NewMemoryBackend(), nil, nil
	case config.BackendMongo:
		client, err := Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		return blobstore.NewMongoBackend(db, cfg.Mongo.Collection), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Connect establishes the MongoDB client used by the mongo store backend.
func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

func InitRepositories(st *store.RecordStore, log *zap.Logger) *Repositories {
	return &Repositories{
		Users:      repository.NewUserRepository(st, log),
		Grievances: repository.NewGrievanceRepository(st, log),
	}
}

func InitServices(cfg *config.Config, st *store.RecordStore, repos *Repositories, log *zap.Logger) *Services {
	feed := service.NewHub()
	return &Services{
		Auth:      service.NewAuthService(repos.Users, cfg, log),
		Grievance: service.NewGrievanceService(repos.Grievances, repos.Users, feed, log),
		System:    service.NewSystemService(st, log),
		Feed:      feed,
	}
}

func InitHandlers(s *Services, log *zap.Logger) *Handlers {
	return &Handlers{
		Auth:      handler.NewAuthHandler(s.Auth),
		Grievance: handler.NewGrievanceHandler(s.Grievance),
		Admin:     handler.NewAdminHandler(s.Grievance, s.Feed, log),
		System:    handler.NewSystemHandler(s.System),
	}
}

// Close disconnects the mongo client when one is in use.
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	s.log.Info("grievance hub listening", zap.String("addr", s.cfg.Server.Address()))
	return s.router.Run(s.cfg.Server.Address())
}

// Router exposes the configured engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func setupRouter(h *Handlers, repos *Repositories, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.SetTrustedProxies(nil)

	api := r.Group("/api")

	api.GET("/healthz", h.System.Health)
	api.GET("/version", h.System.Version)
	api.GET("/system-status", h.System.Status)
	api.POST("/setup", h.System.Setup)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	grievances := api.Group("/grievances")
	{
		grievances.POST("", h.Grievance.Create)
		grievances.GET("", h.Grievance.ListForUser)
	}

	// Admin routes gate on the role of the client-claimed identity.
	admin := api.Group("/admin")
	admin.Use(middleware.Identity(repos.Users), middleware.RequireAdmin())
	{
		admin.GET("/grievances", h.Admin.ListAll)
		admin.POST("/grievances/respond", h.Admin.Respond)
		admin.GET("/grievances/feed", h.Admin.Feed)
	}

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
