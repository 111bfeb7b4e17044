// Package server provides the HTTP REST API for the fusion engine.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/b2bfusion/fusion-engine/internal/config"
	"github.com/b2bfusion/fusion-engine/internal/db"
	"github.com/b2bfusion/fusion-engine/internal/embedding"
	"github.com/b2bfusion/fusion-engine/internal/fusion"
	"github.com/b2bfusion/fusion-engine/internal/llm"
	"github.com/b2bfusion/fusion-engine/internal/server/middleware"
	"github.com/b2bfusion/fusion-engine/internal/taxonomy"
	"github.com/b2bfusion/fusion-engine/internal/types"
)

// FragmentStore persists uploaded fragments.
type FragmentStore interface {
	InsertFragment(ctx context.Context, f *types.Fragment) error
}

// ProfileReader reads persisted company profiles.
type ProfileReader interface {
	GetCompanyProfile(ctx context.Context, companyID string) (*types.CompanyProfile, error)
}

// MappingReader reads persisted industry mappings.
type MappingReader interface {
	GetIndustryMapping(ctx context.Context, companyID string) (*types.IndustryMapping, error)
}

// ProfileGenerator runs the fusion pipeline for one company.
type ProfileGenerator interface {
	Run(ctx context.Context, companyID string) (*types.CompanyProfile, *types.IndustryMapping, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	db         *db.DB
	llmClient  llm.Client

	fragments FragmentStore
	profiles  ProfileReader
	mappings  MappingReader
	generator ProfileGenerator
	embedder  embedding.Provider

	authHandler *AuthHandler
	jwtService  *JWTService
}

// New creates a new server instance. Startup is fail-fast: a missing
// taxonomy file, an unreachable database, or an invalid credential
// configuration aborts here rather than at first request.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	embedder, err := embedding.Global(ctx, cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	entries, err := taxonomy.LoadCSV(cfg.TaxonomyCSV)
	if err != nil {
		database.Close()
		return nil, err
	}
	index, err := taxonomy.BuildIndex(ctx, entries, embedder)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to build taxonomy index: %w", err)
	}
	log.Printf("taxonomy index ready: %d entries", index.Len())

	matcher := taxonomy.NewMatcher(index, embedder)
	generator := fusion.NewGenerator(
		fusion.NewAggregator(database),
		fusion.NewExtractor(client, cfg.MaxContextChars),
		matcher,
		database,
		database,
		fusion.GeneratorOptions{
			ExtractTimeout:  cfg.ExtractTimeout,
			ClassifyTimeout: cfg.ClassifyTimeout,
		},
	)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	jwtService := NewJWTService(jwtConfig)

	operator, err := config.NewOperatorConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create operator config: %w", err)
	}

	s := &Server{
		db:          database,
		llmClient:   client,
		fragments:   database,
		profiles:    database,
		mappings:    database,
		generator:   generator,
		embedder:    embedder,
		jwtService:  jwtService,
		authHandler: NewAuthHandler(operator, jwtService),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.router())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Generation holds the connection open
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// router wires routes. Uploads and profile generation mutate state and
// require the operator token; reads and health are open.
func (s *Server) router() *http.ServeMux {
	mux := http.NewServeMux()

	requireOperator := middleware.RequireOperator(s.jwtService.AsTokenValidator())

	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /api/website/upload", requireOperator(http.HandlerFunc(s.handleUploadFor(types.SourceWeb))))
	mux.Handle("POST /api/product/upload", requireOperator(http.HandlerFunc(s.handleUploadFor(types.SourceProduct))))
	mux.Handle("POST /api/job/upload", requireOperator(http.HandlerFunc(s.handleUploadFor(types.SourceJob))))
	mux.Handle("POST /api/news/upload", requireOperator(http.HandlerFunc(s.handleUploadFor(types.SourceNews))))

	mux.Handle("POST /api/profile/generate", requireOperator(http.HandlerFunc(s.handleGenerateProfile)))
	mux.HandleFunc("GET /api/profile/{company_id}", s.handleGetProfile)
	mux.HandleFunc("GET /api/industry/{company_id}", s.handleGetIndustry)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}
