package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docquiz-service/internal/config"
	"docquiz-service/internal/domain"
	"docquiz-service/internal/generator"
	"docquiz-service/internal/infra/memory"
	pgarchive "docquiz-service/internal/infra/postgres"
	redisinfra "docquiz-service/internal/infra/redis"
	"docquiz-service/internal/session"
	transport "docquiz-service/internal/transport/http"
	"docquiz-service/internal/upload"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz session server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var gen generator.Generator = generator.NewStatic(sampleQuestions())
	if cfg.Generator.URL != "" {
		gen = generator.NewHTTPGenerator(cfg.Generator.URL, config.TTLDuration(cfg.Generator.Timeout, 2*time.Minute))
	} else {
		log.Printf("no generator url configured, serving the built-in sample quiz")
	}

	cacheTTL := config.TTLDuration(cfg.Quiz.CacheTTL, 10*time.Minute)
	if redisClient != nil {
		gen = redisinfra.NewGenerationCache(redisClient, gen, cacheTTL)
	} else {
		gen = memory.NewGenerationCache(gen, cacheTTL)
	}

	validator := upload.NewValidator(cfg.Upload.MaxFileSize, cfg.Upload.AllowedExtensions)
	limits := session.Limits{
		MinQuestionCount: cfg.Quiz.MinQuestions,
		MaxQuestionCount: cfg.Quiz.MaxQuestions,
	}
	newSession := func(string) *session.Controller {
		return session.NewController(gen, validator, limits)
	}

	var store transport.SessionStore
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute), newSession)
	} else {
		store = memory.NewSessionStore(newSession)
	}

	var archive transport.ExportArchiver
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		archive = pgarchive.NewExportArchive(pool)
	}

	wsHandler := transport.NewWSHandler(store, archive)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting docquiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions backs the demo mode when no remote generator is configured.
func sampleQuestions() domain.QuestionSet {
	return domain.QuestionSet{
		{
			Kind:        domain.KindMultipleChoice,
			Prompt:      "Which city is the capital of France?",
			Options:     []string{"Berlin", "Paris", "Rome", "Madrid"},
			Explanation: "Paris has been the French capital since 987.",
		},
		{
			Kind:        domain.KindTrueFalse,
			Prompt:      "True or False: The Seine flows through Paris",
			Explanation: "The Seine crosses Paris from east to west.",
		},
		{
			Kind:   domain.KindShortAnswer,
			Prompt: "Name the river that flows through Paris",
		},
		{
			Kind:    domain.KindFillInTheBlank,
			Prompt:  "The _____ Tower is the most famous landmark of Paris",
			Options: []string{"Eiffel", "Leaning", "Clock", "Water"},
		},
	}
}
