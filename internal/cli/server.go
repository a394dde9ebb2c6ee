package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyberquiz-service/internal/app"
	"cyberquiz-service/internal/config"
	"cyberquiz-service/internal/domain"
	"cyberquiz-service/internal/infra/memory"
	pgstore "cyberquiz-service/internal/infra/postgres"
	redisstore "cyberquiz-service/internal/infra/redis"
	transport "cyberquiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
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

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.TopicLoader = memory.NewStaticTopicLoader(sampleTopics())
	if pool != nil {
		loader = pgstore.NewTopicLoader(pool)
	}

	topicTTL := config.TTLDuration(cfg.Topic.TTL, 10*time.Minute)
	var topics app.TopicRepository
	if redisClient != nil {
		topics = redisstore.NewTopicRepository(redisClient, loader, topicTTL)
	} else {
		topics = memory.NewTopicRepository(loader, topicTTL)
	}

	// Best-available score store: postgres when configured, else redis,
	// else process-local memory (demo mode).
	boardTTL := config.TTLDuration(cfg.Leaderboard.TTL, 0)
	var sink app.ScoreSink
	var board app.LeaderboardSource
	switch {
	case pool != nil:
		store := pgstore.NewScoreStore(pool)
		sink, board = store, store
	case redisClient != nil:
		store := redisstore.NewScoreStore(redisClient, boardTTL)
		sink, board = store, store
	default:
		store := memory.NewScoreStore()
		sink, board = store, store
	}

	service := app.NewQuizService(memory.NewSessionStore(), topics, sink, board)
	wsHandler := transport.NewWSHandler(service)
	boardHandler := transport.NewLeaderboardHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/leaderboard", boardHandler.ServeHTTP)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting cyberquiz service on :%s", finalPort)
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

// sampleTopics provides built-in demo content; production deployments load
// topics from Postgres instead.
func sampleTopics() map[string]domain.Topic {
	return map[string]domain.Topic{
		"phishing-basics": {
			ID:    "phishing-basics",
			Title: "Phishing Basics",
			Questions: []domain.Question{
				{
					ID:            "q1",
					Text:          "Which link is safe to click?",
					Options:       []string{"bank-login.example.ru", "www.yourbank.com", "yourbank.secure-pay.co"},
					CorrectOption: 1,
					Explanation:   "Check the registered domain, not the prefix.",
				},
				{
					ID:            "q2",
					Text:          "An email urges you to act within 10 minutes. What is this?",
					Options:       []string{"Good customer service", "A pressure tactic", "A calendar reminder"},
					CorrectOption: 1,
					Explanation:   "Urgency is the most common phishing lever.",
				},
			},
		},
		"password-hygiene": {
			ID:    "password-hygiene",
			Title: "Password Hygiene",
			Questions: []domain.Question{
				{
					ID:            "q1",
					Text:          "Which password is strongest?",
					Options:       []string{"P@ssw0rd", "correct-horse-battery-staple", "12345678"},
					CorrectOption: 1,
					Explanation:   "Length beats substitution tricks.",
				},
				{
					ID:            "q2",
					Text:          "Your password leaked in a breach. What first?",
					Options:       []string{"Change it everywhere it is reused", "Ignore it", "Add a 1 at the end"},
					CorrectOption: 0,
				},
			},
		},
	}
}
