package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/structify/scrapechat/internal/api"
	"github.com/structify/scrapechat/internal/app"
	"github.com/structify/scrapechat/internal/fetch"
	"github.com/structify/scrapechat/internal/session"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	var (
		url            string
		listenAddr     string
		configPath     string
		llmBaseURL     string
		llmModel       string
		llmKey         string
		mongoURI       string
		mongoDB        string
		mongoColl      string
		mongoPartition string
		fetchTimeout   time.Duration
		userAgent      string
		artifactDir    string
		verbose        bool
	)

	flag.StringVar(&url, "url", "", "Run one extraction for this URL and exit; empty starts the HTTP server")
	flag.StringVar(&listenAddr, "listen", os.Getenv("LISTEN_ADDR"), "HTTP listen address (default :8080)")
	flag.StringVar(&configPath, "config", os.Getenv("SCRAPECHAT_CONFIG"), "Path to optional YAML config file")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name; empty skips the model pass")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the chat-completion endpoint")
	flag.StringVar(&mongoURI, "mongo.uri", os.Getenv("MONGO_URI"), "Document store URI; empty keeps sessions in memory")
	flag.StringVar(&mongoDB, "mongo.db", os.Getenv("MONGO_DB"), "Document store database name")
	flag.StringVar(&mongoColl, "mongo.collection", os.Getenv("MONGO_COLLECTION"), "Document store collection name")
	flag.StringVar(&mongoPartition, "mongo.partitionField", os.Getenv("MONGO_PARTITION_FIELD"), "Field keying the session upsert")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", envDuration("FETCH_TIMEOUT"), "Per-page fetch timeout (default 15s)")
	flag.StringVar(&userAgent, "fetch.ua", os.Getenv("FETCH_USER_AGENT"), "User-Agent for page fetches")
	flag.StringVar(&artifactDir, "artifacts.dir", os.Getenv("ARTIFACT_DIR"), "Directory for .txt/.json/.pdf downloads after one-shot runs")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		ListenAddr:          listenAddr,
		LLMBaseURL:          llmBaseURL,
		LLMModel:            llmModel,
		LLMAPIKey:           llmKey,
		MongoURI:            mongoURI,
		MongoDatabase:       mongoDB,
		MongoCollection:     mongoColl,
		MongoPartitionField: mongoPartition,
		FetchTimeout:        fetchTimeout,
		UserAgent:           userAgent,
		ArtifactDir:         artifactDir,
		Verbose:             verbose,
	}
	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file")
		}
		cfg.ApplyFile(fc)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = fetch.DefaultTimeout
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup")
	}

	if url != "" {
		code := runOnce(ctx, application, cfg, url)
		application.Close(context.Background())
		os.Exit(code)
	}

	serve(ctx, application, cfg)
	application.Close(context.Background())
}

// envDuration reads a duration flag default from the environment; unset or
// unparsable values fall back to zero so the flag's own default applies.
func envDuration(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("var", key).Str("value", v).Msg("ignoring invalid duration")
		return 0
	}
	return d
}

// runOnce performs a single extraction turn and prints the result. Pipeline
// failures print the same message a chat user would see and exit non-zero.
func runOnce(ctx context.Context, application *app.App, cfg app.Config, url string) int {
	sess := session.New()
	res, err := application.ProcessURL(ctx, sess, url)
	if err != nil {
		fmt.Fprintln(os.Stderr, app.Render(err))
		return 1
	}
	fmt.Println(res.Structured)

	if cfg.ArtifactDir != "" {
		paths, err := app.WriteArtifacts(cfg.ArtifactDir, "structured", res.Structured)
		if err != nil {
			log.Error().Err(err).Msg("write artifacts")
			return 1
		}
		for _, p := range paths {
			log.Info().Str("path", p).Msg("artifact written")
		}
	}
	return 0
}

func serve(ctx context.Context, application *app.App, cfg app.Config) {
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewServer(application, log.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server")
	}
}
