package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/structify/scrapechat/internal/extract"
	"github.com/structify/scrapechat/internal/fetch"
	"github.com/structify/scrapechat/internal/llm"
	"github.com/structify/scrapechat/internal/session"
	"github.com/structify/scrapechat/internal/store"
)

// Fetcher retrieves a page body for a URL.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// Restructurer cleans a scraped document through the chat model.
type Restructurer interface {
	Restructure(ctx context.Context, raw string) (string, error)
}

// App wires the pipeline: validate, fetch, extract, restructure, persist.
// Restructurer and Store are optional; a nil Restructurer returns the raw
// structured document and a nil Store skips persistence.
type App struct {
	Cfg          Config
	Fetcher      Fetcher
	Restructurer Restructurer
	Store        store.Store
}

// New builds an App from configuration. The document store connection is
// only attempted when a Mongo URI is configured; otherwise sessions are kept
// in memory for the process lifetime.
func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{
		Cfg:     cfg,
		Fetcher: &fetch.Client{UserAgent: cfg.UserAgent, Timeout: cfg.FetchTimeout},
	}
	if cfg.LLMModel != "" {
		a.Restructurer = &llm.Restructurer{
			Client: llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey),
			Model:  cfg.LLMModel,
		}
	} else {
		log.Warn().Msg("no model configured; returning raw structured documents")
	}
	if cfg.MongoURI != "" {
		st, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, cfg.MongoPartitionField)
		if err != nil {
			return nil, err
		}
		a.Store = st
	} else {
		a.Store = store.NewMemory()
	}
	return a, nil
}

// Close releases the document store connection.
func (a *App) Close(ctx context.Context) {
	if a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}
}

// Result is the outcome of one extraction turn.
type Result struct {
	// Raw is the structured document produced by extraction, before the
	// model pass.
	Raw string
	// Structured is the model-cleaned content presented to the user.
	Structured string
}

// ProcessURL runs one turn: the URL and the outcome, success or rendered
// failure, are both appended to the session and the session is persisted.
// The returned error is kinded; Render turns it into the user-facing string.
func (a *App) ProcessURL(ctx context.Context, sess *session.Session, rawURL string) (Result, error) {
	sess.Append(session.RoleUser, rawURL)

	res, err := a.process(ctx, rawURL)
	if err != nil {
		sess.Append(session.RoleBot, Render(err))
		a.persist(ctx, sess)
		return Result{}, err
	}

	sess.Append(session.RoleBot, res.Structured)
	a.persist(ctx, sess)
	return res, nil
}

func (a *App) process(ctx context.Context, rawURL string) (Result, error) {
	if !strings.HasPrefix(rawURL, "http") {
		return Result{}, &Error{Kind: KindValidation, Err: fmt.Errorf("url %q lacks an http or https prefix", rawURL)}
	}

	body, err := a.Fetcher.Get(ctx, rawURL)
	if err != nil {
		return Result{}, &Error{Kind: KindFetch, Err: err}
	}

	doc, err := extract.FromHTML(body)
	if err != nil {
		return Result{}, &Error{Kind: KindScrape, Err: err}
	}
	raw := doc.Text()
	log.Debug().Str("url", rawURL).Int("blocks", len(doc.Blocks)).Msg("page extracted")

	structured := raw
	if a.Restructurer != nil {
		structured, err = a.Restructurer.Restructure(ctx, raw)
		if err != nil {
			return Result{}, &Error{Kind: KindLLM, Err: err}
		}
	}
	return Result{Raw: raw, Structured: structured}, nil
}

func (a *App) persist(ctx context.Context, sess *session.Session) {
	if a.Store == nil {
		return
	}
	if err := a.Store.SaveSession(ctx, sess); err != nil {
		// Persistence is best-effort; the turn result is already final.
		log.Warn().Err(err).Str("session", sess.ID).Msg("session save failed")
	}
}
