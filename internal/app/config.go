package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// HTTP surface; empty disables the server.
	ListenAddr string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Document store; empty MongoURI disables persistence beyond memory.
	MongoURI            string
	MongoDatabase       string
	MongoCollection     string
	MongoPartitionField string

	// Fetch
	FetchTimeout time.Duration
	UserAgent    string

	// Download artifacts written after one-shot runs; empty disables.
	ArtifactDir string

	Verbose bool
}
