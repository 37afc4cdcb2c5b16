package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file YAML configuration schema. Nested sections
// map naturally to the flag namespace.
type FileConfig struct {
	Listen string `yaml:"listen"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Mongo struct {
		URI            string `yaml:"uri"`
		Database       string `yaml:"database"`
		Collection     string `yaml:"collection"`
		PartitionField string `yaml:"partitionField"`
	} `yaml:"mongo"`

	Fetch struct {
		// Timeout is a duration string such as "15s".
		Timeout   string `yaml:"timeout"`
		UserAgent string `yaml:"userAgent"`
	} `yaml:"fetch"`

	Artifacts struct {
		Dir string `yaml:"dir"`
	} `yaml:"artifacts"`

	Verbose bool `yaml:"verbose"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &fc, nil
}

// ApplyFile fills unset Config fields from the file. Flags and environment
// take precedence: only zero-valued fields are overwritten.
func (c *Config) ApplyFile(fc *FileConfig) {
	if fc == nil {
		return
	}
	if c.ListenAddr == "" {
		c.ListenAddr = fc.Listen
	}
	if c.LLMBaseURL == "" {
		c.LLMBaseURL = fc.LLM.BaseURL
	}
	if c.LLMModel == "" {
		c.LLMModel = fc.LLM.Model
	}
	if c.LLMAPIKey == "" {
		c.LLMAPIKey = fc.LLM.APIKey
	}
	if c.MongoURI == "" {
		c.MongoURI = fc.Mongo.URI
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = fc.Mongo.Database
	}
	if c.MongoCollection == "" {
		c.MongoCollection = fc.Mongo.Collection
	}
	if c.MongoPartitionField == "" {
		c.MongoPartitionField = fc.Mongo.PartitionField
	}
	if c.FetchTimeout == 0 && fc.Fetch.Timeout != "" {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil {
			c.FetchTimeout = d
		}
	}
	if c.UserAgent == "" {
		c.UserAgent = fc.Fetch.UserAgent
	}
	if c.ArtifactDir == "" {
		c.ArtifactDir = fc.Artifacts.Dir
	}
	if fc.Verbose {
		c.Verbose = true
	}
}
