package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	// Backend selects "mongo" (default) or "memory" (single process, volatile;
	// useful for local development without a database).
	Backend  string `yaml:"backend"`
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKey       string `yaml:"access_key"`
	SecretKey       string `yaml:"secret_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
	DisableChecksum bool   `yaml:"disable_checksum"`
}

type AIConfig struct {
	// The API key comes from the environment only (GEMINI_API_KEY).
	Model string `yaml:"model"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	S3      *S3Config     `yaml:"s3"`
	AI      AIConfig      `yaml:"ai"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":5001"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "mongo"
	}
	if c.Storage.Database == "" {
		c.Storage.Database = "flowboard"
	}
}

// applyEnv lets deployment environments override the file; secrets only ever
// come from here.
func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = fmt.Sprintf(":%s", port)
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		c.Storage.URI = uri
	}
}
