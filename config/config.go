/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT                 = "5001"
	DEFAULT_API_TIMEOUT_MS       = 30000
	DEFAULT_ROWS_LATENCY_MS      = 1500
	DEFAULT_VIEWS_LATENCY_MS     = 800
	DEFAULT_VIEWS_CACHE_TTL_SEC  = 300
	DEFAULT_RATE_LIMIT_CLEANUP_S = 10800
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL    bool   `json:"ssl" envconfig:"RUNBOARD_SERVER_SSL"`
	Domain string `json:"domain" envconfig:"RUNBOARD_SERVER_SSL_DOMAIN"`
	Email  string `json:"ssl_email" envconfig:"RUNBOARD_SERVER_SSL_EMAIL"`
	Port   string `json:"port" envconfig:"RUNBOARD_SERVER_PORT"`
}

// DataSourceConfig points the server at Postgres. When Dns is empty the server answers
// from the built-in fixtures.
type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"RUNBOARD_DATA_SOURCE_DNS"`
}

type RedisConfig struct {
	Dns         string `json:"dns" envconfig:"RUNBOARD_REDIS_DNS"`
	CacheTTLSec int    `json:"cache_ttl_sec" envconfig:"RUNBOARD_REDIS_CACHE_TTL_SEC"`
}

// APIConfig describes the remote dashboard API the client side talks to.
type APIConfig struct {
	BaseURL    string `json:"base_url" envconfig:"RUNBOARD_API_BASE_URL"`
	TimeoutMs  int    `json:"timeout_ms" envconfig:"RUNBOARD_API_TIMEOUT"`
	MaxRetries int    `json:"max_retries" envconfig:"RUNBOARD_API_MAX_RETRIES"`
}

// MockDataConfig switches data access to in-memory fixtures. Latencies are pointers so
// that 0 can be configured explicitly.
type MockDataConfig struct {
	UseMock        bool `json:"use_mock" envconfig:"RUNBOARD_USE_MOCK"`
	RowsLatencyMs  *int `json:"rows_latency_ms" envconfig:"RUNBOARD_MOCK_ROWS_LATENCY_MS"`
	ViewsLatencyMs *int `json:"views_latency_ms" envconfig:"RUNBOARD_MOCK_VIEWS_LATENCY_MS"`
	// FakeRows adds generated pipelines and projects on top of the fixtures.
	FakeRows int `json:"fake_rows" envconfig:"RUNBOARD_MOCK_FAKE_ROWS"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"RUNBOARD_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"RUNBOARD_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"RUNBOARD_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type Configuration struct {
	ProjectName string           `json:"project_name" envconfig:"RUNBOARD_PROJECT_NAME"`
	Server      ServerConfig     `json:"server"`
	DataSource  DataSourceConfig `json:"data_source"`
	Redis       RedisConfig      `json:"redis"`
	API         APIConfig        `json:"api"`
	Mock        MockDataConfig   `json:"mock"`
	RateLimit   RateLimitConfig  `json:"rate_limit"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("runboard", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called runboard.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Runboard"
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)
	cnf.API.BaseURL = strings.TrimRight(strings.TrimSpace(cnf.API.BaseURL), "/")

	if cnf.Server.SSL && (cnf.Server.Domain == "" || cnf.Server.Email == "") {
		log.Println("Error: SSL is enabled but the domain or email is empty.")
		return errors.New("ssl domain and email are required when ssl is enabled")
	}

	if cnf.Mock.FakeRows < 0 {
		return errors.New("mock fake_rows cannot be negative")
	}

	if cnf.API.MaxRetries < 0 {
		return errors.New("api max_retries cannot be negative")
	}

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.API.TimeoutMs <= 0 {
		cnf.API.TimeoutMs = DEFAULT_API_TIMEOUT_MS
	}

	// Without a remote API there is nothing to talk to but the fixtures.
	if cnf.API.BaseURL == "" && !cnf.Mock.UseMock {
		log.Println("Warning: API base url is empty. Using mock data.")
		cnf.Mock.UseMock = true
	}

	if cnf.Mock.RowsLatencyMs == nil {
		latency := DEFAULT_ROWS_LATENCY_MS
		cnf.Mock.RowsLatencyMs = &latency
	}
	if cnf.Mock.ViewsLatencyMs == nil {
		latency := DEFAULT_VIEWS_LATENCY_MS
		cnf.Mock.ViewsLatencyMs = &latency
	}

	if cnf.Redis.CacheTTLSec <= 0 {
		cnf.Redis.CacheTTLSec = DEFAULT_VIEWS_CACHE_TTL_SEC
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		defaultRPS := float64(*cnf.RateLimit.Burst) / 2
		cnf.RateLimit.RequestsPerSecond = &defaultRPS
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", defaultRPS)
	}

	if cnf.RateLimit.CleanupIntervalSec == nil {
		defaultCleanup := DEFAULT_RATE_LIMIT_CLEANUP_S
		cnf.RateLimit.CleanupIntervalSec = &defaultCleanup
	}

	return nil
}

func (cnf *Configuration) APITimeout() time.Duration {
	return time.Duration(cnf.API.TimeoutMs) * time.Millisecond
}

func (cnf *Configuration) RowsLatency() time.Duration {
	return millis(cnf.Mock.RowsLatencyMs)
}

func (cnf *Configuration) ViewsLatency() time.Duration {
	return millis(cnf.Mock.ViewsLatencyMs)
}

func (cnf *Configuration) ViewsCacheTTL() time.Duration {
	return time.Duration(cnf.Redis.CacheTTLSec) * time.Second
}

func millis(ms *int) time.Duration {
	if ms == nil || *ms < 0 {
		return 0
	}
	return time.Duration(*ms) * time.Millisecond
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
