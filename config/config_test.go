package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestValidateAndAddDefaults(t *testing.T) {
	cnf := Configuration{}

	err := cnf.validateAndAddDefaults()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cnf.ProjectName != "Runboard" {
		t.Errorf("Expected default project name, got %s", cnf.ProjectName)
	}
	if cnf.Server.Port != DEFAULT_PORT {
		t.Errorf("Expected default port %s, got %s", DEFAULT_PORT, cnf.Server.Port)
	}
	if !cnf.Mock.UseMock {
		t.Error("Expected mock mode to be forced on without an API base url")
	}
	if cnf.APITimeout() != 30*time.Second {
		t.Errorf("Expected 30s API timeout, got %s", cnf.APITimeout())
	}
	if cnf.RowsLatency() != 1500*time.Millisecond || cnf.ViewsLatency() != 800*time.Millisecond {
		t.Errorf("Unexpected mock latencies %s / %s", cnf.RowsLatency(), cnf.ViewsLatency())
	}
	if cnf.RateLimit.RequestsPerSecond != nil || cnf.RateLimit.Burst != nil {
		t.Error("Expected rate limiting to stay disabled")
	}

	zero := 0
	cnf = Configuration{
		API:  APIConfig{BaseURL: " https://api.example.com/ ", TimeoutMs: 5000},
		Mock: MockDataConfig{RowsLatencyMs: &zero},
	}
	if err := cnf.validateAndAddDefaults(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cnf.Mock.UseMock {
		t.Error("Expected live mode with an API base url")
	}
	if cnf.API.BaseURL != "https://api.example.com" {
		t.Errorf("Expected trimmed base url, got %q", cnf.API.BaseURL)
	}
	if cnf.RowsLatency() != 0 {
		t.Errorf("Expected explicit zero latency to be kept, got %s", cnf.RowsLatency())
	}

	cnf = Configuration{Server: ServerConfig{SSL: true}}
	if err := cnf.validateAndAddDefaults(); err == nil {
		t.Error("Expected an error when ssl is enabled without a domain")
	}

	burst := 10
	cnf = Configuration{RateLimit: RateLimitConfig{Burst: &burst}}
	if err := cnf.validateAndAddDefaults(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cnf.RateLimit.RequestsPerSecond == nil || *cnf.RateLimit.RequestsPerSecond != 5 {
		t.Error("Expected RPS to default to half the burst")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "runboard.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	sampleConfig := Configuration{
		ProjectName: "Temp Project",
		DataSource: DataSourceConfig{
			Dns: "temp-dns",
		},
		API: APIConfig{
			BaseURL: "https://api.example.com",
		},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close()

	os.Setenv("RUNBOARD_PROJECT_NAME", "Env Project")
	defer os.Unsetenv("RUNBOARD_PROJECT_NAME")
	os.Setenv("RUNBOARD_USE_MOCK", "true")
	defer os.Unsetenv("RUNBOARD_USE_MOCK")

	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("loadConfigFromFile failed: %v", err)
	}

	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if loadedConfig.ProjectName != "Env Project" {
		t.Errorf("Expected ProjectName to be 'Env Project', got '%s'", loadedConfig.ProjectName)
	}
	if loadedConfig.DataSource.Dns != "temp-dns" {
		t.Errorf("Expected DataSource.Dns to be 'temp-dns', got '%s'", loadedConfig.DataSource.Dns)
	}
	if !loadedConfig.Mock.UseMock {
		t.Error("Expected RUNBOARD_USE_MOCK to switch on mock mode")
	}
}

func TestInitConfig(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "runboard.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	sampleConfig := Configuration{
		ProjectName: "InitConfig Test",
		Redis: RedisConfig{
			Dns: "localhost:6379",
		},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close()

	if err := InitConfig(tmpFile.Name()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if loadedConfig.ProjectName != "InitConfig Test" {
		t.Errorf("Expected ProjectName to be 'InitConfig Test', got '%s'", loadedConfig.ProjectName)
	}
	if loadedConfig.ViewsCacheTTL() != DEFAULT_VIEWS_CACHE_TTL_SEC*time.Second {
		t.Errorf("Expected default cache ttl, got %s", loadedConfig.ViewsCacheTTL())
	}
}
