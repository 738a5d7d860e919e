package config

import (
	"os"
	"path/filepath"
	"testing"

	internal "github.com/ZanzyTHEbar/recent-documents/rdocs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	tempDir, err := os.MkdirTemp("", "rdocs-config-test-*")
	require.NoError(suite.T(), err)
	suite.tempDir = tempDir

	err = os.Chdir(tempDir)
	require.NoError(suite.T(), err)
}

func (suite *ConfigTestSuite) TearDownTest() {
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *ConfigTestSuite) writeConfig(name, content string) string {
	path := filepath.Join(suite.tempDir, name)
	require.NoError(suite.T(), os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	cfg, err := LoadConfig("")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "info", cfg.Log.Level)
	assert.Equal(suite.T(), "dateModifiedValue", cfg.Engine.SortField)
	assert.True(suite.T(), cfg.Engine.SortDescending)
	assert.Equal(suite.T(), SourceGenerator, cfg.Source.Type)
	assert.True(suite.T(), cfg.Source.Fallback)
	assert.Equal(suite.T(), internal.DefaultSearchQueryText, cfg.Source.Search.QueryText)
	assert.Equal(suite.T(), internal.DefaultSearchRowLimit, cfg.Source.Search.RowLimit)
	assert.Equal(suite.T(), 3, cfg.Source.Search.MaxAttempts)
	assert.Equal(suite.T(), internal.DefaultDatabaseDSN, cfg.Source.Database.DSN)
	assert.Equal(suite.T(), 10, cfg.Generator.Count)
	assert.Equal(suite.T(), "https://google.com", cfg.Generator.Link)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	configFile := suite.writeConfig("config.yaml", `
log:
  level: debug
engine:
  sortField: name
  sortDescending: false
source:
  type: search
  fallback: false
  search:
    siteURL: "https://contoso.sharepoint.com/sites/docs"
    queryText: "IsDocument:1"
    rowLimit: 25
    timeoutSeconds: 5
    maxAttempts: 2
  database:
    dsn: "file:test.db"
    limit: 7
generator:
  count: 3
  seed: 42
  link: "https://example.com"
`)

	cfg, err := LoadConfig(configFile)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "debug", cfg.Log.Level)
	assert.Equal(suite.T(), "name", cfg.Engine.SortField)
	assert.False(suite.T(), cfg.Engine.SortDescending)
	assert.Equal(suite.T(), SourceSearch, cfg.Source.Type)
	assert.False(suite.T(), cfg.Source.Fallback)
	assert.Equal(suite.T(), "https://contoso.sharepoint.com/sites/docs", cfg.Source.Search.SiteURL)
	assert.Equal(suite.T(), "IsDocument:1", cfg.Source.Search.QueryText)
	assert.Equal(suite.T(), 25, cfg.Source.Search.RowLimit)
	assert.Equal(suite.T(), 5, cfg.Source.Search.TimeoutSeconds)
	assert.Equal(suite.T(), 2, cfg.Source.Search.MaxAttempts)
	assert.Equal(suite.T(), "file:test.db", cfg.Source.Database.DSN)
	assert.Equal(suite.T(), 7, cfg.Source.Database.Limit)
	assert.Equal(suite.T(), 3, cfg.Generator.Count)
	assert.Equal(suite.T(), uint64(42), cfg.Generator.Seed)
	assert.Equal(suite.T(), "https://example.com", cfg.Generator.Link)
}

func (suite *ConfigTestSuite) TestLoadConfigFromEnvironment() {
	suite.T().Setenv("GENERATOR_COUNT", "4")
	suite.T().Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), 4, cfg.Generator.Count)
	assert.Equal(suite.T(), "warn", cfg.Log.Level)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidFile() {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedFile() {
	configFile := suite.writeConfig("malformed.yaml", `
engine:
  sortField: name
  invalid_yaml: [unclosed bracket
`)

	cfg, err := LoadConfig(configFile)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigRejectsUnknownSource() {
	configFile := suite.writeConfig("config.yaml", `
source:
  type: carrier-pigeon
`)

	cfg, err := LoadConfig(configFile)

	assert.ErrorContains(suite.T(), err, "unknown source type")
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigSearchNeedsSiteURL() {
	configFile := suite.writeConfig("config.yaml", `
source:
  type: search
`)

	cfg, err := LoadConfig(configFile)

	assert.ErrorContains(suite.T(), err, "siteURL")
	assert.Nil(suite.T(), cfg)
}

// BenchmarkLoadConfig benchmarks config loading performance
func BenchmarkLoadConfig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		cfg, err := LoadConfig("")
		if err != nil {
			b.Fatal(err)
		}
		_ = cfg
	}
}
