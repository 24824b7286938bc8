package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/some/path", StoreTimeout: 10 * time.Second},
		Auth:   AuthConfig{TokenDuration: 24 * time.Hour},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true}, // case insensitive
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.BasePath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data base path cannot be empty")
}

func TestValidate_TokenDuration(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.TokenDuration = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token duration")
}

func TestExpandDataPath_EmptyUsesDefault(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.expandDataPath())

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "mtpt", "data"), cfg.Data.BasePath)
}

func TestExpandDataPath_TildeExpansion(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "~/my-data"}}

	require.NoError(t, cfg.expandDataPath())

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "my-data"), cfg.Data.BasePath)
}

func TestExpandDataPath_AbsolutePath(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "/absolute/path/to/data"}}

	require.NoError(t, cfg.expandDataPath())
	assert.Equal(t, "/absolute/path/to/data", cfg.Data.BasePath)
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "/data"}}

	assert.Equal(t, filepath.Join("/data", "store"), cfg.StorePath())
	assert.Equal(t, filepath.Join("/data", "auth.key"), cfg.AuthKeyPath())
}

func TestGetConfigValue_Precedence(t *testing.T) {
	result := getConfigValue("flag-value", "ENV_KEY", "default-value")
	assert.Equal(t, "flag-value", result)

	os.Setenv("TEST_ENV_KEY", "env-value") //nolint:errcheck // Test setup
	defer os.Unsetenv("TEST_ENV_KEY")      //nolint:errcheck // Test cleanup

	result = getConfigValue("", "TEST_ENV_KEY", "default-value")
	assert.Equal(t, "env-value", result)

	result = getConfigValue("", "NONEXISTENT_KEY", "default-value")
	assert.Equal(t, "default-value", result)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b , "))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("", "NONEXISTENT_DURATION", "24h")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, d)

	d, err = parseDurationValue("15m", "NONEXISTENT_DURATION", "24h")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	_, err = parseDurationValue("not-a-duration", "NONEXISTENT_DURATION", "24h")
	assert.Error(t, err)
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `# Test env file
ENV=staging
LOG_LEVEL=debug
ADMIN_CODES=alpha,beta
QUOTED_VALUE="some value"
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	for _, key := range []string{"ENV", "LOG_LEVEL", "ADMIN_CODES", "QUOTED_VALUE"} {
		os.Unsetenv(key) //nolint:errcheck // Test cleanup
	}
	defer func() {
		for _, key := range []string{"ENV", "LOG_LEVEL", "ADMIN_CODES", "QUOTED_VALUE"} {
			os.Unsetenv(key) //nolint:errcheck // Test cleanup
		}
	}()

	require.NoError(t, loadEnvFile(envFile))

	assert.Equal(t, "staging", os.Getenv("ENV"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "alpha,beta", os.Getenv("ADMIN_CODES"))
	assert.Equal(t, "some value", os.Getenv("QUOTED_VALUE"))
}

func TestLoadEnvFile_InvalidFormat(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `VALID_KEY=valid_value
INVALID LINE WITHOUT EQUALS
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	err := loadEnvFile(envFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	assert.Error(t, loadEnvFile("/nonexistent/file/.env"))
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	os.Setenv("TEST_VAR", "original-value") //nolint:errcheck // Test setup
	defer os.Unsetenv("TEST_VAR")           //nolint:errcheck // Test cleanup

	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(`TEST_VAR=new-value`), 0o644))

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "original-value", os.Getenv("TEST_VAR"))
}
