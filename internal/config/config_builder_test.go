package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_EmptyBuilderAppliesDefaults verifies that an empty build yields
// a config holding only defaults.
func TestBuild_EmptyBuilderAppliesDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultS3Region, cfg.Storage.S3.Region)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Storage.HTTP.Timeout)
	assert.Equal(t, DefaultServerAddress, cfg.Server.Address)
	assert.Equal(t, DefaultTokenIssuer, cfg.Server.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.Server.TokenDuration)
	assert.Equal(t, DefaultReloadInterval, cfg.Server.ReloadInterval)
	assert.Empty(t, cfg.Vault.DatabaseURL)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierConfigWins verifies that the first non-zero value of a
// field is kept.
func TestBuild_EarlierConfigWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Vault: Vault{DatabaseURL: "file:///first.kdbx"}},
		&StructuredConfig{Vault: Vault{DatabaseURL: "file:///second.kdbx", Keyfile: "/k"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "file:///first.kdbx", cfg.Vault.DatabaseURL)
	assert.Equal(t, "/k", cfg.Vault.Keyfile)
}

func TestBuild_Validation(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{S3: S3{AccessKey: "only-access"}}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)

	b = newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Server: Server{TokenDuration: -time.Second}})

	_, err = b.build()
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("KEY_DATABASE_URL", "file:///env.kdbx")

	b := newConfigBuilder().withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "file:///env.kdbx", b.configs[0].Vault.DatabaseURL)
}

func TestWithEnv_RecordsError(t *testing.T) {
	t.Setenv("KEY_SERVER_TOKEN_DURATION", "forever")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_Nil(t *testing.T) {
	b := newConfigBuilder().withFlags(nil)
	assert.Empty(t, b.configs)
}

func TestWithJSON_NotSpecified(t *testing.T) {
	b := newConfigBuilder().withFlags(&StructuredConfig{}).withJSON()
	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder().withFlags(&StructuredConfig{JSONFilePath: "/does/not/exist.json"}).withJSON()
	assert.Error(t, b.err)
}

// TestLoad_Precedence verifies flags > env > JSON.
func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"vault":   map[string]any{"database_url": "file:///json.kdbx", "keyfile": "/json.key", "password": "json-pw"},
		"storage": map[string]any{"cache_dir": "/json-cache"},
		"log":     "error",
	})

	t.Setenv("KEY_CONFIG", path)
	t.Setenv("KEY_DATABASE_URL", "file:///env.kdbx")
	t.Setenv("KEY_KEYFILE", "/env.key")

	flags := &StructuredConfig{Vault: Vault{DatabaseURL: "file:///flag.kdbx"}}

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "file:///flag.kdbx", cfg.Vault.DatabaseURL)
	assert.Equal(t, "/env.key", cfg.Vault.Keyfile)
	assert.Equal(t, "json-pw", cfg.Vault.Password)
	assert.Equal(t, "/json-cache", cfg.Storage.CacheDir)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestRequire(t *testing.T) {
	cfg := &StructuredConfig{}
	assert.ErrorIs(t, cfg.RequireVault(), ErrMissingDatabaseURL)
	assert.ErrorIs(t, cfg.RequireServer(), ErrMissingDatabaseURL)

	cfg.Vault.DatabaseURL = "file:///v.kdbx"
	assert.NoError(t, cfg.RequireVault())
	assert.ErrorIs(t, cfg.RequireServer(), ErrInvalidServerConfigs)

	cfg.Server.TokenSignKey = "sign"
	assert.NoError(t, cfg.RequireServer())
}
