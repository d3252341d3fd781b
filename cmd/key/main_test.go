package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/codec/kdbx"
	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/utils"
	"github.com/MKhiriev/go-key/internal/vault"
)

const testPassword = "correct horse"

// writeTestVault stores a database with github {alice/secret1} and bank
// {otp} at the root and returns its file:// URL.
func writeTestVault(t *testing.T) string {
	t.Helper()

	github := vault.NewEntry(uuid.New(), "github")
	github.SetField(vault.FieldUserName, vault.Unprotected("alice"))
	github.SetField(vault.FieldPassword, vault.NewProtected("secret1"))

	bank := vault.NewEntry(uuid.New(), "bank")
	bank.SetField(vault.FieldOTP, vault.NewProtected("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"))

	root := vault.NewGroup(uuid.New(), "Root")
	root.Add(github, bank)

	v, err := vault.New(root)
	require.NoError(t, err)

	c := kdbx.New()
	pw := testPassword
	key, err := c.DeriveKey(codec.Credentials{Password: &pw})
	require.NoError(t, err)
	defer key.Destroy()

	data, err := c.Encode(v, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "main.kdbx")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return "file://" + path
}

type result struct {
	stdout string
	stderr string
	err    error
	copied string
}

func runKey(t *testing.T, args ...string) result {
	t.Helper()

	var res result
	a := newApp(strings.NewReader(""), io.Discard)
	a.clipboard = func(s string) error {
		res.copied = s
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	res.err = cmd.ExecuteContext(context.Background())
	res.stdout, res.stderr = stdout.String(), stderr.String()
	return res
}

func setupEnv(t *testing.T) string {
	t.Helper()

	url := writeTestVault(t)
	t.Setenv("KEY_DATABASE_URL", url)
	t.Setenv("KEY_PASSWORD", testPassword)
	t.Setenv("KEY_CACHE_DIR", t.TempDir())
	t.Setenv("KEY_LOG", "error")
	return url
}

func TestList(t *testing.T) {
	setupEnv(t)

	res := runKey(t, "list")
	require.NoError(t, res.err)
	assert.Equal(t, "github\nbank\n", res.stdout)

	res = runKey(t, "ls", "-o", "json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"title": "github"`)
	assert.Contains(t, res.stdout, `"has_otp": true`)

	res = runKey(t, "list", "-o", "csv")
	assert.ErrorIs(t, res.err, vault.ErrUnknownFormat)
}

func TestGet(t *testing.T) {
	setupEnv(t)

	res := runKey(t, "get", "github")
	require.NoError(t, res.err)
	assert.Equal(t, "secret1\n", res.stdout)

	res = runKey(t, "get", "github", "--field", vault.FieldUserName)
	require.NoError(t, res.err)
	assert.Equal(t, "alice\n", res.stdout)

	res = runKey(t, "get", "github", "--clipboard")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "secret1", res.copied)
	assert.Contains(t, res.stderr, "copied to clipboard")

	res = runKey(t, "get", "gitlab")
	assert.ErrorIs(t, res.err, vault.ErrNotFound)
}

func TestGet_DatabaseFlagOverridesEnv(t *testing.T) {
	url := setupEnv(t)
	t.Setenv("KEY_DATABASE_URL", "file:///does/not/exist.kdbx")

	res := runKey(t, "-d", url, "get", "github")
	require.NoError(t, res.err)
	assert.Equal(t, "secret1\n", res.stdout)
}

func TestMutationsPersist(t *testing.T) {
	setupEnv(t)

	require.NoError(t, runKey(t, "set", "gitlab", vault.FieldPassword, "p2").err)
	res := runKey(t, "get", "gitlab")
	require.NoError(t, res.err)
	assert.Equal(t, "p2\n", res.stdout)

	require.NoError(t, runKey(t, "rename", "gitlab", "gl").err)
	assert.ErrorIs(t, runKey(t, "get", "gitlab").err, vault.ErrNotFound)
	assert.Equal(t, "p2\n", runKey(t, "get", "gl").stdout)

	require.NoError(t, runKey(t, "rm", "gl").err)
	assert.ErrorIs(t, runKey(t, "get", "gl").err, vault.ErrNotFound)

	res = runKey(t, "list")
	require.NoError(t, res.err)
	assert.Equal(t, "github\nbank\n", res.stdout)
}

func TestWrongPassword(t *testing.T) {
	setupEnv(t)
	t.Setenv("KEY_PASSWORD", "wrong")

	res := runKey(t, "list")
	assert.ErrorIs(t, res.err, codec.ErrDecode)
}

func TestOTP(t *testing.T) {
	setupEnv(t)

	res := runKey(t, "otp", "bank")
	require.NoError(t, res.err)
	assert.Regexp(t, `^\d{6}\n$`, res.stdout)

	res = runKey(t, "otp", "github")
	require.Error(t, res.err)
}

func TestGen(t *testing.T) {
	res := runKey(t, "gen")
	require.NoError(t, res.err)
	assert.Len(t, strings.TrimSpace(res.stdout), utils.DefaultPasswordLength)

	res = runKey(t, "gen", "32")
	require.NoError(t, res.err)
	assert.Len(t, strings.TrimSpace(res.stdout), 32)

	res = runKey(t, "gen", "8", "--clipboard")
	require.NoError(t, res.err)
	assert.Len(t, res.copied, 8)

	assert.Error(t, runKey(t, "gen", "-3").err)
	assert.Error(t, runKey(t, "gen", "many").err)
}

func TestVersion(t *testing.T) {
	res := runKey(t, "version")
	require.NoError(t, res.err)
	assert.Equal(t, versionString()+"\n", res.stdout)
}

func TestMissingDatabaseURL(t *testing.T) {
	t.Setenv("KEY_DATABASE_URL", "")
	t.Setenv("KEY_PASSWORD", testPassword)

	res := runKey(t, "list")
	assert.ErrorIs(t, res.err, config.ErrMissingDatabaseURL)
}

func TestServe_RequiresSignKey(t *testing.T) {
	setupEnv(t)
	t.Setenv("KEY_SERVER_TOKEN_SIGN_KEY", "")

	res := runKey(t, "serve")
	assert.ErrorIs(t, res.err, config.ErrInvalidServerConfigs)
}
