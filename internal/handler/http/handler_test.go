package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/locator"
	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/mock"
	"github.com/MKhiriev/go-key/internal/otp"
	"github.com/MKhiriev/go-key/internal/service"
	"github.com/MKhiriev/go-key/internal/store"
	"github.com/MKhiriev/go-key/internal/utils"
	"github.com/MKhiriev/go-key/internal/vault"
)

const testVersion = "v1.2.3"

var (
	testLoc  = locator.FileLocation{Path: "/vaults/main.kdbx"}
	testAuth = config.Server{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-key",
		TokenDuration: time.Hour,
	}
)

// testVault builds:
//
//	root
//	├── github {UserName: alice, Password: secret1}
//	├── bank   {otp: <rfc 6238 secret>}
//	└── work/
//	    ├── jira
//	    └── deep/
//	        └── vpn
func testVault(t *testing.T) *vault.Vault {
	t.Helper()

	github := vault.NewEntry(uuid.New(), "github")
	github.SetField(vault.FieldUserName, vault.Unprotected("alice"))
	github.SetField(vault.FieldPassword, vault.NewProtected("secret1"))

	bank := vault.NewEntry(uuid.New(), "bank")
	bank.SetField(vault.FieldOTP, vault.NewProtected("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"))

	deep := vault.NewGroup(uuid.New(), "deep")
	deep.Add(vault.NewEntry(uuid.New(), "vpn"))

	work := vault.NewGroup(uuid.New(), "work")
	work.Add(vault.NewEntry(uuid.New(), "jira"), deep)

	root := vault.NewGroup(uuid.New(), "Root")
	root.Add(github, bank, work)

	v, err := vault.New(root)
	require.NoError(t, err)
	return v
}

type testServer struct {
	router http.Handler
	writer *mock.MockVaultWriter
	key    *mock.MockKey
	token  string
}

func newTestServer(t *testing.T, log *logger.Logger) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	loader := mock.NewMockVaultLoader(ctrl)
	s := &testServer{
		writer: mock.NewMockVaultWriter(ctrl),
		key:    mock.NewMockKey(ctrl),
	}
	loader.EXPECT().Load(gomock.Any(), testLoc, gomock.Any()).Return(testVault(t), s.key, nil)

	engine := otp.NewWithClock(func() time.Time { return time.Unix(59, 0) })
	pw := "pw"
	handle, err := service.OpenHandle(context.Background(), loader, s.writer, engine, testLoc,
		codec.Credentials{Password: &pw}, logger.Nop())
	require.NoError(t, err)

	s.router = NewHandler(handle, testAuth, testVersion, log).Init()

	token, err := utils.GenerateJWTToken(testAuth.TokenIssuer, "gui", testAuth.TokenDuration, testAuth.TokenSignKey)
	require.NoError(t, err)
	s.token = token.SignedString
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", "Bearer "+s.token)

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) expectStore(err error) {
	s.writer.EXPECT().Store(gomock.Any(), testLoc, gomock.Any(), s.key).Return(err)
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestNewHandler(t *testing.T) {
	s := newTestServer(t, logger.Nop())
	require.NotNil(t, s.router)
}

func TestGetVersion_NoAuthRequired(t *testing.T) {
	s := newTestServer(t, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Equal(t, testVersion, rr.Body.String())
}

func TestRoutes_RequireAuth(t *testing.T) {
	s := newTestServer(t, logger.Nop())

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/entries"},
		{http.MethodGet, "/api/entries/github"},
		{http.MethodDelete, "/api/entries/github"},
		{http.MethodPost, "/api/entries/github/rename"},
		{http.MethodGet, "/api/entries/github/otp"},
		{http.MethodGet, "/api/entries/github/fields/Password"},
		{http.MethodPut, "/api/entries/github/fields/Password"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			rr := httptest.NewRecorder()
			s.router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestListEntries_Formats(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantType    string
		wantContain []string
	}{
		{
			name:        "default is json",
			wantStatus:  http.StatusOK,
			wantType:    "application/json",
			wantContain: []string{`"title": "github"`, `"has_otp": true`, `"title": "work"`},
		},
		{
			name:        "yaml",
			query:       "?format=yaml",
			wantStatus:  http.StatusOK,
			wantType:    "application/yaml",
			wantContain: []string{"title: github", "user: alice"},
		},
		{
			name:        "toml",
			query:       "?format=TOML",
			wantStatus:  http.StatusOK,
			wantType:    "application/toml",
			wantContain: []string{"github", "alice"},
		},
		{
			name:        "text",
			query:       "?format=text",
			wantStatus:  http.StatusOK,
			wantType:    "text/plain; charset=utf-8",
			wantContain: []string{"github\nbank\nwork/jira\nwork/deep/vpn\n"},
		},
		{
			name:       "unknown format",
			query:      "?format=xml",
			wantStatus: http.StatusBadRequest,
			wantType:   "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, logger.Nop())

			rr := s.do(t, http.MethodGet, "/api/entries"+tt.query, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantType, rr.Header().Get("Content-Type"))
			for _, want := range tt.wantContain {
				assert.Contains(t, rr.Body.String(), want)
			}
		})
	}
}

func TestGetEntry(t *testing.T) {
	s := newTestServer(t, logger.Nop())

	rr := s.do(t, http.MethodGet, "/api/entries/github", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	view := decodeBody[vault.EntryView](t, rr)
	assert.Equal(t, "github", view.Title)
	require.NotNil(t, view.User)
	assert.Equal(t, "alice", *view.User)
	assert.False(t, view.HasOTP)

	rr = s.do(t, http.MethodGet, "/api/entries/jira", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "group entries are not addressable by name")
	assert.Contains(t, decodeBody[utils.ErrorResponse](t, rr).Error, "not found")
}

func TestGetField(t *testing.T) {
	s := newTestServer(t, logger.Nop())

	rr := s.do(t, http.MethodGet, "/api/entries/github/fields/Password", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, FieldValue{Entry: "github", Field: "Password", Value: "secret1"}, decodeBody[FieldValue](t, rr))

	rr = s.do(t, http.MethodGet, "/api/entries/github/fields/URL", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSetField(t *testing.T) {
	t.Run("creates entry and saves", func(t *testing.T) {
		s := newTestServer(t, logger.Nop())
		s.expectStore(nil)

		rr := s.do(t, http.MethodPut, "/api/entries/gitlab/fields/Password", FieldValue{Value: "p2"})
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = s.do(t, http.MethodGet, "/api/entries/gitlab/fields/Password", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "p2", decodeBody[FieldValue](t, rr).Value)
	})

	t.Run("escaped title", func(t *testing.T) {
		s := newTestServer(t, logger.Nop())
		s.expectStore(nil)

		rr := s.do(t, http.MethodPut, "/api/entries/a%2Fb/fields/Password", FieldValue{Value: "slash"})
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = s.do(t, http.MethodGet, "/api/entries?format=text", nil)
		assert.Contains(t, rr.Body.String(), "a/b\n")
	})

	t.Run("backend failure", func(t *testing.T) {
		s := newTestServer(t, logger.Nop())
		s.expectStore(errors.Join(store.ErrBackendUnavailable, errors.New("connection refused")))

		rr := s.do(t, http.MethodPut, "/api/entries/github/fields/Password", FieldValue{Value: "x"})
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, "vault backend unavailable", decodeBody[utils.ErrorResponse](t, rr).Error)

		rr = s.do(t, http.MethodGet, "/api/entries/github/fields/Password", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "secret1", decodeBody[FieldValue](t, rr).Value, "unsaved value must not be served")
	})

	t.Run("invalid body", func(t *testing.T) {
		s := newTestServer(t, logger.Nop())

		rr := s.do(t, http.MethodPut, "/api/entries/github/fields/Password", "{not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRenameEntry(t *testing.T) {
	tests := []struct {
		name       string
		entry      string
		body       any
		store      bool
		wantStatus int
	}{
		{name: "renamed", entry: "github", body: RenameRequest{Name: "gh"}, store: true, wantStatus: http.StatusNoContent},
		{name: "empty name", entry: "github", body: RenameRequest{}, wantStatus: http.StatusBadRequest},
		{name: "bad json", entry: "github", body: "[", wantStatus: http.StatusBadRequest},
		{name: "missing entry", entry: "nope", body: RenameRequest{Name: "x"}, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, logger.Nop())
			if tt.store {
				s.expectStore(nil)
			}

			rr := s.do(t, http.MethodPost, "/api/entries/"+tt.entry+"/rename", tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}

	t.Run("old name is gone", func(t *testing.T) {
		s := newTestServer(t, logger.Nop())
		s.expectStore(nil)

		require.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/entries/github/rename", RenameRequest{Name: "gh"}).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/entries/github", nil).Code)
		assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/entries/gh", nil).Code)
	})
}

func TestDeleteEntry(t *testing.T) {
	s := newTestServer(t, logger.Nop())
	s.expectStore(nil)

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/entries/github", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/entries/github", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/entries/github", nil).Code)
}

func TestGetOTP(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{name: "default field", path: "/api/entries/bank/otp", wantStatus: http.StatusOK, wantCode: "287082"},
		{name: "explicit field", path: "/api/entries/bank/otp?field=otp", wantStatus: http.StatusOK, wantCode: "287082"},
		{name: "entry without otp", path: "/api/entries/github/otp", wantStatus: http.StatusNotFound},
		{name: "field is not a secret", path: "/api/entries/github/otp?field=Password", wantStatus: http.StatusUnprocessableEntity},
		{name: "missing entry", path: "/api/entries/nope/otp", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, logger.Nop())

			rr := s.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, OTPResponse{Entry: "bank", Code: tt.wantCode}, decodeBody[OTPResponse](t, rr))
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, logger.Nop())

	rr := s.do(t, http.MethodPatch, "/api/entries/github", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, DELETE", rr.Header().Get("Allow"))

	rr = s.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"vault not found", fmt.Errorf("entry %q: %w", "x", vault.ErrNotFound), http.StatusNotFound},
		{"no otp", service.ErrNoOTP, http.StatusNotFound},
		{"invalid secret", otp.ErrInvalidSecret, http.StatusUnprocessableEntity},
		{"closed", service.ErrHandleClosed, http.StatusServiceUnavailable},
		{"unknown format", vault.ErrUnknownFormat, http.StatusBadRequest},
		{"write to missing bucket", fmt.Errorf("%w: %w", store.ErrBackendUnavailable, store.ErrBucketMissing), http.StatusBadGateway},
		{"backend object gone", fmt.Errorf("%w: %w", store.ErrBackendUnavailable, store.ErrNotFound), http.StatusBadGateway},
		{"encode", codec.ErrEncode, http.StatusInternalServerError},
		{"expired", ErrTokenExpired, http.StatusUnauthorized},
		{"unmapped", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
