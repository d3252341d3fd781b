// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-key/internal/utils"
	"github.com/MKhiriev/go-key/internal/vault"
)

var contentTypes = map[string]string{
	vault.FormatJSON: "application/json",
	vault.FormatYAML: "application/yaml",
	vault.FormatTOML: "application/toml",
	vault.FormatText: "text/plain; charset=utf-8",
}

// FieldValue is the body of field reads and writes.
type FieldValue struct {
	Entry string `json:"entry,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value"`
}

// RenameRequest is the body of POST /api/entries/{name}/rename.
type RenameRequest struct {
	Name string `json:"name"`
}

// OTPResponse carries a freshly derived one-time password.
type OTPResponse struct {
	Entry string `json:"entry"`
	Code  string `json:"code"`
}

// listEntries renders the whole tree. ?format= selects json (default),
// yaml, toml or text.
func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = vault.FormatJSON
	}

	out, err := h.vault.Render(format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.vault.Entry(name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) getField(w http.ResponseWriter, r *http.Request) {
	name, field, err := entryAndField(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	value, err := h.vault.GetField(name, field)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, FieldValue{Entry: name, Field: field, Value: value}, http.StatusOK)
}

// setField creates the entry when it does not exist yet.
func (h *Handler) setField(w http.ResponseWriter, r *http.Request) {
	name, field, err := entryAndField(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body FieldValue
	if err = json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}

	if err = h.vault.SetField(r.Context(), name, field, body.Value); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) renameEntry(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body RenameRequest
	if err = json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}
	if body.Name == "" {
		writeError(w, r, fmt.Errorf("%w: empty name", ErrInvalidRequestBody))
		return
	}

	if err = h.vault.Rename(r.Context(), name, body.Name); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.vault.Delete(r.Context(), name); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getOTP derives the current code. ?field= overrides the "otp" field.
func (h *Handler) getOTP(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		writeError(w, r, err)
		return
	}

	code, err := h.vault.OTP(name, r.URL.Query().Get("field"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, OTPResponse{Entry: name, Code: code}, http.StatusOK)
}

// pathParam returns the decoded value of a route parameter. chi matches on
// the raw path when one is set, so titles containing "/" arrive as "%2F".
func pathParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}

	value, err := url.PathUnescape(value)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidPathParam, key, err)
	}
	return value, nil
}

func entryAndField(r *http.Request) (string, string, error) {
	name, err := pathParam(r, "name")
	if err != nil {
		return "", "", err
	}
	field, err := pathParam(r, "field")
	if err != nil {
		return "", "", err
	}
	return name, field, nil
}
