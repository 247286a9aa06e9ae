// Package httpref exposes a lookup source over HTTP and consumes one.
//
// Routes served by Handler:
//
//	GET /{target}       full result of target (record list or schema)
//	GET /{target}/{id}  one record
package httpref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/skemaform/refsource"
)

// Handler serves src. A nil result is written as JSON null.
func Handler(src refsource.Source, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{src: src, log: log}
	r := chi.NewRouter()
	r.Get("/{target}", h.lookup)
	r.Get("/{target}/{id}", h.lookup)
	return r
}

type handler struct {
	src refsource.Source
	log *zap.Logger
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	id := chi.URLParam(r, "id")
	v, err := h.src.Lookup(r.Context(), target, id)
	if err != nil {
		status, code := statusOf(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("lookup failed", zap.String("target", target), zap.String("id", id), zap.Error(err))
		}
		writeError(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, refsource.ErrUnknownTarget):
		return http.StatusNotFound, "UNKNOWN_TARGET"
	case errors.Is(err, refsource.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	}
	return http.StatusBadGateway, "LOOKUP_FAILED"
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ENCODE_FAILED", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	b, _ := json.Marshal(map[string]string{"error": message, "code": code})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// Client is a lookup backed by a remote Handler.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// Lookup fetches target (and id, when set) from the remote source. Non-2xx
// responses are errors carrying the remote error message.
func (c *Client) Lookup(ctx context.Context, target, id string) (any, error) {
	u := strings.TrimRight(c.BaseURL, "/") + "/" + url.PathEscape(target)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpref: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpref: %s: %w", target, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpref: read %s: %w", target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Code  string `json:"code"`
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &e)
		if resp.StatusCode == http.StatusNotFound {
			if e.Code == "NOT_FOUND" {
				return nil, fmt.Errorf("%w: %s", refsource.ErrNotFound, e.Error)
			}
			return nil, fmt.Errorf("%w: %s", refsource.ErrUnknownTarget, e.Error)
		}
		return nil, fmt.Errorf("httpref: %s: status %d: %s", target, resp.StatusCode, e.Error)
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("httpref: decode %s: %w", target, err)
	}
	return v, nil
}
