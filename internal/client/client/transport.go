package client

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
)

// CredentialSource is the part of the session store the transport needs.
type CredentialSource interface {
	Get() (string, bool)
	Clear()
}

// AuthTransport attaches the bearer credential to outbound requests and
// invalidates the session on any 401. Responses are passed through
// unchanged and requests are never retried.
type AuthTransport struct {
	base   http.RoundTripper
	creds  CredentialSource
	logger logging.Logger

	// onUnauthorized runs after the store is cleared. hadCredential tells
	// whether the rejected request carried one.
	onUnauthorized func(hadCredential bool)
}

func NewAuthTransport(base http.RoundTripper, creds CredentialSource, onUnauthorized func(hadCredential bool), logger logging.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{base: base, creds: creds, onUnauthorized: onUnauthorized, logger: logger}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	token, hasToken := t.creds.Get()
	if hasToken {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	} else {
		r.Header.Del(common.AuthorizationHeaderName)
	}

	requestID := r.Header.Get(common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
		r.Header.Set(common.RequestIDHeaderName, requestID)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(r)
	if err != nil {
		t.logger.Debug(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "request_id", requestID, "error", err)
		return nil, err
	}

	t.logger.Debug(r.Context(), "request done",
		"method", r.Method, "path", r.URL.Path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		t.creds.Clear()
		if t.onUnauthorized != nil {
			t.onUnauthorized(hasToken)
		}
	}
	return resp, nil
}
