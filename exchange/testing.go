// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package exchange

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/hashicorp/cap-idtoken/jwtbearer"
)

// Paths served by a TestTokenServer.
const (
	TestTokenPath     = "/token"
	TestTokenInfoPath = "/tokeninfo"
)

// TestTokenServer is an in-process token endpoint and token info endpoint
// for tests. By default a POST to TestTokenPath with the JWT bearer grant
// type is answered with {"id_token": <IdToken>}; any other grant type gets
// an OAuth 2.0 unsupported_grant_type error.
type TestTokenServer struct {
	t      *testing.T
	server *httptest.Server

	mu            sync.Mutex
	idToken       string
	status        int
	body          string
	tokenInfoBody string
	lastBody      string
	lastHeaders   http.Header
	lastQuery     string
	tokenRequests int
	infoRequests  int
}

// StartTestTokenServer starts a TestTokenServer which is stopped when the
// test completes.
func StartTestTokenServer(t *testing.T) *TestTokenServer {
	t.Helper()
	s := &TestTokenServer{
		t:       t,
		idToken: "test-id-token",
	}
	r := mux.NewRouter()
	r.HandleFunc(TestTokenPath, s.tokenHandler).Methods(http.MethodPost)
	r.HandleFunc(TestTokenInfoPath, s.tokenInfoHandler).Methods(http.MethodGet)
	s.server = httptest.NewServer(r)
	t.Cleanup(s.Stop)
	return s
}

// Stop the server. It is safe to call more than once.
func (s *TestTokenServer) Stop() {
	s.server.Close()
}

// Client returns an http client for the server.
func (s *TestTokenServer) Client() *http.Client {
	return s.server.Client()
}

// TokenURL returns the url of the token endpoint.
func (s *TestTokenServer) TokenURL() string {
	return s.server.URL + TestTokenPath
}

// TokenInfoURL returns the url of the token info endpoint.
func (s *TestTokenServer) TokenInfoURL() string {
	return s.server.URL + TestTokenInfoPath
}

// SetIdToken sets the id_token returned for valid requests.
func (s *TestTokenServer) SetIdToken(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idToken = t
}

// SetResponse makes the token endpoint answer every request with status
// and body, regardless of the request.
func (s *TestTokenServer) SetResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// SetTokenInfo sets the body returned by the token info endpoint.
func (s *TestTokenServer) SetTokenInfo(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenInfoBody = body
}

// LastRequest returns the body and headers of the last token request.
func (s *TestTokenServer) LastRequest() (string, http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBody, s.lastHeaders.Clone()
}

// LastTokenInfoQuery returns the raw query of the last token info request.
func (s *TestTokenServer) LastTokenInfoQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// Requests returns the number of token and token info requests served.
func (s *TestTokenServer) Requests() (token, tokenInfo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenRequests, s.infoRequests
}

func (s *TestTokenServer) tokenHandler(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenRequests++
	body, err := io.ReadAll(req.Body)
	if err != nil {
		s.t.Errorf("test token server: reading request: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s.lastBody = string(body)
	s.lastHeaders = req.Header.Clone()

	w.Header().Set("Content-Type", "application/json")
	if s.status != 0 || s.body != "" {
		if s.status != 0 {
			w.WriteHeader(s.status)
		}
		_, _ = w.Write([]byte(s.body))
		return
	}

	_, grantType, err := DecodeForm(string(body))
	if err != nil || grantType != jwtbearer.GrantType {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unsupported_grant_type"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"id_token": s.idToken})
}

func (s *TestTokenServer) tokenInfoHandler(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoRequests++
	s.lastQuery = req.URL.RawQuery

	w.Header().Set("Content-Type", "application/json")
	if s.tokenInfoBody != "" {
		_, _ = w.Write([]byte(s.tokenInfoBody))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"id_token": req.URL.Query().Get("id_token")})
}
