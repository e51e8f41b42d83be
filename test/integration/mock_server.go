// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// MockUser is a user served by the mock GitHub
type MockUser struct {
	Login       string    `json:"login"`
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio,omitempty"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	HTMLURL     string    `json:"html_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// MockRepository is a repository served by the mock GitHub
type MockRepository struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Language        string    `json:"language,omitempty"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	HTMLURL         string    `json:"html_url"`
}

// MockServer is a minimal GitHub REST API for the profile, repository
// and search endpoints
type MockServer struct {
	*httptest.Server
	mu           sync.RWMutex
	users        map[string]*MockUser
	repos        map[string][]*MockRepository
	requests     int
	rateLimitAt  int
	failNext     bool
	responseTime time.Duration
}

// NewMockServer creates a mock server seeded with octocat (23 repositories)
// and an empty-handed user
func NewMockServer(t *testing.T) *MockServer {
	t.Helper()

	ms := &MockServer{
		users: make(map[string]*MockUser),
		repos: make(map[string][]*MockRepository),
	}

	ms.AddUser(&MockUser{
		Login:     "octocat",
		ID:        583231,
		Name:      "The Octocat",
		Followers: 12500,
		Following: 9,
		HTMLURL:   "https://github.com/octocat",
		CreatedAt: time.Date(2011, time.January, 25, 18, 44, 36, 0, time.UTC),
	}, 23)
	ms.AddUser(&MockUser{Login: "quiet-user", ID: 2, HTMLURL: "https://github.com/quiet-user"}, 0)

	ms.Server = httptest.NewServer(http.HandlerFunc(ms.handler))
	return ms
}

// AddUser registers user with repoCount generated repositories
func (ms *MockServer) AddUser(user *MockUser, repoCount int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	user.PublicRepos = repoCount
	ms.users[strings.ToLower(user.Login)] = user

	repos := make([]*MockRepository, 0, repoCount)
	for i := 1; i <= repoCount; i++ {
		repos = append(repos, &MockRepository{
			ID:              user.ID*100 + i,
			Name:            fmt.Sprintf("%s-repo-%02d", user.Login, i),
			Language:        "Go",
			StargazersCount: i * 100,
			UpdatedAt:       time.Now().Add(-time.Duration(i) * time.Hour),
			HTMLURL:         fmt.Sprintf("https://github.com/%s/repo-%02d", user.Login, i),
		})
	}
	ms.repos[strings.ToLower(user.Login)] = repos
}

func (ms *MockServer) handler(w http.ResponseWriter, r *http.Request) {
	ms.mu.RLock()
	responseTime := ms.responseTime
	ms.mu.RUnlock()
	if responseTime > 0 {
		time.Sleep(responseTime)
	}

	ms.mu.Lock()
	shouldFail := ms.failNext
	ms.failNext = false
	ms.requests++
	limited := ms.rateLimitAt > 0 && ms.requests > ms.rateLimitAt
	ms.mu.Unlock()

	if shouldFail {
		http.Error(w, `{"message": "Server Error"}`, http.StatusInternalServerError)
		return
	}

	if limited {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
		return
	}

	w.Header().Set("X-RateLimit-Remaining", "59")
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "users":
		ms.handleUser(w, parts[1])
	case len(parts) == 3 && parts[0] == "users" && parts[2] == "repos":
		ms.handleRepos(w, r, parts[1])
	case r.URL.Path == "/search/users":
		ms.handleSearch(w, r)
	default:
		notFound(w)
	}
}

func (ms *MockServer) handleUser(w http.ResponseWriter, login string) {
	ms.mu.RLock()
	user, ok := ms.users[strings.ToLower(login)]
	ms.mu.RUnlock()
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, user)
}

func (ms *MockServer) handleRepos(w http.ResponseWriter, r *http.Request, login string) {
	ms.mu.RLock()
	repos, ok := ms.repos[strings.ToLower(login)]
	ms.mu.RUnlock()
	if !ok {
		notFound(w)
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 30)
	start := (page - 1) * perPage
	if start > len(repos) {
		start = len(repos)
	}
	end := start + perPage
	if end > len(repos) {
		end = len(repos)
	}
	writeJSON(w, repos[start:end])
}

func (ms *MockServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSuffix(r.URL.Query().Get("q"), " in:login"))

	ms.mu.RLock()
	items := make([]map[string]any, 0)
	for login, user := range ms.users {
		if strings.Contains(login, query) {
			items = append(items, map[string]any{"login": user.Login, "id": user.ID})
		}
	}
	ms.mu.RUnlock()

	writeJSON(w, map[string]any{
		"total_count":        len(items),
		"incomplete_results": false,
		"items":              items,
	})
}

// SetFailNext makes the next request fail with a server error
func (ms *MockServer) SetFailNext(fail bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.failNext = fail
}

// SetRateLimitAfter rejects every request after the first n
func (ms *MockServer) SetRateLimitAfter(n int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.rateLimitAt = n
	ms.requests = 0
}

func (ms *MockServer) SetResponseTime(duration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.responseTime = duration
}

func queryInt(r *http.Request, key string, fallback int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"message": "Not Found"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
