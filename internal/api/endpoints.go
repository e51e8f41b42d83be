package api

import (
	"fmt"
	"net/url"
	"strconv"
)

// PageSize is the fixed page size for repository and search pagination
const PageSize = 10

// API endpoints constants
const (
	// EndpointProfileTemplate is the endpoint template for a user profile
	EndpointProfileTemplate = "/users/%s"

	// EndpointRepositoriesTemplate is the endpoint template for a user's repositories
	EndpointRepositoriesTemplate = "/users/%s/repos"

	// EndpointSearchHandles is the endpoint for searching users by handle
	EndpointSearchHandles = "/search/users"
)

// ProfileURL builds the URL for fetching a profile by handle
func ProfileURL(handle string) string {
	return fmt.Sprintf(EndpointProfileTemplate, url.PathEscape(handle))
}

// RepositoriesURL builds the URL for one page of a user's repositories, most recently updated first
func RepositoriesURL(handle string, page int) string {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(PageSize))
	q.Set("page", strconv.Itoa(page))
	q.Set("sort", "updated")
	return fmt.Sprintf(EndpointRepositoriesTemplate, url.PathEscape(handle)) + "?" + q.Encode()
}

// SearchHandlesURL builds the URL for one page of handle search results
func SearchHandlesURL(query string, page int) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(PageSize))
	return EndpointSearchHandles + "?" + q.Encode()
}
