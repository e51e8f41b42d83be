package finder

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"

	"github.com/ghfinder/ghfinder-cli/internal/models"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) FetchProfile(ctx context.Context, handle string) (*models.Profile, error) {
	args := m.Called(handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockClient) FetchRepositories(ctx context.Context, handle string, page int) ([]models.Repository, error) {
	args := m.Called(handle, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repository), args.Error(1)
}

func (m *mockClient) SearchHandles(ctx context.Context, query string, page int) (*models.SuggestionPage, error) {
	args := m.Called(query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SuggestionPage), args.Error(1)
}

// run executes cmd and returns every message it produces, expanding batches
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// reposPage builds n repositories with ids starting after offset
func reposPage(n, offset int) []models.Repository {
	repos := make([]models.Repository, n)
	for i := range repos {
		id := offset + i + 1
		repos[i] = models.Repository{ID: int64(id), Name: fmt.Sprintf("repo-%d", id)}
	}
	return repos
}

func suggestionsPage(prefix string, n int, hasMore bool) *models.SuggestionPage {
	items := make([]models.Suggestion, n)
	for i := range items {
		items[i] = models.Suggestion{ID: int64(i + 1), Login: fmt.Sprintf("%s%d", prefix, i+1)}
	}
	return &models.SuggestionPage{Items: items, TotalCount: n, HasMore: hasMore}
}

func logins(items []models.Suggestion) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Login
	}
	return out
}
