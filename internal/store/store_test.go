package store

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matchdesk/league-console/external/leagueapi"
	"github.com/matchdesk/league-console/internal/platform/logging"
	"github.com/matchdesk/league-console/internal/platform/resilience"
)

func newTestStore(t *testing.T, handler http.Handler) *Store {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := leagueapi.NewClient(leagueapi.Config{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		Tokens:         leagueapi.StaticToken("test-token"),
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	return New(client, Options{Logger: logging.NewNop(), Workers: 2})
}
