package leagueapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/matchdesk/league-console/internal/platform/logging"
	"github.com/matchdesk/league-console/internal/platform/resilience"
)

const (
	defaultTimeout      = 15 * time.Second
	maxResponseBytes    = 4 << 20
	requestIDHeader     = "X-Request-ID"
	authorizationHeader = "Authorization"
)

var errTransient = crerr.New("league api transient failure")

// TokenSource supplies the bearer token attached to every request. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type staticTokenSource string

func (s staticTokenSource) Token(context.Context) (string, error) {
	return string(s), nil
}

func StaticToken(token string) TokenSource {
	return staticTokenSource(strings.TrimSpace(token))
}

type Config struct {
	HTTPClient     *http.Client
	BaseURL        string
	Tokens         TokenSource
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the league management REST API. Reads are deduplicated
// and retried; mutations are sent exactly once.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight

	hookOnce       sync.Once
	onUnauthorized atomic.Pointer[func()]
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = StaticToken("")
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		tokens:         tokens,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// SetUnauthorizedHook installs the process-wide 401 callback. The first
// call wins; later calls are ignored so no component can silently steal
// the re-authentication flow.
func (c *Client) SetUnauthorizedHook(fn func()) {
	if fn == nil {
		return
	}
	c.hookOnce.Do(func() {
		c.onUnauthorized.Store(&fn)
	})
}

func (c *Client) notifyUnauthorized() {
	if fn := c.onUnauthorized.Load(); fn != nil {
		(*fn)()
	}
}

// getJSON fetches a resource through the breaker with in-flight
// deduplication, then decodes the payload into target.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "league api circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return crerr.Wrap(err, "league api is temporarily unavailable")
		}
	}

	fullURL := c.buildURL(path, query)
	key := http.MethodGet + " " + fullURL
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeGet(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if target == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode league api payload")
	}

	return nil
}

func (c *Client) executeGet(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := c.newRequest(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				statusErr := c.statusError(resp)
				if !isRetryableStatus(resp.StatusCode) {
					return nil, statusErr
				}
				lastErr = fmt.Errorf("%w: %v", errTransient, statusErr)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("league api request failed")
	}
	c.logger.WarnContext(ctx, "league api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// send issues a mutation exactly once. A nil target (or a 204 response)
// skips decoding: callers apply the request payload optimistically.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, target any) error {
	fullURL := c.buildURL(path, query)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return crerr.Wrap(err, "marshal request body")
		}
		_, _ = buf.Write(encoded)
	}

	var reader io.Reader
	if buf.Len() > 0 {
		reader = strings.NewReader(buf.String())
	}
	req, err := c.newRequest(ctx, method, fullURL, reader)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return crerr.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return crerr.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}
	if target == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode league api payload")
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, fullURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, crerr.Wrap(err, "resolve token")
	}
	if token != "" {
		req.Header.Set(authorizationHeader, "Bearer "+token)
	}

	return req, nil
}

// statusError converts a non-2xx response. Every observed 401 fires the
// unauthorized hook before the error is returned to the caller.
func (c *Client) statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		c.notifyUnauthorized()
	}
	return &StatusError{
		Code:   resp.StatusCode,
		Status: resp.Status,
	}
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}
	return fullURL
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
