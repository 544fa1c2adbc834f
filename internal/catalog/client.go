package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"movie-favorites/internal/data/entity"
	"movie-favorites/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiVersion            = "3"
	defaultConnectTimeout = 3 * time.Second
	defaultReadTimeout    = 3 * time.Second
	maxBodyBytes          = 8 << 20
)

var errBodyTimeout = errors.New("body not received within read timeout")

// Source is the catalog surface used by the services. Client and Breaker
// both implement it.
type Source interface {
	Popular(ctx context.Context, page int) (*MoviePage, error)
	TopRated(ctx context.Context, page int) (*MoviePage, error)
	Movie(ctx context.Context, movieID int64) (*entity.Movie, error)
	Reviews(ctx context.Context, movieID int64) ([]entity.Review, error)
	Trailers(ctx context.Context, movieID int64) ([]entity.Trailer, error)
}

var _ Source = (*Client)(nil)

// Credentials supplies the catalog API keys.
type Credentials interface {
	V3Key() (string, error)
	V4Key() (string, error)
}

type Config struct {
	BaseURL        string
	Language       string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	RateLimit      float64 // requests per second, <= 0 disables pacing
	RateBurst      int
}

// MoviePage is one page of a movie listing.
type MoviePage struct {
	Page         int
	Movies       []entity.Movie
	TotalResults int
	TotalPages   int
}

// Client talks to the remote catalog API. Each request is a single attempt.
type Client struct {
	baseURL     string
	language    string
	readTimeout time.Duration
	creds       Credentials
	httpClient  *http.Client
	limiter     *rate.Limiter
	log         *zap.Logger
}

func NewClient(cfg Config, creds Credentials, log *zap.Logger) *Client {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		language:    cfg.Language,
		readTimeout: cfg.ReadTimeout,
		creds:       creds,
		httpClient:  &http.Client{Transport: transport},
		limiter:     rate.NewLimiter(limit, burst),
		log:         log.With(zap.String("client", "catalog")),
	}
}

// Request issues a GET for rawURL and returns the body of a 200 response.
// Any other outcome is an *Error.
func (c *Client) Request(ctx context.Context, rawURL string) ([]byte, error) {
	safeURL := redact(rawURL)

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.CatalogRequests.WithLabelValues(KindNetwork.String()).Inc()
		return nil, &Error{Kind: KindNetwork, URL: safeURL, Err: err}
	}

	reqCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: safeURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.creds.V4Key()
	if err != nil {
		return nil, &Error{Kind: KindUnauthorized, URL: safeURL, Err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	body, err := c.do(req, cancel)
	metrics.CatalogRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.URL = safeURL
			metrics.CatalogRequests.WithLabelValues(cerr.Kind.String()).Inc()
			c.log.Warn("Catalog request failed",
				zap.String("url", safeURL),
				zap.String("kind", cerr.Kind.String()),
				zap.Int("status", cerr.StatusCode),
				zap.Error(cerr.Err),
			)
		}
		return nil, err
	}

	metrics.CatalogRequests.WithLabelValues("ok").Inc()
	c.log.Debug("Catalog request served",
		zap.String("url", safeURL),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)
	return body, nil
}

func (c *Client) do(req *http.Request, cancel context.CancelCauseFunc) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: transportKind(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &Error{
			Kind:       statusKind(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	// The body must arrive within the read timeout as well.
	var readExpired atomic.Bool
	timer := time.AfterFunc(c.readTimeout, func() {
		readExpired.Store(true)
		cancel(errBodyTimeout)
	})
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	timer.Stop()
	if err != nil {
		if readExpired.Load() {
			// the transport reports context.Canceled; keep only the cause
			return nil, &Error{Kind: KindTimeout, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", errBodyTimeout)}
		}
		return nil, &Error{Kind: transportKind(err), StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	return body, nil
}

func transportKind(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// endpoint builds a versioned catalog URL carrying the v3 key.
func (c *Client) endpoint(path string, query url.Values) (string, error) {
	key, err := c.creds.V3Key()
	if err != nil {
		return "", &Error{Kind: KindUnauthorized, Err: err}
	}

	if query == nil {
		query = url.Values{}
	}
	if key != "" {
		query.Set("api_key", key)
	}
	if c.language != "" {
		query.Set("language", c.language)
	}

	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, apiVersion, strings.TrimPrefix(path, "/"), query.Encode()), nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": []string{strconv.Itoa(page)}}
}

func (c *Client) PopularURL(page int) (string, error) {
	return c.endpoint("movie/popular", pageQuery(page))
}

func (c *Client) TopRatedURL(page int) (string, error) {
	return c.endpoint("movie/top_rated", pageQuery(page))
}

func (c *Client) MovieURL(movieID int64) (string, error) {
	return c.endpoint(fmt.Sprintf("movie/%d", movieID), nil)
}

func (c *Client) ReviewsURL(movieID int64, page int) (string, error) {
	return c.endpoint(fmt.Sprintf("movie/%d/reviews", movieID), pageQuery(page))
}

func (c *Client) VideosURL(movieID int64) (string, error) {
	return c.endpoint(fmt.Sprintf("movie/%d/videos", movieID), nil)
}

func (c *Client) Popular(ctx context.Context, page int) (*MoviePage, error) {
	u, err := c.PopularURL(page)
	if err != nil {
		return nil, err
	}
	return c.moviePage(ctx, u)
}

func (c *Client) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	u, err := c.TopRatedURL(page)
	if err != nil {
		return nil, err
	}
	return c.moviePage(ctx, u)
}

func (c *Client) moviePage(ctx context.Context, u string) (*MoviePage, error) {
	body, err := c.Request(ctx, u)
	if err != nil {
		return nil, err
	}
	return ParseMoviePage(body)
}

func (c *Client) Movie(ctx context.Context, movieID int64) (*entity.Movie, error) {
	u, err := c.MovieURL(movieID)
	if err != nil {
		return nil, err
	}
	body, err := c.Request(ctx, u)
	if err != nil {
		return nil, err
	}
	return ParseMovie(body)
}

// Reviews returns the first page of reviews, which is what a detail view shows.
func (c *Client) Reviews(ctx context.Context, movieID int64) ([]entity.Review, error) {
	u, err := c.ReviewsURL(movieID, 1)
	if err != nil {
		return nil, err
	}
	body, err := c.Request(ctx, u)
	if err != nil {
		return nil, err
	}
	return ParseReviews(body)
}

// Trailers returns the YouTube-hosted trailers among the movie's videos.
func (c *Client) Trailers(ctx context.Context, movieID int64) ([]entity.Trailer, error) {
	u, err := c.VideosURL(movieID)
	if err != nil {
		return nil, err
	}
	body, err := c.Request(ctx, u)
	if err != nil {
		return nil, err
	}
	videos, err := ParseTrailers(body)
	if err != nil {
		return nil, err
	}

	trailers := make([]entity.Trailer, 0, len(videos))
	for _, v := range videos {
		if v.Type == entity.TrailerTypeTrailer && v.Site == entity.TrailerSiteYouTube {
			trailers = append(trailers, v)
		}
	}
	return trailers, nil
}
