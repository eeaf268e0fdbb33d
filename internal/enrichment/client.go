// Package enrichment resolves gene symbols to disease identifiers through
// the UniProtKB REST API.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maypok86/otter"
	"github.com/nishad/drugrake/internal/errors"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL    = "https://rest.uniprot.org"
	DefaultOrganismID = 9606
	DefaultMinDelay   = 1 * time.Second
	DefaultTimeout    = 10 * time.Second
	DefaultCacheSize  = 10000

	diseaseComment = "DISEASE"
	cacheTTL       = 24 * time.Hour
)

// Lookup resolves one gene symbol to its diseases.
type Lookup interface {
	Diseases(ctx context.Context, gene string) Result
}

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	BaseURL    string
	OrganismID int
	MinDelay   time.Duration
	Timeout    time.Duration
	CacheSize  int

	HTTPClient *http.Client
	Limiter    RateLimiter
	Logger     *zap.Logger
}

// Client queries UniProtKB for disease annotations of human genes.
type Client struct {
	baseURL    string
	organismID int
	timeout    time.Duration
	httpClient *http.Client
	limiter    RateLimiter
	cache      otter.Cache[string, []string]
	logger     *zap.Logger
}

// NewClient creates a new UniProt client
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.OrganismID == 0 {
		opts.OrganismID = DefaultOrganismID
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Limiter == nil {
		opts.Limiter = NewIntervalLimiter(opts.MinDelay)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	cache, err := otter.MustBuilder[string, []string](opts.CacheSize).
		WithTTL(cacheTTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		organismID: opts.OrganismID,
		timeout:    opts.Timeout,
		httpClient: opts.HTTPClient,
		limiter:    opts.Limiter,
		cache:      cache,
		logger:     opts.Logger,
	}, nil
}

// Close releases the lookup cache.
func (c *Client) Close() {
	c.cache.Close()
}

// Diseases returns the disease identifiers annotated on gene. Every call
// that reaches the network first waits on the rate limiter and runs under
// the per-call timeout. Only successful lookups are cached.
func (c *Client) Diseases(ctx context.Context, gene string) Result {
	if diseases, ok := c.cache.Get(gene); ok {
		return Result{Gene: gene, Diseases: diseases, Cached: true}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return failure(gene, classify(err), 0, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	result := c.fetch(callCtx, gene)
	c.logger.Debug("uniprot lookup",
		zap.String("gene", gene),
		zap.Int("diseases", len(result.Diseases)),
		zap.Stringer("reason", result.Reason()),
		zap.Duration("elapsed", time.Since(start)))

	if result.OK() {
		c.cache.Set(gene, result.Diseases)
	}
	return result
}

func (c *Client) fetch(ctx context.Context, gene string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(gene), nil)
	if err != nil {
		return failure(gene, ReasonTransport, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(gene, classify(err), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return failure(gene, ReasonTransport, resp.StatusCode, nil)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if reason := classify(err); reason == ReasonTimeout {
			return failure(gene, reason, 0, err)
		}
		return failure(gene, ReasonParse, 0, err)
	}

	return Result{Gene: gene, Diseases: body.diseaseIDs()}
}

func (c *Client) searchURL(gene string) string {
	q := url.Values{}
	q.Set("query", fmt.Sprintf("gene_exact:%s AND organism_id:%d", gene, c.organismID))
	q.Set("fields", "cc_disease")
	q.Set("format", "json")
	return c.baseURL + "/uniprotkb/search?" + q.Encode()
}

// classify maps a request error to a failure reason.
func classify(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonTransport
}

type searchResponse struct {
	Results []struct {
		Comments []struct {
			CommentType string `json:"commentType"`
			Disease     *struct {
				DiseaseID string `json:"diseaseId"`
			} `json:"disease"`
		} `json:"comments"`
	} `json:"results"`
}

// diseaseIDs collects disease ids from DISEASE comments, deduplicated in
// first-seen order. The result is never nil.
func (r searchResponse) diseaseIDs() []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, entry := range r.Results {
		for _, comment := range entry.Comments {
			if comment.CommentType != diseaseComment || comment.Disease == nil {
				continue
			}
			id := strings.TrimSpace(comment.Disease.DiseaseID)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
