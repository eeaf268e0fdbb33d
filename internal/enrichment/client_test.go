package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const f2Response = `{
  "results": [
    {
      "primaryAccession": "P00734",
      "comments": [
        {"commentType": "FUNCTION"},
        {"commentType": "DISEASE", "disease": {"diseaseId": "Factor II deficiency", "acronym": "FA2D"}},
        {"commentType": "DISEASE", "disease": {"diseaseId": "Ischemic stroke", "acronym": "ISCHSTR"}},
        {"commentType": "DISEASE", "disease": {"diseaseId": "Factor II deficiency"}},
        {"commentType": "DISEASE", "note": {"texts": []}}
      ]
    },
    {
      "primaryAccession": "Q00000",
      "comments": [
        {"commentType": "DISEASE", "disease": {"diseaseId": "Thrombophilia due to thrombin defect"}}
      ]
    }
  ]
}`

func newTestClient(t *testing.T, srv *httptest.Server, timeout time.Duration) *Client {
	t.Helper()
	c, err := NewClient(Options{
		BaseURL: srv.URL,
		Timeout: timeout,
		Limiter: Unlimited{},
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestDiseasesParsesDiseaseComments(t *testing.T) {
	var gotQuery, gotFields, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uniprotkb/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotFields = r.URL.Query().Get("fields")
		gotFormat = r.URL.Query().Get("format")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f2Response))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, time.Second)
	res := c.Diseases(context.Background(), "F2")

	require.True(t, res.OK(), "unexpected failure: %v", res.Err)
	assert.Equal(t, []string{
		"Factor II deficiency",
		"Ischemic stroke",
		"Thrombophilia due to thrombin defect",
	}, res.Diseases)
	assert.Equal(t, "gene_exact:F2 AND organism_id:9606", gotQuery)
	assert.Equal(t, "cc_disease", gotFields)
	assert.Equal(t, "json", gotFormat)
}

func TestDiseasesEmptyIsNotFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv, time.Second).Diseases(context.Background(), "NOPE")
	assert.True(t, res.OK())
	assert.NotNil(t, res.Diseases)
	assert.Empty(t, res.Diseases)
	assert.Equal(t, ReasonNone, res.Reason())
}

func TestDiseasesFailureReasons(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		reason  Reason
		status  int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			timeout: time.Second,
			reason:  ReasonTransport,
			status:  http.StatusInternalServerError,
		},
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			timeout: time.Second,
			reason:  ReasonTransport,
			status:  http.StatusBadRequest,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"results": [`))
			},
			timeout: time.Second,
			reason:  ReasonParse,
		},
		{
			name: "slow server",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			reason:  ReasonTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			res := newTestClient(t, srv, tt.timeout).Diseases(context.Background(), "F2")
			require.False(t, res.OK())
			assert.Equal(t, tt.reason, res.Reason())
			assert.Equal(t, tt.status, res.Err.StatusCode)
			assert.Equal(t, "F2", res.Err.Gene)
			assert.Empty(t, res.Diseases)
		})
	}
}

func TestDiseasesCachesSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(f2Response))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, time.Second)
	first := c.Diseases(context.Background(), "F2")
	second := c.Diseases(context.Background(), "F2")

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Diseases, second.Diseases)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDiseasesDoesNotCacheFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(f2Response))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, time.Second)
	assert.False(t, c.Diseases(context.Background(), "F2").OK())
	assert.True(t, c.Diseases(context.Background(), "F2").OK())
	assert.Equal(t, int32(2), calls.Load())
}

type countingLimiter struct {
	waits atomic.Int32
}

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.waits.Add(1)
	return ctx.Err()
}

func TestDiseasesWaitsOnLimiter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	limiter := &countingLimiter{}
	c, err := NewClient(Options{BaseURL: srv.URL, Limiter: limiter})
	require.NoError(t, err)
	defer c.Close()

	c.Diseases(context.Background(), "A")
	c.Diseases(context.Background(), "B")
	c.Diseases(context.Background(), "A") // cached, no wait
	assert.Equal(t, int32(2), limiter.waits.Load())
}

func TestDiseasesCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestClient(t, srv, time.Second).Diseases(ctx, "F2")
	require.False(t, res.OK())
	assert.Equal(t, ReasonTransport, res.Reason())
}

func TestIntervalLimiterSpacesCalls(t *testing.T) {
	l := NewIntervalLimiter(40 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, l.Wait(ctx))
	require.NoError(t, l.Wait(ctx))
	require.NoError(t, l.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "timeout", ReasonTimeout.String())
	assert.Equal(t, "transport", ReasonTransport.String())
	assert.Equal(t, "parse", ReasonParse.String())
	assert.Equal(t, "Reason(42)", Reason(42).String())
}

func TestLookupErrorMessage(t *testing.T) {
	err := &LookupError{Gene: "F2", Reason: ReasonTransport, StatusCode: 503}
	assert.Equal(t, "lookup F2: transport: HTTP 503", err.Error())
}
