package elasticx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	loggerxtest "github.com/clinia/kbx/loggerx/test"
)

// fakeEngine scripts Elasticsearch behavior behind an http.RoundTripper so
// client tests run without a server.
type fakeEngine struct {
	t *testing.T

	version string
	indices map[string]bool
	// mappings holds the GET _mapping response body per index.
	mappings map[string]string

	// templates records registered template bodies by template name.
	templates map[string][]byte
	// createBodies records index creation bodies by index name.
	createBodies map[string][]byte
	// bulkBodies records submitted bulk NDJSON bodies in order.
	bulkBodies [][]byte

	// bulkOutcome overrides the status and error payload of a bulk item.
	// Defaults to 201 for every document.
	bulkOutcome func(batch, item int, id string) (status int, errBody string)

	// overrides short-circuits routing for a "METHOD /path" key.
	overrides map[string]func(req *http.Request) (*http.Response, error)

	calls []string
}

func newFakeEngine(t *testing.T) *fakeEngine {
	return &fakeEngine{
		t:            t,
		version:      "8.14.0",
		indices:      map[string]bool{},
		mappings:     map[string]string{},
		templates:    map[string][]byte{},
		createBodies: map[string][]byte{},
		overrides:    map[string]func(req *http.Request) (*http.Response, error){},
	}
}

func (e *fakeEngine) RoundTrip(req *http.Request) (*http.Response, error) {
	key := req.Method + " " + req.URL.Path
	e.calls = append(e.calls, key)

	if handler, ok := e.overrides[key]; ok {
		return handler(req)
	}

	switch {
	case req.Method == http.MethodHead && req.URL.Path == "/":
		return respond(http.StatusOK, "")

	case req.Method == http.MethodGet && req.URL.Path == "/":
		return respond(http.StatusOK, fmt.Sprintf(`{"version":{"number":%q}}`, e.version))

	case req.Method == http.MethodGet && req.URL.Path == "/_cluster/health":
		return respond(http.StatusOK, `{"status":"green"}`)

	case req.Method == http.MethodPut && strings.HasPrefix(req.URL.Path, "/_template/"):
		body, _ := io.ReadAll(req.Body)
		e.templates[strings.TrimPrefix(req.URL.Path, "/_template/")] = body
		return respond(http.StatusOK, `{"acknowledged":true}`)

	case req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/_bulk"):
		body, _ := io.ReadAll(req.Body)
		e.bulkBodies = append(e.bulkBodies, body)
		return respond(http.StatusOK, e.bulkResponseBody(body))

	case req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/_refresh"):
		return respond(http.StatusOK, `{"_shards":{"total":1,"successful":1,"failed":0}}`)

	case req.Method == http.MethodGet && strings.HasSuffix(req.URL.Path, "/_mapping"):
		name := strings.TrimSuffix(strings.TrimPrefix(req.URL.Path, "/"), "/_mapping")
		return respond(http.StatusOK, e.mappings[name])

	case req.Method == http.MethodHead:
		if e.indices[strings.TrimPrefix(req.URL.Path, "/")] {
			return respond(http.StatusOK, "")
		}
		return respond(http.StatusNotFound, "")

	case req.Method == http.MethodPut:
		name := strings.TrimPrefix(req.URL.Path, "/")
		if e.indices[name] {
			return respond(http.StatusBadRequest, `{"error":{"type":"resource_already_exists_exception"}}`)
		}
		body, _ := io.ReadAll(req.Body)
		e.indices[name] = true
		e.createBodies[name] = body
		return respond(http.StatusOK, `{"acknowledged":true}`)

	case req.Method == http.MethodDelete:
		name := strings.TrimPrefix(req.URL.Path, "/")
		if !e.indices[name] {
			return respond(http.StatusNotFound, `{"error":{"type":"index_not_found_exception"}}`)
		}
		delete(e.indices, name)
		return respond(http.StatusOK, `{"acknowledged":true}`)
	}

	e.t.Fatalf("unexpected request %s", key)
	return nil, nil
}

// bulkResponseBody builds a per-item response for a submitted NDJSON body.
func (e *fakeEngine) bulkResponseBody(body []byte) string {
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	batch := len(e.bulkBodies) - 1

	items := []string{}
	for i := 0; i+1 < len(lines); i += 2 {
		var action struct {
			Index struct {
				ID string `json:"_id"`
			} `json:"index"`
		}
		require.NoError(e.t, json.Unmarshal([]byte(lines[i]), &action))

		status, errBody := http.StatusCreated, ""
		if e.bulkOutcome != nil {
			status, errBody = e.bulkOutcome(batch, len(items), action.Index.ID)
		}

		item := fmt.Sprintf(`{"index":{"_id":%q,"status":%d}}`, action.Index.ID, status)
		if errBody != "" {
			item = fmt.Sprintf(`{"index":{"_id":%q,"status":%d,"error":%s}}`, action.Index.ID, status, errBody)
		}
		items = append(items, item)
	}

	return fmt.Sprintf(`{"took":3,"errors":false,"items":[%s]}`, strings.Join(items, ","))
}

func (e *fakeEngine) countCalls(prefix string) int {
	n := 0
	for _, call := range e.calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

// batchSizes returns the document count of each submitted bulk body.
func (e *fakeEngine) batchSizes() []int {
	sizes := make([]int, 0, len(e.bulkBodies))
	for _, body := range e.bulkBodies {
		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		sizes = append(sizes, len(lines)/2)
	}
	return sizes
}

func respond(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Elastic-Product": []string{"Elasticsearch"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}, nil
}

func newTestClient(t *testing.T, engine *fakeEngine, opts ...ClientOption) *client {
	t.Helper()

	cfg := &Config{
		Addresses:      []string{"http://elasticsearch.test:9200"},
		ConnectTimeout: time.Second,
		Transport:      engine,
	}

	opts = append([]ClientOption{WithLogger(loggerxtest.NewTestLogger(t))}, opts...)

	c, err := NewClient(context.Background(), cfg, opts...)
	require.NoError(t, err)

	return c.(*client)
}
