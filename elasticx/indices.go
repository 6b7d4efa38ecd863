package elasticx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/clinia/kbx/errorx"
	"github.com/clinia/kbx/metricsx"
	"github.com/clinia/kbx/slogx"
)

// IndexExists returns true if the scoped index exists.
//
// Existence is re-queried on every call and never cached; a concurrent create
// or delete can invalidate the answer before the caller acts on it.
func (c *client) IndexExists(ctx context.Context, namespace, name string) (bool, error) {
	indexName, err := NewIndexName(namespace, name)
	if err != nil {
		return false, err
	}
	ctx = slogx.ContextWithIndexName(ctx, indexName.String())

	return c.indexExists(ctx, indexName)
}

func (c *client) indexExists(ctx context.Context, indexName IndexName) (bool, error) {
	// A cluster-health probe with a short timeout turns an unreachable engine
	// into a fast connection failure instead of a long transport hang.
	healthCtx, cancel := context.WithTimeout(ctx, c.cfg.HealthTimeout)
	defer cancel()

	healthRes, err := esapi.ClusterHealthRequest{
		Timeout: c.cfg.HealthTimeout,
	}.Do(healthCtx, c.es)
	if err != nil {
		return false, c.connectionError(ctx, err)
	}
	defer healthRes.Body.Close()

	if healthRes.IsError() {
		return false, c.engineError(ctx, healthRes)
	}

	res, err := esapi.IndicesExistsRequest{
		Index: []string{indexName.String()},
	}.Do(ctx, c.es)
	if err != nil {
		return false, c.connectionError(ctx, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, c.engineError(ctx, res)
	}
}

// CreateIndex creates the scoped index with the given mapping, registering
// the index template for the engine's generation first. Creating an index
// that already exists logs and returns nil so provisioning can be re-run.
//
// The existence check and the creation are two engine calls; concurrent
// creates of the same index race, and the loser surfaces the engine's
// duplicate rejection as an engine error.
func (c *client) CreateIndex(ctx context.Context, namespace, name string, mapping json.RawMessage) (err error) {
	defer func() {
		metricsx.IndexOperationsTotal.WithLabelValues("create", outcomeLabel(err)).Inc()
	}()

	indexName, err := NewIndexName(namespace, name)
	if err != nil {
		return err
	}
	ctx = slogx.ContextWithIndexName(ctx, indexName.String())

	exists, err := c.indexExists(ctx, indexName)
	if err != nil {
		return err
	}
	if exists {
		c.logger.Error(ctx, fmt.Sprintf("Index %q already exists.", name))
		return nil
	}

	return c.createIndex(ctx, indexName, mapping)
}

// createIndex registers the index template and creates the index. The caller
// has already established that the index is absent.
func (c *client) createIndex(ctx context.Context, indexName IndexName, mapping json.RawMessage) error {
	generation, err := c.resolveGeneration(ctx)
	if err != nil {
		return err
	}

	// Templates are engine-global and may predate this client, so the
	// registration overwrites on every creation.
	template, err := adaptTemplate(c.template, generation)
	if err != nil {
		return err
	}

	res, err := esapi.IndicesPutTemplateRequest{
		Name: c.templateName,
		Body: bytes.NewReader(template),
	}.Do(ctx, c.es)
	if err != nil {
		return c.connectionError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return c.engineError(ctx, res)
	}

	c.logger.Info(ctx, fmt.Sprintf("Creating index %q", indexName.Name()))

	req := esapi.IndicesCreateRequest{
		Index: indexName.String(),
	}
	// The caller-supplied mapping is passed through untouched; the registered
	// template provides the engine-global defaults.
	if len(mapping) > 0 {
		req.Body = bytes.NewReader(mapping)
	}

	createRes, err := req.Do(ctx, c.es)
	if err != nil {
		return c.connectionError(ctx, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return c.engineError(ctx, createRes)
	}

	return nil
}

// DeleteIndex deletes the scoped index. Deleting an index that does not exist
// is a caller error, reported as a domain-state error distinct from
// infrastructure failures.
//
// As with CreateIndex, the existence check and the deletion race against
// concurrent callers.
func (c *client) DeleteIndex(ctx context.Context, namespace, name string) (err error) {
	defer func() {
		metricsx.IndexOperationsTotal.WithLabelValues("delete", outcomeLabel(err)).Inc()
	}()

	indexName, err := NewIndexName(namespace, name)
	if err != nil {
		return err
	}
	ctx = slogx.ContextWithIndexName(ctx, indexName.String())

	exists, err := c.indexExists(ctx, indexName)
	if err != nil {
		return err
	}
	if !exists {
		return errorx.DomainStateErrorf("index %q for namespace %q does not exist", name, namespace)
	}

	c.logger.Info(ctx, fmt.Sprintf("Deleting index %q", name))

	res, err := esapi.IndicesDeleteRequest{
		Index: []string{indexName.String()},
	}.Do(ctx, c.es)
	if err != nil {
		return c.connectionError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return c.engineError(ctx, res)
	}

	return nil
}

// FieldNames returns the sorted property names of the scoped index's mapping.
// The properties tree sits at a generation-dependent path in the mapping
// response.
func (c *client) FieldNames(ctx context.Context, namespace, name string) ([]string, error) {
	indexName, err := NewIndexName(namespace, name)
	if err != nil {
		return nil, err
	}
	ctx = slogx.ContextWithIndexName(ctx, indexName.String())

	exists, err := c.indexExists(ctx, indexName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errorx.DomainStateErrorf("index %q for namespace %q does not exist", name, namespace)
	}

	generation, err := c.resolveGeneration(ctx)
	if err != nil {
		return nil, err
	}

	res, err := esapi.IndicesGetMappingRequest{
		Index: []string{indexName.String()},
	}.Do(ctx, c.es)
	if err != nil {
		return nil, c.connectionError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, c.engineError(ctx, res)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errorx.EngineErrorf(0, "unable to read mapping response: %s", err)
	}

	path := indexName.String() + ".mappings.properties"
	if generation.RequiresDocType() {
		path = indexName.String() + ".mappings." + DefaultDocType + ".properties"
	}

	properties := gjson.GetBytes(body, path)
	if !properties.Exists() {
		return []string{}, nil
	}

	fields := lo.Keys(properties.Map())
	slices.Sort(fields)

	return fields, nil
}

func outcomeLabel(err error) string {
	return lo.Ternary(err == nil, "success", "failure")
}
