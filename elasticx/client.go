package elasticx

import (
	"context"
	"encoding/json"
)

// Client manages the lifecycle of knowledge-base indices on an Elasticsearch
// server or cluster and bulk-loads documents into them. All operations scope
// index names under a tenant namespace.
type Client interface {
	// IndexExists returns true if the scoped index exists.
	IndexExists(ctx context.Context, namespace, name string) (bool, error)

	// CreateIndex registers the index template for the engine's generation and
	// creates the scoped index with the given mapping. Creating an index that
	// already exists is a no-op.
	CreateIndex(ctx context.Context, namespace, name string, mapping json.RawMessage) error

	// DeleteIndex deletes the scoped index.
	// Deleting an index that does not exist returns a domain-state error.
	DeleteIndex(ctx context.Context, namespace, name string) error

	// FieldNames returns the property names of the scoped index's mapping.
	FieldNames(ctx context.Context, namespace, name string) ([]string, error)

	// LoadIndex streams documents into the scoped index in bulk batches,
	// creating the index first when needed. Individual document failures are
	// counted, never returned as errors.
	LoadIndex(ctx context.Context, req LoadRequest) (*LoadSummary, error)
}
