package elasticx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/inhies/go-bytesize"
	"github.com/samber/lo"
	"github.com/segmentio/ksuid"

	"github.com/clinia/kbx/errorx"
	"github.com/clinia/kbx/metricsx"
	"github.com/clinia/kbx/slogx"
)

// ProgressFunc is invoked once per processed document, regardless of outcome,
// with the running processed count.
type ProgressFunc func(processed int)

// Document is one unit of the bulk stream. An empty ID gets a generated one
// so failure logs and outcome attribution always carry an identifier.
type Document struct {
	ID     string
	Source json.RawMessage
}

// LoadRequest describes a bulk load into a scoped index.
type LoadRequest struct {
	Namespace string
	IndexName string

	// Documents is consumed lazily, one batch at a time.
	Documents iter.Seq[Document]

	// DocumentCount is the declared size of the stream. It feeds the
	// summary's Attempted count; the stream is consumed in full even when the
	// declared count disagrees with it.
	DocumentCount int

	// Mapping is used when the index has to be created first. It is passed
	// through untouched.
	Mapping json.RawMessage

	// DocType is only used against legacy engines. Defaults to DefaultDocType.
	DocType string

	Progress ProgressFunc
}

// LoadSummary aggregates the per-document outcomes of a bulk load.
type LoadSummary struct {
	Succeeded int
	Failed    int
	Attempted int
}

type bulkAction struct {
	Index bulkActionMeta `json:"index"`
}

type bulkActionMeta struct {
	ID   string `json:"_id"`
	Type string `json:"_type,omitempty"`
}

// LoadIndex streams documents into the scoped index in batches, creating the
// index first when needed. Per-document failures are logged and counted; only
// systemic failures (unreachable engine, rejected batch, malformed outcome
// stream) abort the load. Committed batches are never rolled back.
func (c *client) LoadIndex(ctx context.Context, req LoadRequest) (*LoadSummary, error) {
	indexName, err := NewIndexName(req.Namespace, req.IndexName)
	if err != nil {
		return nil, err
	}
	if req.Documents == nil {
		return nil, errorx.InvalidArgumentErrorf("a document stream is required")
	}
	ctx = slogx.ContextWithIndexName(ctx, indexName.String())

	exists, err := c.indexExists(ctx, indexName)
	if err != nil {
		return nil, err
	}
	if exists {
		c.logger.Warn(ctx, fmt.Sprintf("Elasticsearch index %q for namespace %q already exists!", req.IndexName, req.Namespace))
		c.logger.Info(ctx, fmt.Sprintf("Loading index %q", req.IndexName))
	} else if err := c.createIndex(ctx, indexName, req.Mapping); err != nil {
		return nil, err
	}

	// The generation is resolved once and pinned for the whole load so every
	// batch uses the same wire format.
	generation, err := c.resolveGeneration(ctx)
	if err != nil {
		return nil, err
	}

	loader := &bulkLoader{
		client:        c,
		indexName:     indexName,
		generation:    generation,
		docType:       lo.CoalesceOrEmpty(req.DocType, DefaultDocType),
		batchSize:     c.cfg.BatchSize,
		maxBatchBytes: c.cfg.MaxBatchBytes,
		progress:      req.Progress,
	}

	err = loader.run(ctx, req.Documents)

	summary := loader.summary
	summary.Attempted = req.DocumentCount
	return &summary, err
}

// bulkLoader accumulates documents into an NDJSON body and flushes it to the
// engine whenever the document or byte cap is reached.
type bulkLoader struct {
	client        *client
	indexName     IndexName
	generation    Generation
	docType       string
	batchSize     int
	maxBatchBytes bytesize.ByteSize
	progress      ProgressFunc

	buf     bytes.Buffer
	scratch bytes.Buffer
	// ids holds the batched document IDs in submission order.
	ids []string

	summary   LoadSummary
	processed int
	batches   int
}

func (l *bulkLoader) run(ctx context.Context, docs iter.Seq[Document]) error {
	var loopErr error
	for doc := range docs {
		if err := ctx.Err(); err != nil {
			loopErr = err
			break
		}
		if err := l.add(ctx, doc); err != nil {
			loopErr = err
			break
		}
	}

	if loopErr == nil && len(l.ids) > 0 {
		loopErr = l.flush(ctx)
	}

	if loopErr == nil {
		if err := l.refresh(ctx); err != nil {
			return err
		}
		loaded := l.summary.Succeeded
		l.client.logger.Info(ctx, fmt.Sprintf("Loaded %d document%s", loaded, lo.Ternary(loaded == 1, "", "s")))
		return nil
	}

	// A cancelled load still refreshes whatever was committed, so documents
	// from completed batches become searchable.
	if isCancellation(loopErr) && l.batches > 0 {
		if err := l.refresh(context.WithoutCancel(ctx)); err != nil {
			l.client.logger.WithError(err).Debug(ctx, "Unable to refresh index after cancelled load")
		}
	}

	return loopErr
}

func (l *bulkLoader) add(ctx context.Context, doc Document) error {
	if doc.ID == "" {
		doc.ID = ksuid.New().String()
	}

	action, err := json.Marshal(bulkAction{Index: bulkActionMeta{
		ID:   doc.ID,
		Type: lo.Ternary(l.generation.RequiresDocType(), l.docType, ""),
	}})
	if err != nil {
		return errorx.InvalidArgumentErrorf("unable to encode bulk action for document %q: %s", doc.ID, err)
	}

	source := doc.Source
	if len(source) == 0 {
		source = json.RawMessage(`{}`)
	}

	// Sources are compacted onto a single line for the NDJSON body.
	l.scratch.Reset()
	if err := json.Compact(&l.scratch, source); err != nil {
		return errorx.InvalidArgumentErrorf("document %q source is not valid JSON: %s", doc.ID, err)
	}

	entrySize := len(action) + l.scratch.Len() + 2

	// Flush early rather than grow the batch past the byte cap. A single
	// document larger than the cap still ships, alone.
	if len(l.ids) > 0 && bytesize.ByteSize(l.buf.Len()+entrySize) > l.maxBatchBytes {
		if err := l.flush(ctx); err != nil {
			return err
		}
	}

	l.buf.Write(action)
	l.buf.WriteByte('\n')
	l.buf.Write(l.scratch.Bytes())
	l.buf.WriteByte('\n')
	l.ids = append(l.ids, doc.ID)

	if len(l.ids) >= l.batchSize {
		return l.flush(ctx)
	}

	return nil
}

func (l *bulkLoader) flush(ctx context.Context) error {
	if len(l.ids) == 0 {
		return nil
	}

	ids := l.ids
	l.batches++
	metricsx.BatchesSubmittedTotal.Inc()

	start := time.Now()
	res, err := esapi.BulkRequest{
		Index: l.indexName.String(),
		Body:  bytes.NewReader(l.buf.Bytes()),
	}.Do(ctx, l.client.es)
	metricsx.BatchFlushDuration.Observe(time.Since(start).Seconds())

	l.ids = nil
	l.buf.Reset()

	if err != nil {
		return l.client.connectionError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return l.client.engineError(ctx, res)
	}

	var bulkRes bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return errorx.EngineErrorf(0, "unable to decode bulk response: %s", err)
	}

	outcomes := make([]error, 0, len(bulkRes.Items))
	for _, item := range bulkRes.Items {
		outcomes = append(outcomes, itemOutcome(item))
	}

	// Outcomes are attributed to documents by submission order, so the item
	// count must line up with the batch.
	outcomes, mismatchErr := errorx.OutcomeErrsMatchBatchLength(outcomes, len(ids), nil)

	for i, id := range ids {
		if outcomeErr := outcomes[i]; outcomeErr != nil {
			l.summary.Failed++
			metricsx.DocumentsLoadedTotal.WithLabelValues("failed").Inc()
			l.client.logger.Error(ctx, fmt.Sprintf("Failed to index document %s: %s", l.documentPath(id), outcomeErr))
		} else {
			l.summary.Succeeded++
			metricsx.DocumentsLoadedTotal.WithLabelValues("succeeded").Inc()
		}

		l.processed++
		if l.progress != nil {
			l.progress(l.processed)
		}
	}

	return mismatchErr
}

func (l *bulkLoader) refresh(ctx context.Context) error {
	res, err := esapi.IndicesRefreshRequest{
		Index: []string{l.indexName.String()},
	}.Do(ctx, l.client.es)
	if err != nil {
		return l.client.connectionError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return l.client.engineError(ctx, res)
	}

	return nil
}

// documentPath renders the display path of a document for failure logs,
// /index/id on modern engines and /index/type/id on legacy ones.
func (l *bulkLoader) documentPath(id string) string {
	if l.generation.RequiresDocType() {
		return "/" + l.indexName.Name() + "/" + l.docType + "/" + id
	}
	return "/" + l.indexName.Name() + "/" + id
}

// itemOutcome extracts the single action result from a bulk response item.
// A status below 300 is a success.
func itemOutcome(item map[string]bulkResponseItem) error {
	for _, result := range item {
		if result.Status < http.StatusMultipleChoices {
			return nil
		}

		detail := string(result.Error)
		if detail == "" {
			detail = http.StatusText(result.Status)
		}
		return errorx.DocumentLoadFailuref("status %d: %s", result.Status, detail)
	}

	return errorx.DocumentLoadFailuref("bulk response item carries no action result")
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
