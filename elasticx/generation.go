package elasticx

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/clinia/kbx/errorx"
)

// Generation identifies the engine's wire API generation. Legacy engines
// nest mappings and bulk actions under a document type; modern engines
// dropped the concept.
type Generation string

const (
	GenerationLegacy Generation = "legacy"
	GenerationModern Generation = "modern"
)

const (
	// modernMajorVersion is the first major version without document types.
	modernMajorVersion = 7
	// minSupportedMajorVersion is the oldest major version the adapters are
	// written against. Older engines get a warning but are still served.
	minSupportedMajorVersion = 5
)

// DefaultDocType is the document type used against legacy engines when the
// caller does not provide one.
const DefaultDocType = "document"

// RequiresDocType reports whether mappings and bulk actions must carry a
// document type for this generation.
func (g Generation) RequiresDocType() bool {
	return g == GenerationLegacy
}

// resolveGeneration asks the engine for its version and derives the API
// generation from the major component. It is resolved fresh per operation
// since the same client code may target different engine instances over time.
func (c *client) resolveGeneration(ctx context.Context) (Generation, error) {
	res, err := esapi.InfoRequest{}.Do(ctx, c.es)
	if err != nil {
		return "", c.connectionError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", c.engineError(ctx, res)
	}

	var info infoResponse
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return "", errorx.EngineErrorf(0, "unable to decode engine info response: %s", err)
	}

	major, err := majorVersion(info.Version.Number)
	if err != nil {
		return "", errorx.EngineErrorf(0, "unable to parse engine version %q: %s", info.Version.Number, err)
	}

	if major < minSupportedMajorVersion {
		c.logger.Warn(ctx, fmt.Sprintf("Major version of ElasticSearch %d is not officially supported.", major))
	}

	if major >= modernMajorVersion {
		return GenerationModern, nil
	}

	return GenerationLegacy, nil
}

func majorVersion(number string) (int, error) {
	major, _, _ := strings.Cut(number, ".")
	return strconv.Atoi(major)
}
