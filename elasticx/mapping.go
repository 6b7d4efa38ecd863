package elasticx

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/clinia/kbx/errorx"
)

// EmbeddingProperty declares a dense-vector field to merge into an index
// mapping before creation.
type EmbeddingProperty struct {
	Field string
	Dims  int
}

// AdaptMapping rewrites a mapping document to the shape the given engine
// generation expects. Modern engines take field properties flat under
// "mappings"; legacy engines expect them nested under the document type key.
// Mappings already in the target shape are returned unchanged, so the
// adaptation can be applied any number of times.
func AdaptMapping(mapping json.RawMessage, generation Generation) (json.RawMessage, error) {
	if len(mapping) == 0 {
		return mapping, nil
	}
	if !gjson.ValidBytes(mapping) {
		return nil, errorx.InvalidArgumentErrorf("mapping is not valid JSON")
	}

	if !generation.RequiresDocType() {
		return mapping, nil
	}

	mappings := gjson.GetBytes(mapping, "mappings")
	if !mappings.Exists() {
		return mapping, nil
	}
	if mappings.Get(DefaultDocType).Exists() {
		return mapping, nil
	}

	nested := fmt.Sprintf(`{%q:%s}`, DefaultDocType, mappings.Raw)
	adapted, err := sjson.SetRawBytes(mapping, "mappings", []byte(nested))
	if err != nil {
		return nil, errorx.InvalidArgumentErrorf("unable to adapt mapping: %s", err)
	}

	return adapted, nil
}

// MergeEmbeddingProperties inserts each embedding property into the mapping's
// "mappings.properties" tree as a dense_vector field, creating the tree when
// absent. Other mapping keys are left untouched. Merging happens before any
// generation-specific adaptation, on the flat modern shape.
func MergeEmbeddingProperties(mapping json.RawMessage, props []EmbeddingProperty) (json.RawMessage, error) {
	if len(props) == 0 {
		return mapping, nil
	}

	if len(mapping) == 0 {
		mapping = json.RawMessage(`{}`)
	}
	if !gjson.ValidBytes(mapping) {
		return nil, errorx.InvalidArgumentErrorf("mapping is not valid JSON")
	}

	out := mapping
	for _, prop := range props {
		if prop.Field == "" {
			return nil, errorx.InvalidArgumentErrorf("embedding property field name is empty")
		}
		if prop.Dims <= 0 {
			return nil, errorx.InvalidArgumentErrorf("embedding property %q has non-positive dims %d", prop.Field, prop.Dims)
		}

		path := "mappings.properties." + escapePathElement(prop.Field)
		value := fmt.Appendf(nil, `{"type":"dense_vector","dims":%d}`, prop.Dims)

		var err error
		out, err = sjson.SetRawBytes(out, path, value)
		if err != nil {
			return nil, errorx.InvalidArgumentErrorf("unable to merge embedding property %q: %s", prop.Field, err)
		}
	}

	return out, nil
}

var pathElementEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

// escapePathElement escapes path syntax in a field name so dotted field names
// address a single mapping key.
func escapePathElement(s string) string {
	return pathElementEscaper.Replace(s)
}
