package elasticx

import (
	"encoding/json"

	"github.com/ghodss/yaml"

	"github.com/clinia/kbx/errorx"
)

// MappingFromYAML converts a YAML-authored mapping document to the JSON form
// the engine and the adapters operate on.
func MappingFromYAML(b []byte) (json.RawMessage, error) {
	out, err := yaml.YAMLToJSON(b)
	if err != nil {
		return nil, errorx.InvalidArgumentErrorf("unable to convert mapping from YAML: %s", err)
	}

	return out, nil
}
