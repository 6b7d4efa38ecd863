package elasticx

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/clinia/kbx/errorx"
	"github.com/clinia/kbx/jsonx"
)

// defaultTemplateName is the name the index template is registered under.
// Registration overwrites, so a stale template from an older client self-heals
// on the next index creation.
const defaultTemplateName = "default"

// defaultTemplate applies engine-global defaults to every index created by
// this package. It is authored in the modern shape and adapted per generation
// at creation time. Callers replace it with the WithTemplate client option.
var defaultTemplate = jsonx.RawMessage(`{
	"index_patterns": ["*"],
	"settings": {
		"number_of_shards": 1
	},
	"mappings": {
		"dynamic": true
	}
}`)

// adaptTemplate rewrites a template document for the target generation.
// Besides the mapping nesting shared with AdaptMapping, legacy engines
// predate the "index_patterns" field and take a single "template" pattern
// instead.
func adaptTemplate(template json.RawMessage, generation Generation) (json.RawMessage, error) {
	out, err := AdaptMapping(template, generation)
	if err != nil {
		return nil, err
	}

	if !generation.RequiresDocType() {
		return out, nil
	}

	patterns := gjson.GetBytes(out, "index_patterns")
	if !patterns.Exists() {
		return out, nil
	}

	pattern := patterns.Raw
	if patterns.IsArray() {
		first := patterns.Get("0")
		if !first.Exists() {
			return nil, errorx.InvalidArgumentErrorf("template index_patterns is empty")
		}
		pattern = first.Raw
	}

	if out, err = sjson.DeleteBytes(out, "index_patterns"); err != nil {
		return nil, errorx.InvalidArgumentErrorf("unable to adapt template: %s", err)
	}
	if out, err = sjson.SetRawBytes(out, "template", []byte(pattern)); err != nil {
		return nil, errorx.InvalidArgumentErrorf("unable to adapt template: %s", err)
	}

	return out, nil
}
