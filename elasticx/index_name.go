package elasticx

import (
	"regexp"
	"strings"

	"github.com/clinia/kbx/errorx"
)

// IndexName is the scoped name of a knowledge-base index: the tenant
// namespace and the logical index name joined by the scope separator,
// e.g. "my_app$faq". It is the sole identifier sent to the engine.
type IndexName string

const scopeSeparator = "$"

var isScopeElement = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`).MatchString

// NewIndexName scopes a logical index name under a tenant namespace. Elements
// are restricted to lowercase alphanumerics, "_" and "-" so the scoped name
// is always a valid engine index name and splits back unambiguously.
func NewIndexName(namespace, name string) (IndexName, error) {
	for _, element := range []string{namespace, name} {
		if !isScopeElement(element) {
			return "", errorx.InvalidArgumentErrorf("index name element %q must match ^[a-z0-9][a-z0-9_-]*$", element)
		}
	}

	return IndexName(namespace + scopeSeparator + name), nil
}

// Namespace returns the tenant namespace of the scoped name.
func (i IndexName) Namespace() string {
	namespace, _, _ := strings.Cut(string(i), scopeSeparator)
	return namespace
}

// Name returns the logical index name of the scoped name.
func (i IndexName) Name() string {
	_, name, _ := strings.Cut(string(i), scopeSeparator)
	return name
}

func (i IndexName) String() string {
	return string(i)
}
