package ledger

import (
	"strings"

	dErrors "regnet/pkg/domain-errors"
)

// Composite keys use the Fabric composite-key wire format: a leading U+0000
// marks the key as composite, then the namespace and each attribute follow,
// each terminated by U+0000. The delimiter cannot appear in attributes, so
// two distinct attribute tuples within a namespace never collide and
// decoding is the exact inverse of encoding.
const delimiter = "\x00"

// Namespace scopes one record type's keys. Identity and asset keys are
// never confusable even when their attribute values coincide.
type Namespace string

const (
	// UserNamespace addresses identity records, keyed by (name, national ID).
	UserNamespace Namespace = "org.property-registration-network.regnet.user"
	// PropertyNamespace addresses asset records, keyed by property ID.
	PropertyNamespace Namespace = "org.property-registration-network.regnet.property"
)

// Key derives the composite key for the ordered attributes under this
// namespace. Attributes must be non-empty and free of the delimiter rune.
func (n Namespace) Key(attrs ...string) (string, error) {
	if len(attrs) == 0 {
		return "", dErrors.Newf(dErrors.CodeInvalidArgument, "composite key for %q needs at least one attribute", n)
	}
	var b strings.Builder
	b.WriteString(delimiter)
	b.WriteString(string(n))
	b.WriteString(delimiter)
	for _, attr := range attrs {
		if attr == "" {
			return "", dErrors.Newf(dErrors.CodeInvalidArgument, "composite key for %q has an empty attribute", n)
		}
		if strings.Contains(attr, delimiter) {
			return "", dErrors.Newf(dErrors.CodeInvalidArgument, "composite key attribute %q contains a reserved character", attr)
		}
		b.WriteString(attr)
		b.WriteString(delimiter)
	}
	return b.String(), nil
}

// Split decomposes a composite key into its namespace and ordered
// attributes. It rejects keys not produced by Namespace.Key.
func Split(key string) (Namespace, []string, error) {
	if !strings.HasPrefix(key, delimiter) {
		return "", nil, dErrors.New(dErrors.CodeInvalidArgument, "not a composite key")
	}
	parts := strings.Split(key, delimiter)
	// Split yields "" before the leading and after the trailing delimiter.
	if len(parts) < 4 || parts[0] != "" || parts[len(parts)-1] != "" {
		return "", nil, dErrors.New(dErrors.CodeInvalidArgument, "malformed composite key")
	}
	ns := Namespace(parts[1])
	attrs := parts[2 : len(parts)-1]
	for _, attr := range attrs {
		if attr == "" {
			return "", nil, dErrors.New(dErrors.CodeInvalidArgument, "malformed composite key")
		}
	}
	return ns, attrs, nil
}
