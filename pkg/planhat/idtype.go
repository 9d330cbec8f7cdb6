package planhat

// IDType selects which of an object's identity fields to use when building
// URL path segments or querying a collection index. The string value of
// each variant is the exact prefix the API expects in path segments;
// callers relying on the path convention must not alter these.
type IDType string

const (
	// PlanhatID is the identifier assigned by Planhat itself ("_id").
	// Path segments carry it without a prefix.
	PlanhatID IDType = ""

	// SourceID is an identifier carried over from an upstream CRM
	// ("sourceId"), prefixed "srcid-" in path segments.
	SourceID IDType = "srcid-"

	// ExternalID is an identifier defined by the integrating caller's own
	// system ("externalId"), prefixed "extid-" in path segments.
	ExternalID IDType = "extid-"
)

// Valid reports whether the IDType is one of the three known variants.
func (t IDType) Valid() bool {
	switch t {
	case PlanhatID, SourceID, ExternalID:
		return true
	default:
		return false
	}
}

// Prefix returns the path segment prefix for the variant.
func (t IDType) Prefix() string {
	return string(t)
}

// Apply prefixes an identifier for use as a URL path segment.
func (t IDType) Apply(id string) string {
	return string(t) + id
}

// Name returns a human-readable name for the variant.
func (t IDType) Name() string {
	switch t {
	case SourceID:
		return "source ID"
	case ExternalID:
		return "external ID"
	default:
		return "ID"
	}
}

// idTypePriority is the fixed fallback order used wherever an object's
// identity is resolved: native first, then source, then external.
var idTypePriority = [3]IDType{PlanhatID, SourceID, ExternalID}
