package planhat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Well-known field names of the vendor's JSON payloads.
const (
	fieldID         = "_id"
	fieldSourceID   = "sourceId"
	fieldExternalID = "externalId"
	fieldCustom     = "custom"
)

// Response captures the raw API response an object was decoded from. It is
// kept on the object for diagnostics only and plays no part in identity or
// serialization.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Object is a single Planhat resource: a resource kind plus the raw field
// mapping decoded from (or destined for) the API. Accessors read specific
// keys of the mapping; none of them synthesize or default values beyond
// the empty string.
type Object struct {
	kind Kind
	data map[string]any
	resp *Response
}

// NewObject wraps data as an object of the given kind. A nil map is
// replaced with an empty one. The map is used as-is, not copied.
func NewObject(kind Kind, data map[string]any) *Object {
	if data == nil {
		data = make(map[string]any)
	}

	return &Object{kind: kind, data: data}
}

// ObjectFromResponse decodes a response body that must contain a single
// JSON object. Array or scalar bodies are a type mismatch naming the
// unexpected shape. The returned object retains resp for diagnostics.
func ObjectFromResponse(kind Kind, resp *Response) (*Object, error) {
	decoded, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}

	data, ok := decoded.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{Want: "a single JSON object", Got: describeShape(decoded)}
	}

	obj := NewObject(kind, data)
	obj.resp = resp

	return obj, nil
}

// ListFromResponse decodes a response body into a typed list. Array bodies
// decode element-wise; a single-object body becomes a one-element list;
// anything else is a type mismatch naming the unexpected shape. Every
// element retains resp for diagnostics.
func ListFromResponse(kind Kind, resp *Response) (*ObjectList, error) {
	decoded, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}

	switch body := decoded.(type) {
	case map[string]any:
		obj := NewObject(kind, body)
		obj.resp = resp

		return newListOfKind(kind, []*Object{obj}), nil
	case []any:
		items := make([]*Object, 0, len(body))

		for i, elem := range body {
			data, ok := elem.(map[string]any)
			if !ok {
				return nil, &TypeMismatchError{
					Want: "a JSON object at index " + fmt.Sprint(i),
					Got:  describeShape(elem),
				}
			}

			obj := NewObject(kind, data)
			obj.resp = resp
			items = append(items, obj)
		}

		return newListOfKind(kind, items), nil
	default:
		return nil, &TypeMismatchError{Want: "a JSON object or array", Got: describeShape(decoded)}
	}
}

// ObjectsFromData wraps a slice of raw mappings as a typed list.
func ObjectsFromData(kind Kind, data []map[string]any) *ObjectList {
	items := make([]*Object, 0, len(data))
	for _, d := range data {
		items = append(items, NewObject(kind, d))
	}

	return newListOfKind(kind, items)
}

func decodeBody(resp *Response) (any, error) {
	if resp == nil {
		return nil, &TypeMismatchError{Want: "a response with a JSON body", Got: "nil response"}
	}

	var decoded any

	err := json.Unmarshal(resp.Body, &decoded)
	if err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	return decoded, nil
}

func describeShape(v any) string {
	switch v.(type) {
	case map[string]any:
		return "a JSON object"
	case []any:
		return "a JSON array"
	case string:
		return "a JSON string"
	case float64:
		return "a JSON number"
	case bool:
		return "a JSON boolean"
	case nil:
		return "JSON null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Kind returns the resource kind of the object.
func (o *Object) Kind() Kind {
	return o.kind
}

// Response returns the API response the object was decoded from, or nil
// for objects built programmatically.
func (o *Object) Response() *Response {
	return o.resp
}

// Data returns the underlying field mapping.
func (o *Object) Data() map[string]any {
	return o.data
}

// Get returns the raw value of a field.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.data[key]

	return v, ok
}

// GetString returns a field's value as a string, or "" when the field is
// absent or not a string.
func (o *Object) GetString(key string) string {
	s, _ := o.data[key].(string)

	return s
}

// Set stores a field value.
func (o *Object) Set(key string, value any) {
	o.data[key] = value
}

// Unset removes a field.
func (o *Object) Unset(key string) {
	delete(o.data, key)
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.data)
}

// ID returns the Planhat-native identifier, or "" when unset.
func (o *Object) ID() string {
	return o.GetString(fieldID)
}

// SourceID returns the upstream-CRM identifier, or "" when unset.
func (o *Object) SourceID() string {
	return o.GetString(fieldSourceID)
}

// ExternalID returns the caller-defined identifier, or "" when unset.
func (o *Object) ExternalID() string {
	return o.GetString(fieldExternalID)
}

// Custom returns the custom-fields sub-mapping, or nil when unset.
func (o *Object) Custom() map[string]any {
	m, _ := o.data[fieldCustom].(map[string]any)

	return m
}

// Name returns the "name" field.
func (o *Object) Name() string {
	return o.GetString("name")
}

// CompanyID returns the owning company's ID for company-owned kinds,
// reading "companyId" and falling back to the abbreviated "cId" some
// endpoints use.
func (o *Object) CompanyID() string {
	if id := o.GetString("companyId"); id != "" {
		return id
	}

	return o.GetString("cId")
}

// CompanyName returns the owning company's name ("companyName" or "cName").
func (o *Object) CompanyName() string {
	if name := o.GetString("companyName"); name != "" {
		return name
	}

	return o.GetString("cName")
}

// Email returns the "email" field (endusers, users, tickets).
func (o *Object) Email() string {
	return o.GetString("email")
}

// FirstName returns the "firstName" field (users).
func (o *Object) FirstName() string {
	return o.GetString("firstName")
}

// LastName returns the "lastName" field (users).
func (o *Object) LastName() string {
	return o.GetString("lastName")
}

// TaskType returns the "type" field (tasks: "task" or "event").
func (o *Object) TaskType() string {
	return o.GetString("type")
}

// Parent returns the singular name of the model owning a custom field.
func (o *Object) Parent() string {
	return o.GetString("parent")
}

// CampaignID returns the "campaignId" field (NPS records).
func (o *Object) CampaignID() string {
	return o.GetString("campaignId")
}

// CompanyIDs returns the company links of an issue.
func (o *Object) CompanyIDs() []string {
	return o.stringSlice("companyIds")
}

// EnduserIDs returns the enduser links of an issue.
func (o *Object) EnduserIDs() []string {
	return o.stringSlice("enduserIds")
}

func (o *Object) stringSlice(key string) []string {
	raw, ok := o.data[key].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))

	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// identity resolves the object's identity: the first non-empty identity
// field in the fixed precedence order (native, source, external).
func (o *Object) identity() (IDType, string) {
	for _, idType := range idTypePriority {
		if value := o.identityField(idType); value != "" {
			return idType, value
		}
	}

	return PlanhatID, ""
}

func (o *Object) identityField(idType IDType) string {
	switch idType {
	case SourceID:
		return o.SourceID()
	case ExternalID:
		return o.ExternalID()
	default:
		return o.ID()
	}
}

// IsSameObject reports whether other refers to the same Planhat object.
// Both sides resolve their identity through the precedence order; the
// result is true iff both resolve to the same non-empty string. It never
// fails: a nil other or an object with no resolvable identity compares
// unequal.
func (o *Object) IsSameObject(other *Object) bool {
	if o == nil || other == nil {
		return false
	}

	_, id := o.identity()
	_, otherID := other.identity()

	return id != "" && id == otherID
}

// URLPath returns the path segment addressing this object, as
// "/{endpoint}/{prefix}{id}", using the requested identifier variant.
// When that variant's field is unset the path falls back through the
// precedence order, carrying the prefix of the variant actually used.
// An object with no identity fields at all cannot be addressed.
func (o *Object) URLPath(idType IDType) (string, error) {
	if !idType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidIDType, string(idType))
	}

	base, err := o.kind.URLPath()
	if err != nil {
		return "", err
	}

	if value := o.identityField(idType); value != "" {
		return base + "/" + idType.Apply(value), nil
	}

	usedType, value := o.identity()
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrNoUsableID, o.kind.Singular())
	}

	return base + "/" + usedType.Apply(value), nil
}

// ToSerializable returns the field mapping with every temporal value
// converted for the vendor API: time.Time rendered as an ISO 8601 string
// and time.Duration as seconds. Used when the object is embedded inside a
// larger payload.
func (o *Object) ToSerializable() map[string]any {
	out, _ := sanitizeValue(o.data).(map[string]any)

	return out
}

// MarshalJSON renders the object through the serializable view.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.ToSerializable()) //nolint:wrapcheck // marshal errors pass through
}

// Encode renders the object as UTF-8 JSON bytes for a request body,
// applying the temporal conversions of ToSerializable.
func (o *Object) Encode() ([]byte, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", o.kind.Singular(), err)
	}

	return data, nil
}

// String implements fmt.Stringer.
func (o *Object) String() string {
	return fmt.Sprintf("%s(id=%s, source_id=%s, external_id=%s)",
		o.kind.Singular(), o.ID(), o.SourceID(), o.ExternalID())
}

// sanitizeValue deep-converts temporal values for JSON encoding. The
// vendor expects ISO 8601 strings for dates and plain seconds for
// durations; everything else passes through untouched.
func sanitizeValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return nil
		}

		return val.UTC().Format(time.RFC3339)
	case time.Duration:
		return val.Seconds()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = sanitizeValue(elem)
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = sanitizeValue(elem)
		}

		return out
	default:
		return v
	}
}
