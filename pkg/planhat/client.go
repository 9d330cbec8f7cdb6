package planhat

import (
	"context"
	"net/http"
	"time"
)

// Client is the top-level Planhat API client surface.
type Client interface {
	// Objects returns the generic CRUD/list/upsert operations, usable
	// with any resource kind.
	Objects() ObjectsClient

	// Companies returns company-specific convenience operations.
	Companies() CompaniesClient

	// Metrics returns time-series dimension data operations.
	Metrics() MetricsClient

	// Analytics returns activity tracking operations on the analytics host.
	Analytics() AnalyticsClient
}

// ObjectsClient provides the generic operations, parameterized by resource
// kind. Not-found, auth, rate limit and server errors surface through the
// package error taxonomy; nothing is retried here (retry happens in the
// transport before a terminal response is seen).
type ObjectsClient interface {
	// List retrieves objects of a kind, paginating through the API's
	// limit/offset windows until a short page. Options filter by owning
	// company and restrict the returned fields.
	List(ctx context.Context, kind Kind, opts *ListOptions) (*ObjectList, error)

	// Get retrieves a single object by identifier. The idType selects the
	// prefix convention of the path segment.
	Get(ctx context.Context, kind Kind, id string, idType IDType) (*Object, error)

	// Create POSTs a new object to its kind endpoint. The payload must
	// not carry a Planhat-native ID.
	Create(ctx context.Context, obj *Object) (*Object, error)

	// Update PUTs an object to its URL path, addressing it by the first
	// populated identity field in precedence order.
	Update(ctx context.Context, obj *Object) (*Object, error)

	// Delete removes an object, addressed like Update.
	Delete(ctx context.Context, obj *Object) error

	// BulkUpsert PUTs the list to its kind endpoint in batches of at most
	// 5000 objects. Planhat matches each object by _id, then sourceId,
	// then externalId to decide between create and update. One result is
	// returned per batch.
	BulkUpsert(ctx context.Context, list *ObjectList) ([]BulkUpsertResult, error)

	// FindMissing returns the subset of list that does not exist in
	// Planhat, per the identity comparison rules.
	FindMissing(ctx context.Context, list *ObjectList) (*ObjectList, error)
}

// CompaniesClient provides company-specific operations.
type CompaniesClient interface {
	// ListLean lists every company through the lean endpoint, which
	// returns only names and IDs and is not subject to the usual page
	// limits. It always bypasses the cache.
	ListLean(ctx context.Context) (*ObjectList, error)
}

// MetricsClient provides access to time-series dimension data.
type MetricsClient interface {
	// DimensionData pages through /dimensiondata, optionally bounded by
	// company, dimension and a day range.
	DimensionData(ctx context.Context, opts *DimensionDataOptions) (*ObjectList, error)
}

// AnalyticsClient posts user activities to the analytics host. Both
// operations require the tenant UUID to be configured.
type AnalyticsClient interface {
	// Track creates a single activity.
	Track(ctx context.Context, activity map[string]any) error

	// BulkTrack creates a batch of activities in one call.
	BulkTrack(ctx context.Context, activities []map[string]any) error
}

// Logger is the logging interface the client reports through. The zero
// configuration logs nothing.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config configures a Planhat client. Credentials are always passed in
// explicitly; there is no ambient credential discovery.
type Config struct {
	// APIEndpoint is the base URL of the Planhat API. Defaults to
	// https://api.planhat.com.
	APIEndpoint string

	// AnalyticsEndpoint is the base URL of the analytics host. Defaults
	// to https://analytics.planhat.com.
	AnalyticsEndpoint string

	// APIKey is the Planhat API key used as a bearer token. Requests
	// without one fail with ErrAPIKeyRequired before any I/O.
	APIKey string

	// TenantUUID identifies the tenant for analytics calls. Only needed
	// when posting activities.
	TenantUUID string

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// Logger receives debug/error output. Nil means silent.
	Logger Logger

	// Debug enables request/response logging through Logger.
	Debug bool

	// RetryMax caps transport-level retries of rate limit and transient
	// server errors. Zero selects the default.
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the exponential backoff between
	// retries. Zero selects the defaults.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// HTTPClient overrides the underlying HTTP client, mainly for tests.
	HTTPClient *http.Client

	// DisableCache turns off read memoization. By default full list
	// retrievals are cached per kind and lookups consult the cache first.
	DisableCache bool

	// Cache selects the cache backend when caching is enabled. Nil means
	// the default in-memory cache.
	Cache *CacheConfig
}

// ListOptions filter and shape a List call.
type ListOptions struct {
	// CompanyIDs restricts the result to objects owned by these
	// companies (or, for companies themselves, to these IDs). Long ID
	// sets are split across requests so the joined parameter stays
	// within the API's limits.
	CompanyIDs []string

	// Properties restricts the fields of the returned objects via the
	// "select" parameter. Nil lets the API default apply (_id and name).
	Properties []string

	// PageLimit overrides the per-request page size. Zero uses the
	// kind's maximum (5000 for companies, 2000 otherwise).
	PageLimit int
}

// DimensionDataOptions bound a DimensionData call. Day bounds are
// expressed as days since the Unix epoch, the vendor's convention for
// dimension data timestamps.
type DimensionDataOptions struct {
	// CompanyID restricts to one company's data points.
	CompanyID string

	// DimensionID restricts to one dimension.
	DimensionID string

	// From and To bound the day range, inclusive. Zero values are
	// omitted from the query.
	From time.Time
	To   time.Time

	// MaxLength caps the total number of data points fetched. Zero
	// means no cap; the client pages until the data runs out.
	MaxLength int
}

// EpochDays converts a time to whole days since the Unix epoch.
func EpochDays(t time.Time) int {
	return int(t.UTC().Sub(time.Unix(0, 0).UTC()).Hours() / 24)
}

// BulkUpsertResult is the vendor's response to one bulk upsert batch.
type BulkUpsertResult struct {
	Created          int         `json:"created"`
	CreatedErrors    []any       `json:"createdErrors"`
	InsertsKeys      []UpsertKey `json:"insertsKeys"`
	Updated          int         `json:"updated"`
	UpdatedErrors    []any       `json:"updatedErrors"`
	UpdatesKeys      []UpsertKey `json:"updatesKeys"`
	NonUpdates       int         `json:"nonupdates"`
	Modified         []string    `json:"modified"`
	UpsertedIDs      []string    `json:"upsertedIds"`
	PermissionErrors []any       `json:"permissionErrors"`
}

// UpsertKey identifies one object touched by a bulk upsert.
type UpsertKey struct {
	ID         string `json:"_id"`
	SourceID   string `json:"sourceId,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}
