package constants

import "time"

// API endpoints.
const (
	// DefaultAPIEndpoint is the Planhat REST API base URL.
	DefaultAPIEndpoint = "https://api.planhat.com"

	// DefaultAnalyticsEndpoint is the Planhat analytics ingestion base URL.
	DefaultAnalyticsEndpoint = "https://analytics.planhat.com"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination and batching limits.
const (
	// DefaultPageLimit is the page size for most object endpoints.
	DefaultPageLimit = 2000

	// CompanyPageLimit is the page size for the companies endpoint.
	CompanyPageLimit = 5000

	// MaxPages caps pagination loops against a misbehaving server.
	MaxPages = 1000

	// BulkUpsertBatchSize is the number of objects sent per bulk upsert
	// request.
	BulkUpsertBatchSize = 5000

	// MaxCompanyIDsLength caps the summed length of company IDs placed in
	// a single companyId query parameter.
	MaxCompanyIDsLength = 2000
)

// Cache size and lifetime constants.
const (
	// DefaultCacheSize is the default cache entry limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
