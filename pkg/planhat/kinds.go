package planhat

import "fmt"

// Kind identifies a Planhat resource kind. The set is closed: every kind
// the vendor API exposes has a constant below, and a Kind outside the set
// is rejected wherever one is accepted.
type Kind string

const (
	KindCompany      Kind = "company"
	KindAsset        Kind = "asset"
	KindCampaign     Kind = "campaign"
	KindChurn        Kind = "churn"
	KindConversation Kind = "conversation"
	KindCustomField  Kind = "customfield"
	KindEnduser      Kind = "enduser"
	KindInvoice      Kind = "invoice"
	KindIssue        Kind = "issue"
	KindLicense      Kind = "license"
	// KindNote is served by the conversations endpoint; notes are
	// conversations with a custom touch type.
	KindNote        Kind = "note"
	KindNPS         Kind = "nps"
	KindOpportunity Kind = "opportunity"
	KindObjective   Kind = "objective"
	KindProject     Kind = "project"
	KindSale        Kind = "sale"
	KindTask        Kind = "task"
	KindTicket      Kind = "ticket"
	KindUser        Kind = "user"
	KindWorkspace   Kind = "workspace"
	// KindMetric represents time-series dimension data points.
	KindMetric Kind = "metric"
)

type kindInfo struct {
	apiName      string
	singular     string
	plural       string
	companyOwned bool
	pageLimit    int
}

const (
	defaultPageLimit = 2000
	companyPageLimit = 5000
)

var kinds = map[Kind]kindInfo{
	KindCompany:      {"companies", "company", "companies", false, companyPageLimit},
	KindAsset:        {"assets", "asset", "assets", true, defaultPageLimit},
	KindCampaign:     {"campaigns", "campaign", "campaigns", true, defaultPageLimit},
	KindChurn:        {"churn", "churn", "churns", true, defaultPageLimit},
	KindConversation: {"conversations", "conversation", "conversations", true, defaultPageLimit},
	KindCustomField:  {"customfields", "custom field", "custom fields", false, defaultPageLimit},
	KindEnduser:      {"endusers", "enduser", "endusers", true, defaultPageLimit},
	KindInvoice:      {"invoices", "invoice", "invoices", true, defaultPageLimit},
	KindIssue:        {"issues", "issue", "issues", false, defaultPageLimit},
	KindLicense:      {"licenses", "license", "licenses", true, defaultPageLimit},
	KindNote:         {"conversations", "note", "notes", true, defaultPageLimit},
	KindNPS:          {"nps", "nps", "nps", true, defaultPageLimit},
	KindOpportunity:  {"opportunities", "opportunity", "opportunities", true, defaultPageLimit},
	KindObjective:    {"objectives", "objective", "objectives", true, defaultPageLimit},
	KindProject:      {"projects", "project", "projects", true, defaultPageLimit},
	KindSale:         {"sales", "sale", "sales", true, defaultPageLimit},
	KindTask:         {"tasks", "task", "tasks", true, defaultPageLimit},
	KindTicket:       {"tickets", "ticket", "tickets", true, defaultPageLimit},
	KindUser:         {"users", "user", "users", false, defaultPageLimit},
	KindWorkspace:    {"workspaces", "workspace", "workspaces", true, defaultPageLimit},
	KindMetric:       {"dimensiondata", "metric", "metrics", true, defaultPageLimit},
}

// Valid reports whether the kind is part of the closed set.
func (k Kind) Valid() bool {
	_, ok := kinds[k]

	return ok
}

// APIName returns the endpoint path segment for the kind, e.g. "companies".
func (k Kind) APIName() string {
	return kinds[k].apiName
}

// Singular returns the singular display name of the kind.
func (k Kind) Singular() string {
	return kinds[k].singular
}

// Plural returns the plural display name of the kind.
func (k Kind) Plural() string {
	return kinds[k].plural
}

// CompanyOwned reports whether objects of this kind carry a reference to
// the company that owns them.
func (k Kind) CompanyOwned() bool {
	return kinds[k].companyOwned
}

// PageLimit returns the maximum number of objects the API returns per
// request for this kind. Companies allow 5000, everything else 2000.
func (k Kind) PageLimit() int {
	limit := kinds[k].pageLimit
	if limit == 0 {
		return defaultPageLimit
	}

	return limit
}

// URLPath returns the endpoint path for the kind, e.g. "/companies".
func (k Kind) URLPath() (string, error) {
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}

	return "/" + kinds[k].apiName, nil
}

// KindFromAPIName resolves a kind from an endpoint path segment, e.g.
// "companies" -> KindCompany. Used to re-hydrate objects from responses
// when only the request path is known. The conversations endpoint always
// resolves to KindConversation (notes share it).
func KindFromAPIName(name string) (Kind, error) {
	switch name {
	case "conversations":
		return KindConversation, nil
	case "dimensiondata":
		return KindMetric, nil
	}

	for kind, info := range kinds {
		if kind == KindNote || kind == KindMetric {
			continue
		}

		if info.apiName == name || info.plural == name {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: no kind for endpoint %q", ErrUnknownKind, name)
}
