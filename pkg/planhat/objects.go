package planhat

// Per-kind constructors. Each wraps a raw field mapping as an object of
// the named kind; field names must match the vendor API documentation for
// creates and updates to succeed.

// NewCompany wraps data as a company ("account").
func NewCompany(data map[string]any) *Object {
	return NewObject(KindCompany, data)
}

// NewAsset wraps data as an asset.
func NewAsset(data map[string]any) *Object {
	return NewObject(KindAsset, data)
}

// NewCampaign wraps data as a campaign.
func NewCampaign(data map[string]any) *Object {
	return NewObject(KindCampaign, data)
}

// NewChurn wraps data as a churn log entry.
func NewChurn(data map[string]any) *Object {
	return NewObject(KindChurn, data)
}

// NewConversation wraps data as a conversation.
func NewConversation(data map[string]any) *Object {
	return NewObject(KindConversation, data)
}

// NewCustomField wraps data as a custom field definition.
func NewCustomField(data map[string]any) *Object {
	return NewObject(KindCustomField, data)
}

// NewEnduser wraps data as an enduser.
func NewEnduser(data map[string]any) *Object {
	return NewObject(KindEnduser, data)
}

// NewInvoice wraps data as an invoice.
func NewInvoice(data map[string]any) *Object {
	return NewObject(KindInvoice, data)
}

// NewIssue wraps data as an issue.
func NewIssue(data map[string]any) *Object {
	return NewObject(KindIssue, data)
}

// NewLicense wraps data as a license.
func NewLicense(data map[string]any) *Object {
	return NewObject(KindLicense, data)
}

// NewNote wraps data as a note. Notes are conversations with a custom
// touch type and are served by the conversations endpoint.
func NewNote(data map[string]any) *Object {
	return NewObject(KindNote, data)
}

// NewNPS wraps data as an NPS survey response.
func NewNPS(data map[string]any) *Object {
	return NewObject(KindNPS, data)
}

// NewOpportunity wraps data as a sales opportunity.
func NewOpportunity(data map[string]any) *Object {
	return NewObject(KindOpportunity, data)
}

// NewObjective wraps data as an objective.
func NewObjective(data map[string]any) *Object {
	return NewObject(KindObjective, data)
}

// NewProject wraps data as a project.
func NewProject(data map[string]any) *Object {
	return NewObject(KindProject, data)
}

// NewSale wraps data as a sale (non-recurring revenue).
func NewSale(data map[string]any) *Object {
	return NewObject(KindSale, data)
}

// NewTask wraps data as a task.
func NewTask(data map[string]any) *Object {
	return NewObject(KindTask, data)
}

// NewTicket wraps data as a ticket.
func NewTicket(data map[string]any) *Object {
	return NewObject(KindTicket, data)
}

// NewUser wraps data as a team member user.
func NewUser(data map[string]any) *Object {
	return NewObject(KindUser, data)
}

// NewWorkspace wraps data as a workspace.
func NewWorkspace(data map[string]any) *Object {
	return NewObject(KindWorkspace, data)
}

// NewMetric wraps data as a dimension data point.
func NewMetric(data map[string]any) *Object {
	return NewObject(KindMetric, data)
}
