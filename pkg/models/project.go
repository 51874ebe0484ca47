package models

// ProjectTask is one quote line item pending reconciliation against the
// catalog. Tasks hold denormalized copies of a product's reference and name,
// never a link into the catalog, so catalog edits do not retroactively update
// existing tasks.
type ProjectTask struct {
	ID          string `json:"id"`
	Reference   string `json:"reference"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Project is one client worksite. It exclusively owns its task list and its
// generated image history. CreatedAt is a formatted creation date, immutable
// after creation. SitePhoto is empty until the operator uploads one.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt string        `json:"createdAt"`
	SitePhoto string        `json:"sitePhoto"`
	Tasks     []ProjectTask `json:"tasks"`
	// GeneratedImages is an append-only history, insertion order chronological.
	GeneratedImages []string `json:"generatedImages"`
}

// TaskCandidate is a partial task produced by AI extraction or a spreadsheet
// row before it is normalized into a ProjectTask. Absent fields default to
// the empty string at ingestion.
type TaskCandidate struct {
	Reference   string `json:"reference"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// IsEmpty reports whether no recognized field carries a value.
func (c TaskCandidate) IsEmpty() bool {
	return c.Reference == "" && c.Name == "" && c.Location == "" && c.Description == ""
}

// MatchResult is the read-time reconciliation outcome for one task.
type MatchResult struct {
	TaskID  string   `json:"taskId"`
	Term    string   `json:"term"`
	Product *Product `json:"product,omitempty"`
	IsFound bool     `json:"isFound"`
}
