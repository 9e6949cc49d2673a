// internal/app/features/wizardapi/types.go
package wizardapi

import (
	"github.com/omstools/importassist/internal/domain/oms"
)

// viewRequest sets filters, sort, and pagination in one call. Zero-valued
// fields mean "no change" for page/pageSize and "no filter" for the rest.
type viewRequest struct {
	Query    string   `json:"query"`
	IDs      []string `json:"ids"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	SortBy   string   `json:"sortBy"`
	SortDesc bool     `json:"sortDesc"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

// viewResponse is one page of the projection plus the full selection so
// the client can mark checked rows on any page.
type viewResponse struct {
	Rows        []oms.Row `json:"rows"`
	PageIDs     []string  `json:"pageIds"`
	Total       int       `json:"total"`
	Page        int       `json:"page"`
	PageSize    int       `json:"pageSize"`
	SelectedIDs []string  `json:"selectedIds"`
}

// idsRequest carries explicit row ids for select/deselect.
type idsRequest struct {
	IDs []string `json:"ids"`
}

// actionRequest chooses the action; the target fields matter only for
// copy and may arrive in the same call or a later one.
type actionRequest struct {
	Action              string `json:"action"`
	TargetMediaPlanID   string `json:"targetMediaPlanId"`
	TargetMediaPlanName string `json:"targetMediaPlanName"`
	TargetOpportunityID string `json:"targetOpportunityId"`
}

// editRequest sets one field of one buffer entry, keyed by stable id.
type editRequest struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// editResponse echoes the display value after the edit, with date
// normalization applied.
type editResponse struct {
	Value string `json:"value"`
}

// reviewResponse mirrors the processing endpoints' success shape.
type reviewResponse struct {
	ReviewData  []oms.Row `json:"review_data"`
	DownloadURL string    `json:"download_url"`
}
