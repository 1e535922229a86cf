package schema

import "github.com/jackc/pgx/v5/pgtype"

// Contract is a pricing agreement with a vendor.
type Contract struct {
	ID          string      `json:"id"`
	Contract    string      `json:"contract"`
	Vendor      string      `json:"vendor"`
	Type        string      `json:"type"`
	ActiveFrom  string      `json:"activeFrom"`
	ActiveUntil string      `json:"activeUntil"`
	Renewal     pgtype.Text `json:"renewal"`
	Status      string      `json:"status"`
}
