package schema

import "github.com/jackc/pgx/v5/pgtype"

// Account is a merchant account held at a vendor.
type Account struct {
	ID            string        `json:"id"`
	AccountName   string        `json:"accountName"`
	AccountID     string        `json:"accountId"`
	Vendor        string        `json:"vendor"`
	Environment   string        `json:"environment"`
	Currency      string        `json:"currency"`
	Balance       float64       `json:"balance"`
	PendingAmount pgtype.Float8 `json:"pendingAmount"`
	Transactions  int64         `json:"transactions"`
	SuccessRate   pgtype.Float8 `json:"successRate"`
	Status        string        `json:"status"`
}
