package schema

import "github.com/jackc/pgx/v5/pgtype"

// Vendor is a payment provider with month-to-date fee and volume figures.
type Vendor struct {
	ID          string        `json:"id"`
	Vendor      string        `json:"vendor"`
	Category    string        `json:"category"`
	Status      string        `json:"status"`
	Accounts    int64         `json:"accounts"`
	VolumeMtd   float64       `json:"volumeMtd"`
	FeeMtd      float64       `json:"feeMtd"`
	FeeLeakage  pgtype.Float8 `json:"feeLeakage"`
	SlaBreaches int64         `json:"slaBreaches"`
	Alerts      pgtype.Int8   `json:"alerts"`
	Score       int64         `json:"score"`
}
