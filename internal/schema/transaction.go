package schema

import "github.com/jackc/pgx/v5/pgtype"

// Transaction is a single settled movement with its original and USD amounts.
// AmountOriginal and FeeOriginal are money strings such as "EUR 1,250.00".
type Transaction struct {
	ID              string        `json:"id"`
	DateTime        string        `json:"dateTime"`
	Vendor          string        `json:"vendor"`
	Type            string        `json:"type"`
	AmountOriginal  string        `json:"amountOriginal"`
	AmountUsd       float64       `json:"amountUsd"`
	FeeOriginal     string        `json:"feeOriginal"`
	FeeUsd          float64       `json:"feeUsd"`
	VarianceUsd     pgtype.Float8 `json:"varianceUsd"`
	VariancePercent pgtype.Float8 `json:"variancePercent"`
}
