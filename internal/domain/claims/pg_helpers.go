package claims

import "github.com/shopspring/decimal"

func parseDec(s string) (decimal.Decimal, error) { return decimal.NewFromString(s) }

func strPtr(s string) *string { return &s }
