package refdata

// Payers is the built-in payer roster. IDs are stable keys referenced by
// organization payer mixes and persisted coverages.
var Payers = []PayerConfig{
	{ID: "medicare", Name: "Medicare Part B", Type: PayerMedicare,
		FilingDeadlineDays: 365, AppealDeadlineDays: 120, AvgProcessingDays: 14, BaseDenialRate: 0.08},
	{ID: "medicaid", Name: "State Medicaid", Type: PayerMedicaid,
		FilingDeadlineDays: 180, AppealDeadlineDays: 60, AvgProcessingDays: 30, BaseDenialRate: 0.15},
	{ID: "bcbs", Name: "Blue Cross Blue Shield", Type: PayerCommercial,
		FilingDeadlineDays: 180, AppealDeadlineDays: 180, AvgProcessingDays: 21, BaseDenialRate: 0.10},
	{ID: "uhc", Name: "UnitedHealthcare", Type: PayerCommercial,
		FilingDeadlineDays: 90, AppealDeadlineDays: 180, AvgProcessingDays: 18, BaseDenialRate: 0.12},
	{ID: "aetna", Name: "Aetna", Type: PayerCommercial,
		FilingDeadlineDays: 120, AppealDeadlineDays: 180, AvgProcessingDays: 20, BaseDenialRate: 0.11},
	{ID: "cigna", Name: "Cigna", Type: PayerCommercial,
		FilingDeadlineDays: 90, AppealDeadlineDays: 180, AvgProcessingDays: 19, BaseDenialRate: 0.11},
	{ID: "tricare", Name: "TRICARE East", Type: PayerTricare,
		FilingDeadlineDays: 365, AppealDeadlineDays: 90, AvgProcessingDays: 25, BaseDenialRate: 0.09},
	{ID: "workers_comp", Name: "State Workers Compensation Fund", Type: PayerWorkersComp,
		FilingDeadlineDays: 730, AppealDeadlineDays: 90, AvgProcessingDays: 45, BaseDenialRate: 0.22},
	{ID: "self_pay", Name: "Self Pay", Type: PayerSelfPay,
		FilingDeadlineDays: 0, AppealDeadlineDays: 0, AvgProcessingDays: 0, BaseDenialRate: 0.0},
}

var payersByID = func() map[string]PayerConfig {
	m := make(map[string]PayerConfig, len(Payers))
	for _, p := range Payers {
		m[p.ID] = p
	}
	return m
}()

// PayerByID resolves a payer config; ok is false for unknown IDs.
func PayerByID(id string) (PayerConfig, bool) {
	p, ok := payersByID[id]
	return p, ok
}

// allowedRatioRange bounds the allowed-to-charged ratio by payer type.
type allowedRatioRange struct{ Min, Max float64 }

var allowedRatios = map[string]allowedRatioRange{
	PayerCommercial:  {0.50, 0.80},
	PayerMedicare:    {0.30, 0.60},
	PayerMedicaid:    {0.25, 0.50},
	PayerTricare:     {0.35, 0.65},
	PayerWorkersComp: {0.45, 0.75},
	PayerSelfPay:     {0.90, 1.00},
}

// AllowedRatioBounds returns the [min, max] allowed-percentage bounds for a
// payer type. Unknown types fall back to the commercial range.
func AllowedRatioBounds(payerType string) (float64, float64) {
	r, ok := allowedRatios[payerType]
	if !ok {
		r = allowedRatios[PayerCommercial]
	}
	return r.Min, r.Max
}

// CompatibleSecondaries lists payer IDs suitable as secondary coverage for a
// primary payer type. Medicare primaries skew toward commercial supplements.
func CompatibleSecondaries(primaryType string) []string {
	switch primaryType {
	case PayerMedicare:
		return []string{"bcbs", "uhc", "aetna", "cigna", "medicaid"}
	case PayerMedicaid:
		return nil // Medicaid is the payer of last resort
	case PayerCommercial:
		return []string{"bcbs", "uhc", "aetna", "cigna"}
	case PayerTricare:
		return []string{"bcbs", "uhc"}
	default:
		return nil
	}
}
