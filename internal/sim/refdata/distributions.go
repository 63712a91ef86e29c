package refdata

import "github.com/revcycle/revcycle/internal/domain/claims"

// Claim age classes conditioning the initial-status distributions.
const (
	AgeRecent     = "recent"
	AgeAging      = "aging"
	AgeHistorical = "historical"
)

// ClassifyClaimAge buckets a claim by days since date of service.
func ClassifyClaimAge(days int) string {
	switch {
	case days <= 30:
		return AgeRecent
	case days <= 90:
		return AgeAging
	default:
		return AgeHistorical
	}
}

// statusTable is a categorical law over the 12 claim statuses, in
// claims.AllStatuses order.
type statusTable []float64

var statusDistributions = map[string]statusTable{
	// draft, ready_to_submit, submitted, acknowledged, pending, paid,
	// partial_paid, denied, rejected, appealed, written_off, closed
	AgeRecent:     {0.05, 0.10, 0.20, 0.15, 0.30, 0.08, 0.02, 0.06, 0.02, 0.02, 0.00, 0.00},
	AgeAging:      {0.01, 0.02, 0.07, 0.05, 0.25, 0.30, 0.07, 0.12, 0.03, 0.05, 0.01, 0.02},
	AgeHistorical: {0.00, 0.00, 0.00, 0.00, 0.02, 0.55, 0.10, 0.08, 0.03, 0.04, 0.08, 0.10},
}

// StatusDistribution returns the status names and weights for an age class.
// Unknown classes use the historical table.
func StatusDistribution(ageClass string) ([]string, []float64) {
	t, ok := statusDistributions[ageClass]
	if !ok {
		t = statusDistributions[AgeHistorical]
	}
	return claims.AllStatuses, t
}

// NewClaimStatusDistribution is the law for freshly authored claims on the
// daily-generation path.
func NewClaimStatusDistribution() ([]string, []float64) {
	return []string{claims.StatusDraft, claims.StatusReadyToSubmit}, []float64{0.30, 0.70}
}

// PayoutRatio is the paid-to-allowed ratio applied when a claim settles in
// the given status. Non-settled statuses return ok=false.
func PayoutRatio(status string) (float64, bool) {
	switch status {
	case claims.StatusPaid, claims.StatusClosed:
		return 0.80, true
	case claims.StatusPartialPaid:
		return 0.60, true
	case claims.StatusWrittenOff:
		return 0.0, true
	default:
		return 0, false
	}
}

// RecencyBand restricts a sampled date of service to an age window in days.
type RecencyBand struct {
	MinDays int
	MaxDays int
	Weight  float64
}

// ServiceDateBands weights dates of service toward recency: 15% within a
// week, 25% within a month, 25% within a quarter, 20% within a year, 15%
// older.
var ServiceDateBands = []RecencyBand{
	{1, 7, 0.15},
	{8, 30, 0.25},
	{31, 90, 0.25},
	{91, 365, 0.20},
	{366, 1095, 0.15},
}

// DenialStatusDistribution returns the denial-status law conditioned on the
// parent claim's status. ok is false when the claim status does not produce
// denials.
func DenialStatusDistribution(claimStatus string) ([]string, []float64, bool) {
	switch claimStatus {
	case claims.StatusDenied:
		return []string{"new", "in_review"}, []float64{0.60, 0.40}, true
	case claims.StatusRejected:
		return []string{"new"}, []float64{1.00}, true
	case claims.StatusAppealed:
		return []string{"appealing", "appeal_submitted"}, []float64{0.50, 0.50}, true
	default:
		return nil, nil, false
	}
}

// AppealOutcomes is the fixed categorical law for decided appeals.
var (
	AppealOutcomeNames   = []string{"overturned", "partially_overturned", "upheld"}
	AppealOutcomeWeights = []float64{0.40, 0.15, 0.45}
)

// PaymentMethodDistribution returns the payment-method law for a payer type.
func PaymentMethodDistribution(payerType string) ([]string, []float64) {
	switch payerType {
	case PayerMedicare, PayerMedicaid:
		return []string{"eft", "check"}, []float64{0.85, 0.15}
	case PayerCommercial:
		return []string{"eft", "virtual_card", "check"}, []float64{0.50, 0.25, 0.25}
	case PayerWorkersComp:
		return []string{"check", "eft"}, []float64{0.60, 0.40}
	case PayerSelfPay:
		return []string{"check", "cash", "credit_card"}, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	default:
		return []string{"eft", "check"}, []float64{0.70, 0.30}
	}
}
