package generate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/revcycle/revcycle/internal/domain/claims"
	"github.com/revcycle/revcycle/internal/domain/payments"
	"github.com/revcycle/revcycle/internal/sim/identifier"
	"github.com/revcycle/revcycle/internal/sim/refdata"
	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// PaymentBundle is the remittance side of a settled claim: zero to two
// payments plus the per-line adjustments that reconcile charges to payments.
type PaymentBundle struct {
	Payments    []*payments.Payment
	Adjustments []*payments.Adjustment
}

// patientPaymentRate is the probability a patient balance has been paid.
const patientPaymentRate = 0.40

// patientPaidInFullRate is the share of patient payments covering the whole
// balance rather than a fraction of it.
const patientPaidInFullRate = 0.70

var patientMethods = []string{payments.MethodCheck, payments.MethodCash, payments.MethodCreditCard}

// Payments generates the payment bundle for a settled claim. Claims without
// totals produce an empty bundle.
func (g *Generator) Payments(claim *claims.Claim, lines []*claims.LineItem, asOf time.Time) (*PaymentBundle, error) {
	bundle := &PaymentBundle{}
	if claim.Totals == nil {
		return bundle, nil
	}
	totals := claim.Totals

	paidAt := g.remittanceDate(claim)

	if totals.PaidAmount.IsPositive() {
		method, err := g.insuranceMethod(claim.PayerType)
		if err != nil {
			return nil, err
		}
		bundle.Payments = append(bundle.Payments, &payments.Payment{
			ID:        uuid.New(),
			ClaimID:   claim.ID,
			OrgID:     claim.OrgID,
			Type:      payments.TypeInsurance,
			Method:    method,
			Amount:    totals.PaidAmount,
			Reference: identifier.PaymentReference(g.src),
			PaidAt:    paidAt,
			CreatedAt: asOf,
		})
	}

	if totals.PatientResponsibility.IsPositive() && sampling.Bernoulli(g.src, patientPaymentRate) {
		amount := totals.PatientResponsibility
		if !sampling.Bernoulli(g.src, patientPaidInFullRate) {
			amount = amount.Mul(decimal.NewFromFloat(sampling.Between(g.src, 0.1, 0.9))).Round(2)
		}
		bundle.Payments = append(bundle.Payments, &payments.Payment{
			ID:        uuid.New(),
			ClaimID:   claim.ID,
			OrgID:     claim.OrgID,
			Type:      payments.TypePatient,
			Method:    patientMethods[sampling.IntN(g.src, len(patientMethods))],
			Amount:    amount,
			Reference: fmt.Sprintf("PMT-%08d", sampling.IntN(g.src, 100000000)),
			PaidAt:    paidAt.AddDate(0, 0, 7+sampling.IntN(g.src, 30)),
			CreatedAt: asOf,
		})
	}

	bundle.Adjustments = g.adjustments(claim, lines, asOf)
	return bundle, nil
}

// remittanceDate places the insurance payment after submission by the
// payer's typical processing time, with day-level jitter.
func (g *Generator) remittanceDate(claim *claims.Claim) time.Time {
	base := claim.ServiceDate
	if claim.SubmittedAt != nil {
		base = *claim.SubmittedAt
	}
	processing := 14
	for _, p := range refdata.Payers {
		if p.Type == claim.PayerType {
			processing = p.AvgProcessingDays
			break
		}
	}
	return base.AddDate(0, 0, processing+sampling.IntN(g.src, 10))
}

func (g *Generator) insuranceMethod(payerType string) (string, error) {
	methods, weights := refdata.PaymentMethodDistribution(payerType)
	method, err := sampling.WeightedChoice(g.src, methods, weights)
	if err != nil {
		return "", fmt.Errorf("draw payment method: %w", err)
	}
	return method, nil
}

// adjustments spreads the claim's contractual adjustment across its line
// items with jitter, the last line absorbing rounding so the rows sum to the
// claim total exactly, then books the patient responsibility as a single
// randomly categorized adjustment.
func (g *Generator) adjustments(claim *claims.Claim, lines []*claims.LineItem, asOf time.Time) []*payments.Adjustment {
	if len(lines) == 0 {
		return nil
	}
	var out []*payments.Adjustment
	totals := claim.Totals

	if totals.AdjustmentAmount.IsPositive() {
		n := int64(len(lines))
		share := totals.AdjustmentAmount.Div(decimal.NewFromInt(n)).Round(2)
		remaining := totals.AdjustmentAmount
		for i, li := range lines {
			amount := share.Mul(decimal.NewFromFloat(sampling.Between(g.src, 0.9, 1.1))).Round(2)
			if i == len(lines)-1 || amount.GreaterThan(remaining) {
				amount = remaining
			}
			if !amount.IsPositive() {
				continue
			}
			out = append(out, &payments.Adjustment{
				ID:          uuid.New(),
				ClaimID:     claim.ID,
				LineItemID:  li.ID,
				GroupCode:   payments.GroupContractual,
				ReasonCode:  payments.ReasonContractual,
				Description: "Charge exceeds fee schedule",
				Amount:      amount,
				CreatedAt:   asOf,
			})
			remaining = remaining.Sub(amount)
		}
	}

	if totals.PatientResponsibility.IsPositive() {
		reasons := []struct{ code, desc string }{
			{payments.ReasonDeductible, "Deductible amount"},
			{payments.ReasonCoinsurance, "Coinsurance amount"},
			{payments.ReasonCopay, "Copay amount"},
		}
		r := reasons[sampling.IntN(g.src, len(reasons))]
		li := lines[sampling.IntN(g.src, len(lines))]
		out = append(out, &payments.Adjustment{
			ID:          uuid.New(),
			ClaimID:     claim.ID,
			LineItemID:  li.ID,
			GroupCode:   payments.GroupPatientResp,
			ReasonCode:  r.code,
			Description: r.desc,
			Amount:      totals.PatientResponsibility,
			CreatedAt:   asOf,
		})
	}
	return out
}
