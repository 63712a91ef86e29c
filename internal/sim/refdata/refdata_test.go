package refdata

import (
	"testing"

	"github.com/revcycle/revcycle/internal/domain/claims"
)

func TestStatusDistributions_SumToOne(t *testing.T) {
	for _, class := range []string{AgeRecent, AgeAging, AgeHistorical} {
		names, weights := StatusDistribution(class)
		if len(names) != 12 || len(weights) != 12 {
			t.Fatalf("%s: expected 12 statuses, got %d/%d", class, len(names), len(weights))
		}
		if err := CheckWeights(class, weights); err != nil {
			t.Error(err)
		}
	}
}

func TestNewClaimStatusDistribution_SumToOne(t *testing.T) {
	_, weights := NewClaimStatusDistribution()
	if err := CheckWeights("new_claim", weights); err != nil {
		t.Error(err)
	}
}

func TestOrganizations_PayerMixSumsToOne(t *testing.T) {
	for _, org := range Organizations {
		_, weights := org.MixWeights()
		if err := CheckWeights(org.Code+" payer mix", weights); err != nil {
			t.Error(err)
		}
		for _, m := range org.PayerMix {
			if _, ok := PayerByID(m.PayerID); !ok {
				t.Errorf("%s references unknown payer %s", org.Code, m.PayerID)
			}
		}
	}
}

func TestOrganizations_DenialCategoriesSumToOne(t *testing.T) {
	for _, org := range Organizations {
		_, weights := org.CategoryWeights()
		if err := CheckWeights(org.Code+" denial categories", weights); err != nil {
			t.Error(err)
		}
	}
}

func TestServiceDateBands_SumToOne(t *testing.T) {
	weights := make([]float64, len(ServiceDateBands))
	for i, b := range ServiceDateBands {
		weights[i] = b.Weight
		if b.MinDays > b.MaxDays {
			t.Errorf("band %d: min %d > max %d", i, b.MinDays, b.MaxDays)
		}
	}
	if err := CheckWeights("service date bands", weights); err != nil {
		t.Error(err)
	}
}

func TestProcedurePools_WeightsSumToOne(t *testing.T) {
	for specialty, pool := range proceduresBySpecialty {
		weights := make([]float64, len(pool))
		for i, p := range pool {
			weights[i] = p.Weight
		}
		if err := CheckWeights(specialty+" procedures", weights); err != nil {
			t.Error(err)
		}
	}
}

func TestDiagnosisPools_WeightsSumToOne(t *testing.T) {
	for specialty, pool := range diagnosesBySpecialty {
		weights := make([]float64, len(pool))
		for i, d := range pool {
			weights[i] = d.Weight
		}
		if err := CheckWeights(specialty+" diagnoses", weights); err != nil {
			t.Error(err)
		}
	}
}

func TestAppealOutcomes_SumToOne(t *testing.T) {
	if err := CheckWeights("appeal outcomes", AppealOutcomeWeights); err != nil {
		t.Error(err)
	}
}

func TestPaymentMethodDistributions_SumToOne(t *testing.T) {
	for _, pt := range []string{PayerMedicare, PayerMedicaid, PayerCommercial,
		PayerWorkersComp, PayerSelfPay, PayerTricare} {
		_, weights := PaymentMethodDistribution(pt)
		if err := CheckWeights(pt+" payment methods", weights); err != nil {
			t.Error(err)
		}
	}
}

func TestClassifyClaimAge(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{1, AgeRecent}, {30, AgeRecent}, {31, AgeAging},
		{90, AgeAging}, {91, AgeHistorical}, {600, AgeHistorical},
	}
	for _, c := range cases {
		if got := ClassifyClaimAge(c.days); got != c.want {
			t.Errorf("ClassifyClaimAge(%d) = %s, want %s", c.days, got, c.want)
		}
	}
}

func TestAllowedRatioBounds(t *testing.T) {
	min, max := AllowedRatioBounds(PayerMedicare)
	if min != 0.30 || max != 0.60 {
		t.Errorf("medicare bounds = [%v,%v], want [0.30,0.60]", min, max)
	}
	// Unknown types fall back to the commercial range.
	min, max = AllowedRatioBounds("unknown")
	cmin, cmax := AllowedRatioBounds(PayerCommercial)
	if min != cmin || max != cmax {
		t.Errorf("unknown payer type did not fall back to commercial range")
	}
}

func TestDenialCodes_CategoriesValid(t *testing.T) {
	valid := map[string]bool{}
	for _, c := range []string{"eligibility", "authorization", "medical_necessity",
		"coding_error", "duplicate", "timely_filing", "coordination_of_benefits",
		"missing_information", "non_covered_service", "bundling", "credentialing"} {
		valid[c] = true
	}
	for _, dc := range DenialCodes {
		if !valid[dc.Category] {
			t.Errorf("denial code %s has unknown category %s", dc.Code, dc.Category)
		}
		if dc.OverturnLikelihood < 0 || dc.OverturnLikelihood > 1 {
			t.Errorf("denial code %s overturn likelihood %v outside [0,1]", dc.Code, dc.OverturnLikelihood)
		}
	}
	for _, cat := range []string{"eligibility", "authorization", "medical_necessity"} {
		if len(DenialCodesForCategory(cat)) == 0 {
			t.Errorf("no denial codes for category %s", cat)
		}
	}
}

func TestHistoricalStatusTable_PendingScenario(t *testing.T) {
	// The historical table zeroes the pre-adjudication statuses so a small
	// draw lands on pending.
	names, weights := StatusDistribution(AgeHistorical)
	for i, name := range names {
		if name == claims.StatusPending && weights[i] != 0.02 {
			t.Errorf("historical pending weight = %v, want 0.02", weights[i])
		}
		if (name == claims.StatusDraft || name == claims.StatusReadyToSubmit ||
			name == claims.StatusSubmitted || name == claims.StatusAcknowledged) && weights[i] != 0 {
			t.Errorf("historical %s weight = %v, want 0", name, weights[i])
		}
	}
}
