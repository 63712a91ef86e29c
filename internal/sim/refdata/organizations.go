package refdata

// Organizations is the built-in fleet of organization profiles seeded for
// every fresh environment.
var Organizations = []OrganizationProfile{
	{
		Code: "SUMMIT", Name: "Summit Healthcare Network",
		Specialty: "multispecialty", FacilityType: "health_system", Size: "large", Region: "Northeast",
		HistoricalClaimTarget: 12000, WeekdayClaimRate: 85, WeekendClaimRate: 20,
		PatientCount: 2500, ProviderCount: 180,
		PayerMix: []PayerMixEntry{
			{"bcbs", 0.22}, {"uhc", 0.15}, {"aetna", 0.10}, {"medicare", 0.30},
			{"medicaid", 0.12}, {"tricare", 0.04}, {"workers_comp", 0.03}, {"self_pay", 0.04},
		},
		BaseDenialRate: 0.11,
		DenialCategories: []CategoryWeight{
			{"medical_necessity", 0.20}, {"authorization", 0.18}, {"eligibility", 0.15},
			{"coding_error", 0.12}, {"missing_information", 0.10}, {"timely_filing", 0.08},
			{"non_covered_service", 0.07}, {"duplicate", 0.04}, {"coordination_of_benefits", 0.03},
			{"bundling", 0.02}, {"credentialing", 0.01},
		},
		AgeMean: 52, AgeStdDev: 18, AgeMin: 18, AgeMax: 95,
		DiagnosisCountMean: 2.8, DiagnosisCountStdDev: 1.4,
		LineItemCountMean: 3.2, LineItemCountStdDev: 1.8,
	},
	{
		Code: "MERCY", Name: "Mercy General Hospital",
		Specialty: "emergency_medicine", FacilityType: "hospital", Size: "large", Region: "Midwest",
		HistoricalClaimTarget: 9000, WeekdayClaimRate: 60, WeekendClaimRate: 45,
		PatientCount: 1800, ProviderCount: 120,
		PayerMix: []PayerMixEntry{
			{"bcbs", 0.18}, {"uhc", 0.12}, {"cigna", 0.08}, {"medicare", 0.28},
			{"medicaid", 0.20}, {"tricare", 0.03}, {"workers_comp", 0.05}, {"self_pay", 0.06},
		},
		BaseDenialRate: 0.14,
		DenialCategories: []CategoryWeight{
			{"eligibility", 0.22}, {"authorization", 0.20}, {"medical_necessity", 0.16},
			{"missing_information", 0.12}, {"coding_error", 0.10}, {"timely_filing", 0.06},
			{"duplicate", 0.05}, {"non_covered_service", 0.04}, {"coordination_of_benefits", 0.03},
			{"bundling", 0.01}, {"credentialing", 0.01},
		},
		AgeMean: 46, AgeStdDev: 22, AgeMin: 1, AgeMax: 98,
		DiagnosisCountMean: 3.4, DiagnosisCountStdDev: 1.6,
		LineItemCountMean: 4.1, LineItemCountStdDev: 2.2,
	},
	{
		Code: "LAKE", Name: "Lakewood Family Medicine",
		Specialty: "family_medicine", FacilityType: "clinic", Size: "small", Region: "West",
		HistoricalClaimTarget: 3000, WeekdayClaimRate: 25, WeekendClaimRate: 0,
		PatientCount: 900, ProviderCount: 12,
		PayerMix: []PayerMixEntry{
			{"bcbs", 0.25}, {"uhc", 0.18}, {"aetna", 0.12}, {"cigna", 0.08},
			{"medicare", 0.20}, {"medicaid", 0.10}, {"self_pay", 0.07},
		},
		BaseDenialRate: 0.08,
		DenialCategories: []CategoryWeight{
			{"eligibility", 0.25}, {"coding_error", 0.18}, {"missing_information", 0.15},
			{"authorization", 0.12}, {"medical_necessity", 0.10}, {"timely_filing", 0.08},
			{"duplicate", 0.05}, {"non_covered_service", 0.04}, {"coordination_of_benefits", 0.03},
		},
		AgeMean: 41, AgeStdDev: 20, AgeMin: 1, AgeMax: 95,
		DiagnosisCountMean: 2.1, DiagnosisCountStdDev: 1.0,
		LineItemCountMean: 2.3, LineItemCountStdDev: 1.2,
	},
	{
		Code: "RIVER", Name: "Riverside Community Hospital",
		Specialty: "orthopedics", FacilityType: "hospital", Size: "medium", Region: "South",
		HistoricalClaimTarget: 6000, WeekdayClaimRate: 40, WeekendClaimRate: 8,
		PatientCount: 1400, ProviderCount: 60,
		PayerMix: []PayerMixEntry{
			{"bcbs", 0.20}, {"uhc", 0.14}, {"aetna", 0.09}, {"medicare", 0.26},
			{"medicaid", 0.12}, {"tricare", 0.05}, {"workers_comp", 0.10}, {"self_pay", 0.04},
		},
		BaseDenialRate: 0.13,
		DenialCategories: []CategoryWeight{
			{"authorization", 0.24}, {"medical_necessity", 0.22}, {"coding_error", 0.12},
			{"eligibility", 0.11}, {"missing_information", 0.09}, {"bundling", 0.08},
			{"timely_filing", 0.05}, {"non_covered_service", 0.04}, {"duplicate", 0.03},
			{"coordination_of_benefits", 0.02},
		},
		AgeMean: 55, AgeStdDev: 16, AgeMin: 16, AgeMax: 92,
		DiagnosisCountMean: 2.6, DiagnosisCountStdDev: 1.2,
		LineItemCountMean: 3.8, LineItemCountStdDev: 2.0,
	},
	{
		Code: "BEACON", Name: "Beacon Health Alliance",
		Specialty: "cardiology", FacilityType: "specialty_group", Size: "medium", Region: "Northeast",
		HistoricalClaimTarget: 5000, WeekdayClaimRate: 35, WeekendClaimRate: 2,
		PatientCount: 1100, ProviderCount: 35,
		PayerMix: []PayerMixEntry{
			{"bcbs", 0.21}, {"uhc", 0.16}, {"aetna", 0.11}, {"cigna", 0.07},
			{"medicare", 0.34}, {"medicaid", 0.06}, {"self_pay", 0.05},
		},
		BaseDenialRate: 0.10,
		DenialCategories: []CategoryWeight{
			{"medical_necessity", 0.26}, {"authorization", 0.22}, {"coding_error", 0.13},
			{"eligibility", 0.10}, {"missing_information", 0.09}, {"non_covered_service", 0.07},
			{"timely_filing", 0.05}, {"duplicate", 0.04}, {"bundling", 0.02},
			{"coordination_of_benefits", 0.02},
		},
		AgeMean: 63, AgeStdDev: 12, AgeMin: 30, AgeMax: 96,
		DiagnosisCountMean: 3.0, DiagnosisCountStdDev: 1.3,
		LineItemCountMean: 2.9, LineItemCountStdDev: 1.5,
	},
}

// ProfileByCode resolves a built-in organization profile.
func ProfileByCode(code string) (OrganizationProfile, bool) {
	for _, p := range Organizations {
		if p.Code == code {
			return p, true
		}
	}
	return OrganizationProfile{}, false
}
