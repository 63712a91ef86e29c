package refdata

// ProcedureCode is a billable CPT/HCPCS entry with its charge distribution
// parameters and sampling weight within its specialty pool.
type ProcedureCode struct {
	Code        string
	Description string
	ChargeMean  float64
	ChargeStdDev float64
	Weight      float64
}

// DiagnosisCode is an ICD-10-CM entry with its sampling weight within its
// specialty pool.
type DiagnosisCode struct {
	Code        string
	Description string
	Weight      float64
}

// DenialCode is a CARC-style reason code within a denial category.
// OverturnLikelihood feeds both the advisory fields and the appeal-deadline
// rule (codes likelier to overturn get the long deadline).
type DenialCode struct {
	Code               string
	Description        string
	Category           string
	OverturnLikelihood float64
}

var proceduresBySpecialty = map[string][]ProcedureCode{
	"family_medicine": {
		{"99213", "Office visit, established patient, low complexity", 150, 30, 0.30},
		{"99214", "Office visit, established patient, moderate complexity", 220, 40, 0.22},
		{"99203", "Office visit, new patient, low complexity", 200, 35, 0.10},
		{"99395", "Preventive visit, established patient, 18-39 years", 260, 40, 0.08},
		{"90471", "Immunization administration", 45, 10, 0.08},
		{"36415", "Venipuncture, routine", 25, 5, 0.08},
		{"81001", "Urinalysis, automated, with microscopy", 40, 8, 0.06},
		{"87880", "Strep A assay", 55, 10, 0.04},
		{"93000", "Electrocardiogram, routine", 90, 20, 0.04},
	},
	"emergency_medicine": {
		{"99283", "Emergency department visit, moderate severity", 450, 100, 0.25},
		{"99284", "Emergency department visit, high severity", 750, 150, 0.22},
		{"99285", "Emergency department visit, highest severity", 1200, 250, 0.15},
		{"71046", "Radiologic examination, chest, 2 views", 280, 50, 0.10},
		{"70450", "CT head without contrast", 950, 180, 0.08},
		{"80053", "Comprehensive metabolic panel", 120, 20, 0.08},
		{"85025", "Complete blood count with differential", 90, 15, 0.07},
		{"93010", "Electrocardiogram interpretation", 60, 10, 0.05},
	},
	"orthopedics": {
		{"99213", "Office visit, established patient, low complexity", 160, 30, 0.18},
		{"99214", "Office visit, established patient, moderate complexity", 230, 40, 0.15},
		{"73721", "MRI lower extremity joint without contrast", 1400, 300, 0.12},
		{"73030", "Radiologic examination, shoulder, 2+ views", 180, 35, 0.12},
		{"20610", "Arthrocentesis, major joint", 320, 60, 0.11},
		{"29881", "Knee arthroscopy with meniscectomy", 4800, 900, 0.08},
		{"27447", "Total knee arthroplasty", 28000, 4500, 0.04},
		{"97110", "Therapeutic exercises, 15 minutes", 85, 15, 0.12},
		{"97140", "Manual therapy techniques, 15 minutes", 75, 15, 0.08},
	},
	"cardiology": {
		{"99214", "Office visit, established patient, moderate complexity", 240, 40, 0.20},
		{"93000", "Electrocardiogram, routine", 95, 20, 0.18},
		{"93306", "Echocardiography, complete, with Doppler", 850, 160, 0.15},
		{"93015", "Cardiovascular stress test, complete", 480, 90, 0.12},
		{"93458", "Left heart catheterization with angiography", 5200, 1000, 0.07},
		{"93224", "External ECG monitoring, up to 48 hours", 320, 60, 0.10},
		{"92928", "Percutaneous coronary stent placement", 18500, 3200, 0.03},
		{"80061", "Lipid panel", 70, 12, 0.15},
	},
	"multispecialty": {
		{"99213", "Office visit, established patient, low complexity", 155, 30, 0.22},
		{"99214", "Office visit, established patient, moderate complexity", 225, 40, 0.18},
		{"99203", "Office visit, new patient, low complexity", 205, 35, 0.10},
		{"80053", "Comprehensive metabolic panel", 115, 20, 0.10},
		{"85025", "Complete blood count with differential", 85, 15, 0.09},
		{"71046", "Radiologic examination, chest, 2 views", 270, 50, 0.08},
		{"93000", "Electrocardiogram, routine", 92, 18, 0.07},
		{"90837", "Psychotherapy, 60 minutes", 190, 30, 0.06},
		{"76700", "Ultrasound, abdominal, complete", 420, 80, 0.05},
		{"45380", "Colonoscopy with biopsy", 1900, 350, 0.05},
	},
}

var diagnosesBySpecialty = map[string][]DiagnosisCode{
	"family_medicine": {
		{"E11.9", "Type 2 diabetes mellitus without complications", 0.14},
		{"I10", "Essential (primary) hypertension", 0.16},
		{"E78.5", "Hyperlipidemia, unspecified", 0.12},
		{"J06.9", "Acute upper respiratory infection, unspecified", 0.10},
		{"J45.909", "Unspecified asthma, uncomplicated", 0.08},
		{"E03.9", "Hypothyroidism, unspecified", 0.08},
		{"M54.5", "Low back pain", 0.08},
		{"F32.9", "Major depressive disorder, single episode", 0.07},
		{"K21.0", "Gastro-esophageal reflux disease with esophagitis", 0.06},
		{"N39.0", "Urinary tract infection, site not specified", 0.06},
		{"J30.9", "Allergic rhinitis, unspecified", 0.05},
	},
	"emergency_medicine": {
		{"R10.9", "Unspecified abdominal pain", 0.14},
		{"R07.9", "Chest pain, unspecified", 0.14},
		{"S09.90XA", "Unspecified injury of head, initial encounter", 0.10},
		{"J20.9", "Acute bronchitis, unspecified", 0.10},
		{"R51.9", "Headache, unspecified", 0.09},
		{"S93.401A", "Sprain of right ankle, initial encounter", 0.09},
		{"R11.2", "Nausea with vomiting, unspecified", 0.08},
		{"N39.0", "Urinary tract infection, site not specified", 0.08},
		{"J18.9", "Pneumonia, unspecified organism", 0.07},
		{"I10", "Essential (primary) hypertension", 0.06},
		{"R05.9", "Cough, unspecified", 0.05},
	},
	"orthopedics": {
		{"M17.11", "Unilateral primary osteoarthritis, right knee", 0.16},
		{"M54.5", "Low back pain", 0.15},
		{"M75.100", "Rotator cuff tear, unspecified shoulder", 0.12},
		{"M25.561", "Pain in right knee", 0.12},
		{"M23.205", "Derangement of meniscus, unspecified knee", 0.10},
		{"S83.511A", "Sprain of ACL of right knee, initial encounter", 0.09},
		{"M19.90", "Unspecified osteoarthritis, unspecified site", 0.09},
		{"M77.11", "Lateral epicondylitis, right elbow", 0.07},
		{"M48.06", "Spinal stenosis, lumbar region", 0.06},
		{"M25.511", "Pain in right shoulder", 0.04},
	},
	"cardiology": {
		{"I10", "Essential (primary) hypertension", 0.18},
		{"I25.10", "Atherosclerotic heart disease without angina", 0.16},
		{"I48.91", "Unspecified atrial fibrillation", 0.13},
		{"I50.9", "Heart failure, unspecified", 0.12},
		{"E78.5", "Hyperlipidemia, unspecified", 0.11},
		{"R07.9", "Chest pain, unspecified", 0.10},
		{"I35.0", "Nonrheumatic aortic valve stenosis", 0.07},
		{"R00.2", "Palpitations", 0.07},
		{"I21.4", "Non-ST elevation myocardial infarction", 0.03},
		{"E11.9", "Type 2 diabetes mellitus without complications", 0.03},
	},
	"multispecialty": {
		{"I10", "Essential (primary) hypertension", 0.15},
		{"E11.9", "Type 2 diabetes mellitus without complications", 0.13},
		{"E78.5", "Hyperlipidemia, unspecified", 0.11},
		{"M54.5", "Low back pain", 0.09},
		{"J06.9", "Acute upper respiratory infection, unspecified", 0.08},
		{"F32.9", "Major depressive disorder, single episode", 0.08},
		{"K21.0", "Gastro-esophageal reflux disease with esophagitis", 0.07},
		{"J45.909", "Unspecified asthma, uncomplicated", 0.07},
		{"N39.0", "Urinary tract infection, site not specified", 0.06},
		{"G43.909", "Migraine, unspecified, not intractable", 0.06},
		{"M25.50", "Pain in unspecified joint", 0.05},
		{"E03.9", "Hypothyroidism, unspecified", 0.05},
	},
}

// ProceduresForSpecialty returns the procedure pool for a specialty, falling
// back to the multispecialty pool for unknown specialties.
func ProceduresForSpecialty(specialty string) []ProcedureCode {
	if pool, ok := proceduresBySpecialty[specialty]; ok {
		return pool
	}
	return proceduresBySpecialty["multispecialty"]
}

// DiagnosesForSpecialty returns the diagnosis pool for a specialty, falling
// back to the multispecialty pool.
func DiagnosesForSpecialty(specialty string) []DiagnosisCode {
	if pool, ok := diagnosesBySpecialty[specialty]; ok {
		return pool
	}
	return diagnosesBySpecialty["multispecialty"]
}

// DenialCodes is the full CARC-style code pool, grouped by category below.
var DenialCodes = []DenialCode{
	{"CO-27", "Expenses incurred after coverage terminated", "eligibility", 0.55},
	{"CO-26", "Expenses incurred prior to coverage", "eligibility", 0.50},
	{"CO-31", "Patient cannot be identified as our insured", "eligibility", 0.65},
	{"CO-197", "Precertification/authorization absent", "authorization", 0.45},
	{"CO-15", "Authorization number missing or invalid", "authorization", 0.60},
	{"CO-198", "Precertification/authorization exceeded", "authorization", 0.35},
	{"CO-50", "Non-covered: not deemed a medical necessity", "medical_necessity", 0.40},
	{"CO-56", "Procedure deemed experimental/investigational", "medical_necessity", 0.25},
	{"CO-167", "Diagnosis not covered", "medical_necessity", 0.30},
	{"CO-16", "Claim lacks information needed for adjudication", "missing_information", 0.75},
	{"CO-252", "Attachment/documentation required", "missing_information", 0.70},
	{"CO-4", "Procedure code inconsistent with modifier", "coding_error", 0.70},
	{"CO-11", "Diagnosis inconsistent with procedure", "coding_error", 0.65},
	{"CO-181", "Procedure code invalid on date of service", "coding_error", 0.60},
	{"CO-18", "Exact duplicate claim/service", "duplicate", 0.20},
	{"CO-29", "Time limit for filing has expired", "timely_filing", 0.15},
	{"CO-22", "Care may be covered by another payer", "coordination_of_benefits", 0.55},
	{"CO-96", "Non-covered charge(s)", "non_covered_service", 0.25},
	{"CO-204", "Service not covered under current benefit plan", "non_covered_service", 0.20},
	{"CO-97", "Payment included in allowance for another service", "bundling", 0.35},
	{"CO-236", "Procedure combination not compatible", "bundling", 0.40},
	{"CO-8", "Procedure code inconsistent with provider taxonomy", "credentialing", 0.50},
}

var denialCodesByCategory = func() map[string][]DenialCode {
	m := make(map[string][]DenialCode)
	for _, dc := range DenialCodes {
		m[dc.Category] = append(m[dc.Category], dc)
	}
	return m
}()

// DenialCodesForCategory returns the code pool for a category; empty for
// unknown categories (callers fall back to the full pool).
func DenialCodesForCategory(category string) []DenialCode {
	return denialCodesByCategory[category]
}

// GenericRiskFactors is the fallback pool used when an organization's own
// weighted denial categories are exhausted.
var GenericRiskFactors = []string{
	"High-dollar claim",
	"Out-of-network provider",
	"Prior denials for this patient",
	"Payer requires medical records",
	"Complex procedure coding",
	"Coverage verification pending",
}
