package domain

type ProjectType string

const (
	ProjectStudy      ProjectType = "study"
	ProjectWork       ProjectType = "work"
	ProjectLanguage   ProjectType = "language"
	ProjectRelocation ProjectType = "relocation"
	ProjectTourism    ProjectType = "tourism"
)

// ValidProjectTypes is the canonical set of accepted project type strings.
var ValidProjectTypes = map[string]bool{
	"study": true, "work": true, "language": true,
	"relocation": true, "tourism": true,
}

type StudyLevel string

const (
	LevelLanguage StudyLevel = "language"
	LevelBachelor StudyLevel = "bachelor"
	LevelMaster   StudyLevel = "master"
	LevelPhD      StudyLevel = "phd"
	LevelTraining StudyLevel = "training"
)

// ValidStudyLevels is the canonical set of accepted study level strings.
var ValidStudyLevels = map[string]bool{
	"language": true, "bachelor": true, "master": true,
	"phd": true, "training": true,
}

type DurationCategory string

const (
	DurationShort    DurationCategory = "short"     // under 3 months
	DurationSemester DurationCategory = "semester"  // 3 to 6 months
	DurationYear     DurationCategory = "year"      // 6 to 12 months
	DurationMulti    DurationCategory = "multiyear" // more than a year
)

// ValidDurationCategories is the canonical set of accepted duration strings.
var ValidDurationCategories = map[string]bool{
	"short": true, "semester": true, "year": true, "multiyear": true,
}

// VisaStatus is tri-state: the zero value means the user has not said.
type VisaStatus string

const (
	VisaUnknown VisaStatus = ""
	VisaHave    VisaStatus = "have_visa"
	VisaNeed    VisaStatus = "need_visa"
)

// ValidVisaStatuses accepts the explicit spellings, including "unknown".
var ValidVisaStatuses = map[string]bool{
	"": true, "unknown": true, "have_visa": true, "need_visa": true,
}

// ParseVisaStatus maps user input onto the tri-state, folding "unknown" to
// the zero value.
func ParseVisaStatus(s string) (VisaStatus, bool) {
	if !ValidVisaStatuses[s] {
		return VisaUnknown, false
	}
	if s == "unknown" {
		return VisaUnknown, true
	}
	return VisaStatus(s), true
}

type DocumentKind string

const (
	DocPassport           DocumentKind = "passport"
	DocAdmissionLetter    DocumentKind = "admission_letter"
	DocTranscripts        DocumentKind = "transcripts"
	DocLanguageCert       DocumentKind = "language_certificate"
	DocFinancialProof     DocumentKind = "financial_proof"
	DocHealthInsurance    DocumentKind = "health_insurance"
	DocVisaApplication    DocumentKind = "visa_application"
	DocPhotos             DocumentKind = "passport_photos"
	DocCV                 DocumentKind = "cv"
	DocMotivationLetter   DocumentKind = "motivation_letter"
	DocRecommendation     DocumentKind = "recommendation_letters"
	DocAccommodationProof DocumentKind = "accommodation_proof"
)

// DocumentKinds is the closed checklist catalog, in display order.
var DocumentKinds = []DocumentKind{
	DocPassport,
	DocAdmissionLetter,
	DocTranscripts,
	DocLanguageCert,
	DocFinancialProof,
	DocHealthInsurance,
	DocVisaApplication,
	DocPhotos,
	DocCV,
	DocMotivationLetter,
	DocRecommendation,
	DocAccommodationProof,
}

var documentLabels = map[DocumentKind]string{
	DocPassport:           "Valid passport",
	DocAdmissionLetter:    "Admission letter",
	DocTranscripts:        "Academic transcripts",
	DocLanguageCert:       "Language certificate",
	DocFinancialProof:     "Proof of financial means",
	DocHealthInsurance:    "Health insurance",
	DocVisaApplication:    "Visa application form",
	DocPhotos:             "Passport photos",
	DocCV:                 "CV",
	DocMotivationLetter:   "Motivation letter",
	DocRecommendation:     "Recommendation letters",
	DocAccommodationProof: "Proof of accommodation",
}

// IsKnownDocument reports whether k belongs to the checklist catalog.
func IsKnownDocument(k DocumentKind) bool {
	_, ok := documentLabels[k]
	return ok
}

// Label returns the display label for a document kind.
func (k DocumentKind) Label() string {
	if l, ok := documentLabels[k]; ok {
		return l
	}
	return string(k)
}

// DocumentMark records whether the user already holds a document or still
// needs to obtain it.
type DocumentMark string

const (
	MarkHave DocumentMark = "have"
	MarkNeed DocumentMark = "need"
)

type EntityKind string

const (
	EntityInstitution   EntityKind = "institution"
	EntityAccommodation EntityKind = "accommodation"
)
