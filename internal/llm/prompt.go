package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sector-sift/internal/model"
)

const systemPrompt = "You are an expert industry classifier. Reply with exactly one industry label " +
	"from the provided list and nothing else: no explanation, no punctuation, no markdown."

// otherLabel is the catch-all label of the default taxonomy. A known industry
// of "Other" says nothing about the company, so it is never used as an example.
const otherLabel = "Other"

// DefaultIndustries is the LinkedIn-style industry taxonomy the classifier picks
// from when no allowed labels are configured.
func DefaultIndustries() []string {
	return []string{
		"accounting", "airlines/aviation", "apparel & fashion", "arts and crafts", "automotive",
		"aviation & aerospace", "banking", "biotechnology", "broadcast media", "building materials",
		"business supplies and equipment", "capital markets", "chemicals", "civic & social organization",
		"civil engineering", "commercial real estate", "computer hardware", "computer networking",
		"computer software", "construction", "consumer electronics", "consumer goods", "consumer services",
		"cosmetics", "defense & space", "design", "education management",
		"electrical/electronic manufacturing", "entertainment", "environmental services",
		"facilities services", "farming", "financial services", "food & beverages", "food production",
		"glass, ceramics & concrete", "government administration", "graphic design",
		"health, wellness and fitness", "higher education", "hospital & health care", "hospitality",
		"human resources", "individual & family services", "industrial automation",
		"information services", "information technology and services", "insurance",
		"international affairs", "international trade and development", "internet",
		"investment banking", "judiciary", "law enforcement", "law practice", "legal services",
		"legislative office", "leisure, travel & tourism", "logistics and supply chain",
		"luxury goods & jewelry", "machinery", "management consulting", "marketing and advertising",
		"mechanical or industrial engineering", "media production", "medical devices",
		"medical practice", "mental health care", "military", "mining & metals",
		"motion pictures and film", "music", "non-profit organization management", "oil & energy",
		"outsourcing/offshoring", "package/freight delivery", "packaging and containers",
		"paper & forest products", "pharmaceuticals", "philanthropy", "photography",
		"primary/secondary education", "printing", "professional training & coaching",
		"public policy", "public relations and communications", "publishing",
		"railroad manufacture", "real estate", "renewables & environment", "research", "restaurants",
		"retail", "security and investigations", "semiconductors", "sporting goods",
		"staffing and recruiting", "supermarkets", "telecommunications", "textiles", "tobacco",
		"translation and localization", "transportation/trucking/railroad", "utilities", "wholesale",
		"wine and spirits", "wireless", "writing and editing", otherLabel,
	}
}

// DefaultExamples are the few-shot examples used when none are configured.
func DefaultExamples() []model.FewShotExample {
	return []model.FewShotExample{
		{
			Input: "Company: ibm. Description: Domain: ibm.com. Founded: 1911. Industry: information technology and services. " +
				"Locality: new york, new york, united states. Country: united states. LinkedIn URL: linkedin.com/company/ibm.",
			Label: "information technology and services",
		},
		{
			Input: "Company: us army. Description: Domain: goarmy.com. Founded: 1800. Industry: military. " +
				"Locality: alexandria, virginia, united states. Country: united states. LinkedIn URL: linkedin.com/company/us-army.",
			Label: "military",
		},
		{
			Input: "Company: ey. Description: Domain: ey.com. Founded: 1989. Industry: accounting. " +
				"Locality: london, greater london, united kingdom. Country: united kingdom. LinkedIn URL: linkedin.com/company/ernstandyoung.",
			Label: "accounting",
		},
		{
			Input: "Company: walmart. Description: Domain: walmartcareers.com. Founded: 1962. Industry: retail. " +
				"Locality: withee, wisconsin, united states. Country: united states. LinkedIn URL: linkedin.com/company/walmart.",
			Label: "retail",
		},
		{
			Input: "Company: microsoft. Description: Domain: microsoft.com. Founded: 1975. Industry: computer software. " +
				"Locality: redmond, washington, united states. Country: united states. LinkedIn URL: linkedin.com/company/microsoft.",
			Label: "computer software",
		},
	}
}

// companyLine renders an input the same way examples are written.
func companyLine(in model.ClassificationInput) string {
	return fmt.Sprintf("Company: %s. Description: %s", strings.TrimSpace(in.Name), strings.TrimSpace(in.Description))
}

// examplesFor returns the examples for one input. A known industry becomes an
// extra leading example unless it is "Other" or already an example label.
func examplesFor(in model.ClassificationInput, base []model.FewShotExample) []model.FewShotExample {
	known := strings.TrimSpace(in.KnownIndustry)
	if known == "" || strings.EqualFold(known, otherLabel) {
		return base
	}
	for _, ex := range base {
		if strings.EqualFold(ex.Label, known) {
			return base
		}
	}

	out := make([]model.FewShotExample, 0, len(base)+1)
	out = append(out, model.FewShotExample{Input: companyLine(in), Label: known})
	return append(out, base...)
}

// buildPrompt assembles the user prompt: allowed labels, examples, and the
// company to classify.
func buildPrompt(in model.ClassificationInput, allowed []string, examples []model.FewShotExample) string {
	var b strings.Builder

	b.WriteString("Classify companies into one of the following industry categories: ")
	b.WriteString(strings.Join(allowed, ", "))
	b.WriteString(".\n\n")

	if len(examples) > 0 {
		b.WriteString("Examples:\n")
		for _, ex := range examples {
			fmt.Fprintf(&b, "Input: %s\nOutput: %s\n", ex.Input, ex.Label)
		}
		b.WriteString("\n")
	}

	b.WriteString("Classify the following company into the most relevant category from the list.\n")
	fmt.Fprintf(&b, "Input: %s\nOutput:", companyLine(in))

	return b.String()
}
