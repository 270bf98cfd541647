package classification

import "github.com/Veraticus/sector-sift/internal/model"

// DefaultRules returns the built-in industry table. Order matters: it is the
// tie-break order when two industries score the same.
func DefaultRules() model.RuleTable {
	return model.RuleTable{
		{Label: "SaaS", Terms: []string{
			"saas", "software as a service", "cloud software", "subscription-based software",
			"platform as a service", "crm", "erp", "hr software", "marketing automation",
			"enterprise software",
		}},
		{Label: "FinTech", Terms: []string{
			"fintech", "finance technology", "payment", "banking", "lending", "investment",
			"blockchain", "cryptocurrency", "financial services", "insurtech",
		}},
		{Label: "EdTech", Terms: []string{
			"edtech", "education technology", "e-learning", "online learning", "course platform",
			"educational software", "school management", "learning management system",
		}},
		{Label: "HealthTech", Terms: []string{
			"healthtech", "healthcare technology", "medical devices", "biotech", "pharmaceutical",
			"digital health", "telehealth", "health data", "medtech", "diagnostics",
		}},
		{Label: "AI/ML", Terms: []string{
			"ai", "artificial intelligence", "machine learning", "deep learning", "nlp",
			"natural language processing", "computer vision", "data science",
			"predictive analytics", "generative ai", "neural networks",
		}},
		{Label: "Cybersecurity", Terms: []string{
			"cybersecurity", "security software", "threat intelligence", "data protection",
			"network security", "endpoint security", "firewall", "infosec",
		}},
		{Label: "E-commerce", Terms: []string{
			"e-commerce", "online retail", "marketplace", "shopify", "digital storefront",
			"retail tech", "online shopping",
		}},
		{Label: "HR Tech", Terms: []string{
			"hr tech", "human resources software", "recruitment platform", "talent management",
			"payroll software", "workforce management",
		}},
		{Label: "Marketing Tech", Terms: []string{
			"martech", "marketing technology", "adtech", "advertising technology", "crm",
			"marketing automation", "sales enablement",
		}},
		{Label: "PropTech", Terms: []string{
			"proptech", "real estate technology", "property management software",
			"smart building", "construction tech",
		}},
		{Label: "LegalTech", Terms: []string{
			"legaltech", "legal software", "legal practice management", "e-discovery", "legal ai",
		}},
		{Label: "Agritech", Terms: []string{
			"agritech", "agriculture technology", "precision farming", "farm management",
			"crop science", "foodtech",
		}},
		{Label: "Logistics Tech", Terms: []string{
			"logistics tech", "supply chain management", "transportation software",
			"fleet management",
		}},
		{Label: "Automotive Tech", Terms: []string{
			"automotive tech", "electric vehicles", "autonomous driving", "vehicle software",
		}},
		{Label: "CleanTech", Terms: []string{
			"cleantech", "renewable energy", "sustainability", "environmental technology",
			"waste management",
		}},
		{Label: "Gaming", Terms: []string{
			"gaming", "game development", "esports", "interactive entertainment",
		}},
		{Label: "Media & Entertainment", Terms: []string{
			"media tech", "streaming platform", "content creation", "digital media", "broadcasting",
		}},
		{Label: "Biotechnology", Terms: []string{
			"biotech", "biotechnology", "life sciences", "genomics", "drug discovery",
		}},
		{Label: "Consulting", Terms: []string{
			"consulting", "advisory services", "strategy consulting", "business services",
		}},
		{Label: "Manufacturing", Terms: []string{
			"manufacturing", "industrial", "robotics", "automation", "production",
		}},
		{Label: "IT Services", Terms: []string{
			"information technology and services", "it services", "managed services",
			"software development services", "system integration",
		}},
	}
}
