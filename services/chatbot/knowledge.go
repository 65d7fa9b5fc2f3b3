package chatbot

// FallbackReply is used when nothing in the knowledge base scores.
const FallbackReply = "I'm not sure I understood that. I can help with study abroad admissions, education loans, visas and test preparation. You can also leave your number and a counselor will call you."

// EmptyPrompt answers a blank message.
const EmptyPrompt = "I'm listening! Please tell me what's on your mind."

// ErrorReply and ErrorSuggestions are returned when a reply cannot be built.
const ErrorReply = "I hit a small roadblock while thinking. Could you try rephrasing that?"

var ErrorSuggestions = []string{"Tell me about JV Overseas", "How to apply?"}

// DefaultKnowledgeBase is the site chat's intent table.
var DefaultKnowledgeBase = []Entry{
	{
		Label:    "JV Overseas",
		Patterns: []string{"about jv overseas", "who are you", "jv overseas", "your company"},
		Responses: []string{
			"JV Overseas is an education consultancy helping students with admissions abroad, education loans and visas.",
			"We are JV Overseas. We guide students from choosing a university all the way to landing abroad.",
		},
		Suggestions: []string{"Study abroad", "Education loan", "Contact details"},
	},
	{
		Label:    "study abroad",
		Patterns: []string{"study abroad", "university admission", "admission", "universities", "masters abroad"},
		Responses: []string{
			"We help you shortlist universities, prepare applications and track offers. Which country are you considering?",
			"Our counselors match your profile with universities in the UK, USA, Canada, Australia, Germany and more.",
		},
		Suggestions: []string{"Which countries?", "How to apply?", "Check loan eligibility"},
	},
	{
		Label:    "countries",
		Patterns: []string{"which countries", "country", "uk", "usa", "canada", "australia", "germany", "ireland"},
		Responses: []string{
			"We work with universities in the UK, USA, Canada, Australia, Germany, Ireland and New Zealand.",
		},
		Suggestions: []string{"Study abroad", "Visa assistance"},
	},
	{
		Label:    "education loans",
		Patterns: []string{"education loan", "loan", "finance", "funding", "collateral", "interest rate"},
		Responses: []string{
			"We arrange secured and unsecured education loans with partner banks and NBFCs. Try our eligibility check for an instant estimate.",
			"Education loans typically range between ₹30 Lakhs and ₹50 Lakhs depending on income and collateral. Want to check your eligibility?",
		},
		Suggestions: []string{"Check loan eligibility", "Which banks?"},
	},
	{
		Label:    "partner banks",
		Patterns: []string{"which banks", "bank", "lenders", "nbfc"},
		Responses: []string{
			"Our partners include PNB, Avanse, Credila, Auxilo, InCred, Tata Capital, Prodigy Finance, Axis Bank and ICICI Bank.",
		},
		Suggestions: []string{"Education loan", "Check loan eligibility"},
	},
	{
		Label:    "visa assistance",
		Patterns: []string{"visa", "student visa", "visa interview", "visa documents"},
		Responses: []string{
			"We prepare your visa file, review financial documents and run mock interviews before your appointment.",
		},
		Suggestions: []string{"Study abroad", "Contact details"},
	},
	{
		Label:    "test preparation",
		Patterns: []string{"ielts", "toefl", "gre", "gmat", "pte", "duolingo", "test preparation", "coaching"},
		Responses: []string{
			"We offer coaching and mock tests for IELTS, TOEFL, PTE, GRE and GMAT.",
		},
		Suggestions: []string{"Study abroad", "Contact details"},
	},
	{
		Label:    "scholarships",
		Patterns: []string{"scholarship", "scholarships", "financial aid", "tuition waiver"},
		Responses: []string{
			"Many universities offer merit scholarships. Our counselors will point out the ones that fit your profile.",
		},
		Suggestions: []string{"Study abroad", "Education loan"},
	},
	{
		Label:    "application process",
		Patterns: []string{"how to apply", "apply", "application", "process", "documents required"},
		Responses: []string{
			"Share your details through the enquiry form and a counselor will call you within one working day to plan your application.",
		},
		Suggestions: []string{"Contact details", "Check loan eligibility"},
	},
	{
		Label:    "contact details",
		Patterns: []string{"contact", "phone number", "address", "office", "call me", "email"},
		Responses: []string{
			"You can reach us at jvoverseaspvtltd@gmail.com or visit our office at Medara Bazar, Chilakaluripet, AP.",
		},
		Suggestions: []string{"How to apply?"},
	},
	{
		Label:    "greeting",
		Patterns: []string{"hello", "hi", "hey", "good morning", "good evening"},
		Responses: []string{
			"Hello! How can I help you with your study abroad plans today?",
			"Hi there! Ask me about admissions, education loans or visas.",
		},
		Suggestions: []string{"Study abroad", "Education loan", "Visa assistance"},
	},
}
