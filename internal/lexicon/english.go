package lexicon

var fearEN = []string{
	"arrest", "arrested", "digital arrest", "under arrest",
	"police", "crime", "criminal", "illegal",
	"fraud", "warrant", "jail", "prison", "sued", "lawsuit",
	"investigation", "fir", "case filed", "cybercrime",
	"court order", "government action", "seized", "detained",
	"legal action", "escalated for", "escalate the matter",
	"remain on this call", "remain available on this call",
	"do not disconnect", "cannot leave",
}

// Phrase-based only: standalone short tokens like "ed" or "officer"
// trigger on non-scam words ("Desk", "verification officer").
var authorityEN = []string{
	"central bureau of investigation", "cbi officer", "cbi unit",
	"cyber crime unit", "cybercrime unit", "cyber crime cell",
	"enforcement directorate", "income tax department", "income tax officer",
	"customs department", "customs officer", "narcotics control",
	"trai", "telecom regulatory", "supreme court", "high court",
	"government of india", "rbi", "sebi", "interpol",
	"commissioner of police", "national security", "cyber police",
	"compliance review", "verification officer",
	"inspector", "ips officer", "ias officer",
	"ministry of", "home ministry",
}

var urgencyEN = []string{
	"immediately", "right now", "within 24 hours", "urgent",
	"do not delay", "last warning", "final notice", "today only",
	"in the next hour", "within minutes", "before it's too late",
	"deadline", "no time left", "act now", "emergency",
	"do not hang up", "stay on the line", "remain on this call",
	"remain available on this call", "avoid automated",
	"automated system escalation", "must follow instructions",
	"otherwise the matter will be escalated",
	"cannot be delayed", "must not disconnect",
}

var financialEN = []string{
	"send money", "transfer money", "wire transfer", "pay fine",
	"bank account", "bitcoin", "gift card", "amazon card",
	"cash deposit", "clear your dues", "upfront payment",
	"advance payment", "security deposit", "freeze your account",
	"account will be frozen", "account will be blocked",
	"pay immediately", "rupees", "dollars", "lakh", "crore",
	"payment required", "fine to be paid",
}
