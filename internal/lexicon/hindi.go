package lexicon

// Hindi keyword sets, Roman transliteration as spoken transcripts render it.

var fearHI = []string{
	"giraftari", "giraftar", "police", "fir", "kejar", "jail",
	"qanoon", "adalat", "criminal", "pakad", "case",
	"saza", "kaid", "warrant", "aarop",
	"kanoon", "cybercrime", "digital giraftari",
}

var authorityHI = []string{
	"cbi", "trai", "sarkar", "mantri",
	"collector", "commissioner", "adhikari", "enforcement directorate",
	"income tax", "customs vibhag",
	"supreme court", "high court", "cyber police",
}

var urgencyHI = []string{
	"abhi", "turant", "jaldi", "der mat karo", "aaj hi",
	"kal tak", "call mat kaatna", "ruko mat", "baad mein nahi",
	"aakhri mauka", "warning", "emergency", "sirf aaj",
	"fauran", "der karne par",
}

var financialHI = []string{
	"paise bhejo", "transfer karo", "account mein dalo",
	"fine bharo", "jama karo", "bank account band",
	"froze", "rupaye", "lakh", "crore", "paisa",
	"payment", "advance", "guarantee deposit",
}
