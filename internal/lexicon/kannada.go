package lexicon

// Kannada keyword sets: Roman-script approximations of common Kannada scam
// phrasings, plus Unicode script keys for direct Kannada text or
// Whisper-transcribed Kannada.

var fearKN = []string{
	"digital bandana", "digital bandhanada", "digtal arrest",
	"sajjana", "keisi", "arrest madutteve", "bandana",
	"cyber crime", "takshanadha", "takshana", "takshanave",
	"suchane anusarisabeku", "kayida kriya",
}

var fearKNUnicode = []string{
	"ಡಿಜಿಟಲ್ ಬಂಧನ",  // digital arrest
	"ಬಂಧನ",          // arrest/detention
	"ಸೈಬರ್ ಕ್ರೈಮ್",  // cybercrime
	"ಕ್ರಿಮಿನಲ್",     // criminal
	"ಕಾನೂನು ಕ್ರಮ",   // legal action
	"ಡಿಜಿಟಲ್",       // digital
	"ಆರೋಪ",          // accusation
	"ತಕ್ಷಣ",         // immediately
}

var authorityKN = []string{
	"cyber crime vibhaga", "takshanadha",
	"cbi adhikari", "police adhikari",
	"sarkar", "nyayalaya",
	"commissioner", "inspector",
}

var authorityKNUnicode = []string{
	"ಸೈಬರ್ ಕ್ರೈಮ್ ಘಟಕ",  // cyber crime unit
	"ಇನ್ಸ್ ಪೆಕ್ಟರ್",     // inspector
	"ಸರ್ಕಾರ",            // government
	"ನ್ಯಾಯಾಲಯ",          // court
	"ಆಧಾರ್",             // aadhaar
}

var urgencyKN = []string{
	"takshana", "takshanadha", "ippude", "bega",
	"delay madabeda", "call kaiyodu", "takshanave",
}

var urgencyKNUnicode = []string{
	"ತಕ್ಷಣ",                          // immediately
	"ಸೂಚನೆಗಳನ್ನು ಅನುಸರಿಸಬೇಕು",       // must follow instructions
	"ಕರೆಯಲ್ಲಿ ಉಳಿದು",                // remain on the call
	"ವಿಷಯವನ್ನು ಹೆಚ್ಚಿಸಲಾಗುವುದು",     // matter will be escalated
}

var financialKN = []string{
	"hortu madabeku", "paise", "account freeze",
	"dakshina", "harishavanu",
}

var financialKNUnicode = []string{
	"ಹಣ",       // money
	"ಪಾವತಿ",    // payment
	"ಖಾತೆ",     // account
	"ರೂಪಾಯಿ",   // rupee
}
