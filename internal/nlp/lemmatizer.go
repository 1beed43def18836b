package nlp

import "strings"

// Lemmatizer maps lowercase words to a base form: an exception table first,
// then plural suffix rules. Verb inflections are only handled through the
// table; stripping "-ed"/"-ing" by rule mangles too many technical terms.
type Lemmatizer struct {
	exceptions map[string]string
}

// NewLemmatizer creates a lemmatizer with the built-in exception table.
func NewLemmatizer() *Lemmatizer {
	exceptions := make(map[string]string, len(lemmaExceptions))
	for k, v := range lemmaExceptions {
		exceptions[k] = v
	}
	return &Lemmatizer{exceptions: exceptions}
}

// Lemmatize returns the base form of a lowercase word. Words of three bytes
// or fewer and words containing non-letters are returned unchanged.
func (l *Lemmatizer) Lemmatize(lower string) string {
	if lemma, ok := l.exceptions[lower]; ok {
		return lemma
	}
	if len(lower) <= 3 || !isAlpha(lower) {
		return lower
	}

	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 4:
		return lower[:len(lower)-3] + "y"
	case strings.HasSuffix(lower, "sses"):
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "xes"), strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "ss"), strings.HasSuffix(lower, "us"), strings.HasSuffix(lower, "is"):
		return lower
	case strings.HasSuffix(lower, "s"):
		return lower[:len(lower)-1]
	}
	return lower
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

var lemmaExceptions = map[string]string{
	// auxiliaries and irregulars
	"was": "be", "were": "be", "been": "be", "being": "be", "is": "be", "are": "be", "am": "be",
	"has": "have", "had": "have", "having": "have",
	"did": "do", "does": "do", "done": "do", "doing": "do",
	"went": "go", "gone": "go", "going": "go",
	"made": "make", "making": "make",
	"built": "build", "building": "build", "builds": "build",
	"led": "lead", "leading": "lead", "leads": "lead",
	"ran": "run", "running": "run",
	"wrote": "write", "written": "write", "writing": "write",
	"taught": "teach", "teaching": "teach",
	"brought": "bring", "bought": "buy",
	"won": "win", "winning": "win",
	"began": "begin", "begun": "begin",
	"grew": "grow", "grown": "grow", "growing": "grow",
	"drove": "drive", "driven": "drive", "driving": "drive",
	"took": "take", "taken": "take", "taking": "take",
	"gave": "give", "given": "give", "giving": "give",
	"children": "child", "people": "person", "men": "man", "women": "woman",
	"analyses": "analysis", "data": "datum", "criteria": "criterion",

	// résumé verbs
	"developed": "develop", "developing": "develop",
	"designed": "design", "designing": "design",
	"managed": "manage", "managing": "manage",
	"implemented": "implement", "implementing": "implement",
	"created": "create", "creating": "create",
	"maintained": "maintain", "maintaining": "maintain",
	"improved": "improve", "improving": "improve",
	"deployed": "deploy", "deploying": "deploy",
	"worked": "work", "working": "work",
	"tested": "test", "testing": "test",
	"analyzed": "analyze", "analyzing": "analyze",
	"automated": "automate", "automating": "automate",
	"optimized": "optimize", "optimizing": "optimize",
	"delivered": "deliver", "delivering": "deliver",
	"collaborated": "collaborate", "collaborating": "collaborate",
	"reduced": "reduce", "reducing": "reduce",
	"increased": "increase", "increasing": "increase",
	"supported": "support", "supporting": "support",
	"trained": "train", "training": "train",
	"integrated": "integrate", "integrating": "integrate",
	"migrated": "migrate", "migrating": "migrate",
	"mentored": "mentor", "mentoring": "mentor",
	"coordinated": "coordinate", "coordinating": "coordinate",
	"architected": "architect", "engineered": "engineer",
	"programming": "program", "programmed": "program",
	"responsibilities": "responsibility", "technologies": "technology",
	"skills": "skill", "years": "year",

	// proper names that look like plurals
	"kubernetes": "kubernetes", "jenkins": "jenkins", "pandas": "pandas",
	"express": "express", "redis": "redis", "windows": "windows",
}
