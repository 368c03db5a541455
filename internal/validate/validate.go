// Package validate decides whether a generated response is usable as a
// future-self answer. Rejection routes the pipeline to the fallback
// responder; validation itself never errors.
package validate

import "strings"

// DefaultMinLength is the minimum acceptable response length in bytes.
const DefaultMinLength = 20

// ForbiddenPhrases break the future-self character. The prompt builder
// tells the model to avoid them and the validator rejects responses that
// contain them; both must use this one list.
var ForbiddenPhrases = []string{
	"as an ai",
	"language model",
	"assistant",
	"i cannot",
	"i don't have personal",
	"my programming",
	"i was created",
}

// formalPhrases mark a register no one uses when talking to their
// younger self.
var formalPhrases = []string{
	"it is important to note",
	"it should be noted",
	"in conclusion",
	"furthermore,",
	"one must consider",
	"please be advised",
}

// fillerPhrases are stock padding that signals a low-effort generation.
var fillerPhrases = []string{
	"at the end of the day",
	"when all is said and done",
	"it is what it is",
	"as mentioned previously",
	"as i said before",
}

// Valid reports whether a response can be returned to the user, using
// the default minimum length.
func Valid(s string) bool {
	return Check(s, DefaultMinLength)
}

// Check is Valid with an explicit minimum length. minLength <= 0 uses
// the default.
func Check(s string, minLength int) bool {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	if len(strings.TrimSpace(s)) < minLength {
		return false
	}

	lower := strings.ToLower(s)
	for _, phrase := range ForbiddenPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, phrase := range formalPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, phrase := range fillerPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}
