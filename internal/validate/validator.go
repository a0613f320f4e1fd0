// Package validate gate-keeps non-news input before any model work happens.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minLength = 15
	minTokens = 3
)

var (
	greetingRe = regexp.MustCompile(`^(hi|hello|hey|greetings|good morning|good evening)\b`)
	questionRe = regexp.MustCompile(`^(how|what|who|why|when|where) (are|is|do|does|can|will) (you|i|we|it)\b`)
	mathRe     = regexp.MustCompile(`^\s*\d+\s*[+\-*/=]\s*\d+`)
	consonantRe = regexp.MustCompile(`[bcdfghjklmnpqrstvwxyz]`)
	vowelRe     = regexp.MustCompile(`[aeiou]`)
)

// Result is the validator's decision. Reason is human-readable and becomes
// the explanation of an INVALID analysis.
type Result struct {
	Valid  bool
	Reason string
}

// Validator decides whether input is worth classifying
type Validator struct{}

// New creates a Validator
func New() *Validator {
	return &Validator{}
}

// Validate applies the rejection rules in order of cheapness. An empty
// reason means the text passed every gate.
func (v *Validator) Validate(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return reject("Input is empty. Please enter a news headline or article text.")
	}

	clean := strings.ToLower(trimmed)

	if greetingRe.MatchString(clean) {
		return reject("This appears to be a conversational greeting, not a news headline.")
	}

	if questionRe.MatchString(clean) {
		return reject("This looks like a personal question or conversation, not a news article.")
	}

	if mathRe.MatchString(trimmed) {
		return reject("This looks like a mathematical equation, not a news article.")
	}

	// Vowel-less runs of consonants are keyboard noise, not language
	consonants := len(consonantRe.FindAllString(clean, -1))
	vowels := len(vowelRe.FindAllString(clean, -1))
	if vowels == 0 && consonants > 3 {
		return reject("The text appears to be random characters or gibberish.")
	}

	if utf8.RuneCountInString(trimmed) < minLength || len(strings.Fields(trimmed)) < minTokens {
		return reject("Input is too short to be a news article. Please enter a full headline or sentence.")
	}

	return Result{Valid: true}
}

func reject(reason string) Result {
	return Result{Valid: false, Reason: reason}
}
