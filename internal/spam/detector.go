// Package spam scores contact submissions with additive heuristics. No
// single rule decides; a submission is spam once its score reaches
// SpamThreshold. Verdicts are internal and must never reach the submitter.
package spam

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	SpamThreshold = 50

	keywordWeight       = 15
	linkWeight          = 10
	maxLinks            = 3
	disposableWeight    = 30
	repeatedCharWeight  = 20
	repeatedCharRun     = 5
	uppercaseWeight     = 25
	uppercaseMinLength  = 20
	uppercaseRatio      = 0.5
	shortMessageWeight  = 15
	shortMessageLength  = 10
	longMessageWeight   = 10
	longMessageLength   = 2000
	shortUAWeight       = 15
	shortUALength       = 10
	botUAWeight         = 25
	externalRefWeight   = 10
	fieldStuffingWeight = 30
)

var linkPattern = regexp.MustCompile(`(?i)https?://|www\.`)

// Input is the data a verdict is computed from
type Input struct {
	Email     string
	Message   string
	UserAgent string
	Referer   string
	Origin    string
	ClientIP  string
}

// Verdict is the detector's judgement. Score is uncapped.
type Verdict struct {
	IsSpam  bool     `json:"isSpam"`
	Reasons []string `json:"reasons"`
	Score   int      `json:"score"`
}

// Detector applies a fixed rule set over configurable lists
type Detector struct {
	rules Rules
}

// NewDetector creates a detector for the given rules
func NewDetector(rules Rules) *Detector {
	return &Detector{rules: rules.normalized()}
}

// Detect scores in. It is a pure function of its input and the rules.
func (d *Detector) Detect(in Input) Verdict {
	v := Verdict{Reasons: []string{}}
	add := func(points int, reason string) {
		v.Score += points
		v.Reasons = append(v.Reasons, reason)
	}

	message := in.Message
	lower := strings.ToLower(message)
	length := utf8.RuneCountInString(message)

	if matched := d.matchKeywords(lower); len(matched) > 0 {
		add(keywordWeight*len(matched), fmt.Sprintf("Contains spam keywords: %s", strings.Join(matched, ", ")))
	}

	if links := len(linkPattern.FindAllStringIndex(message, -1)); links > maxLinks {
		add(linkWeight*links, fmt.Sprintf("Contains too many links (%d)", links))
	}

	if domain := emailDomain(in.Email); domain != "" && containsAny(domain, d.rules.DisposableDomains) {
		add(disposableWeight, "Uses a disposable email domain")
	}

	if hasRepeatedRun(message, repeatedCharRun) {
		add(repeatedCharWeight, "Contains repeated characters")
	}

	if length > uppercaseMinLength && float64(countUpper(message))/float64(length) > uppercaseRatio {
		add(uppercaseWeight, "Excessive uppercase text")
	}

	if length < shortMessageLength {
		add(shortMessageWeight, "Message is too short")
	}
	if length > longMessageLength {
		add(longMessageWeight, "Message is unusually long")
	}

	ua := strings.TrimSpace(in.UserAgent)
	if utf8.RuneCountInString(ua) < shortUALength {
		add(shortUAWeight, "Missing or short user agent")
	}
	if ua != "" && containsAny(strings.ToLower(ua), d.rules.BotUserAgents) {
		add(botUAWeight, "Bot-like user agent")
	}

	if in.Referer != "" && d.rules.SiteDomain != "" && !strings.Contains(strings.ToLower(in.Referer), d.rules.SiteDomain) {
		add(externalRefWeight, "External referer")
	}

	if normalize(in.Email) == normalize(message) {
		add(fieldStuffingWeight, "Email and message are identical")
	}

	v.IsSpam = v.Score >= SpamThreshold
	return v
}

func (d *Detector) matchKeywords(lowerMessage string) []string {
	var matched []string
	for _, kw := range d.rules.Keywords {
		if strings.Contains(lowerMessage, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func emailDomain(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// hasRepeatedRun reports whether any rune occurs n or more times in a row.
// RE2 has no backreferences, so this is a scan rather than a pattern.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return true
		}
		prev = r
	}
	return false
}

func countUpper(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
