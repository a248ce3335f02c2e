package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/garnizeh/offerdesk/pkg/models"
)

// Extract parses a free-text utterance into the offer fields it can find.
// It is a pure function: no side effects, deterministic, and it never fails.
// An utterance with no recognizable fields yields an empty result, which is
// not an error but "nothing new learned this turn".
//
// Heuristic layers run in a fixed order and a later layer never overwrites a
// field set by an earlier one:
//  1. availability keywords
//  2. labeled fields ("salary: 80000", "role is contractor")
//  3. multi-line positional heuristics
//  4. single-utterance fallback
//  5. global fallback patterns
//  6. quote stripping
func Extract(utterance string) ExtractionResult {
	var res ExtractionResult

	text := strings.TrimSpace(utterance)
	if text == "" {
		return res
	}
	lower := strings.ToLower(text)

	// 1. availability keywords; hybrid and on-site outrank remote so that
	// mixed mentions like "hybrid remote" resolve to the stricter mode
	switch {
	case strings.Contains(lower, "hybrid"):
		res.Availability = models.AvailabilityHybrid
	case containsAny(lower, "on site", "onsite", "on-site", "on_site"):
		res.Availability = models.AvailabilityOnSite
	case strings.Contains(lower, "remote"):
		res.Availability = models.AvailabilityRemote
	}

	// 2. labeled fields
	if m := reNameLabel.FindStringSubmatch(text); m != nil {
		res.Name = cleanValue(m[1])
	}
	if res.Name == "" {
		if m := reCreateFor.FindStringSubmatch(text); m != nil {
			res.Name = cleanValue(m[1])
		}
	}
	if m := reRoleLabel.FindStringSubmatch(text); m != nil {
		v := cleanValue(m[1])
		// regex over-capture guard: the words "role" and "is" are not roles
		if lv := strings.ToLower(v); lv != "role" && lv != "is" && v != "" {
			res.Role = v
		}
	}
	if m := reSalaryLabel.FindStringSubmatch(text); m != nil {
		if f, ok := parseAmount(m[1]); ok {
			res.Salary = &f
		}
	}
	if m := reLocationLabel.FindStringSubmatch(text); m != nil {
		res.Location = cleanValue(m[1])
	}
	if m := reDescriptionLabel.FindStringSubmatch(text); m != nil {
		res.Description = cleanValue(m[1])
	}

	lines := splitSegments(text)
	claimed := make([]bool, len(lines))

	if len(lines) >= 2 {
		extractPositional(lines, claimed, &res)
	} else if len(lines) == 1 {
		extractSingle(lines[0], &res)
	}

	// 5. global fallbacks
	if res.Name == "" {
		if m := reCompoundTitle.FindStringSubmatch(text); m != nil {
			res.Name = strings.TrimSpace(m[1])
		} else if len(lines) >= 2 && !claimed[0] && !reFieldLabel.MatchString(lines[0]) {
			res.Name = lines[0]
			claimed[0] = true
		}
	}
	if res.Salary == nil {
		for _, re := range salaryFallbacks {
			if m := re.FindStringSubmatch(text); m != nil {
				if f, ok := parseAmount(m[1]); ok {
					res.Salary = &f
					break
				}
			}
		}
	}
	if res.Location == "" {
		res.Location = scanLocationToken(lines, claimed, res)
	}

	// 6. final cleanup
	res.Name = cleanValue(res.Name)
	res.Role = cleanValue(res.Role)
	res.Location = cleanValue(res.Location)
	res.Description = cleanValue(res.Description)

	return res
}

// extractPositional applies the multi-line heuristics: first line as name,
// salary/role/location/description candidates scanned across lines. Lines
// consumed by a field are marked claimed so later scans skip them.
func extractPositional(lines []string, claimed []bool, res *ExtractionResult) {
	// name: first line, unless it is itself a field label
	if res.Name == "" && !reFieldLabel.MatchString(lines[0]) {
		if containsTitleKeyword(lines[0]) || len(lines[0]) >= minNameLen {
			res.Name = lines[0]
			claimed[0] = true
		}
	} else if res.Name != "" && strings.EqualFold(lines[0], res.Name) {
		claimed[0] = true
	}

	// salary: a line of the form "<number> <currency>" or "$<number>"
	for i, ln := range lines {
		if res.Salary != nil {
			break
		}
		if m := reSalaryLine.FindStringSubmatch(ln); m != nil {
			amount := m[1]
			if amount == "" {
				amount = m[2]
			}
			if f, ok := parseAmount(amount); ok {
				res.Salary = &f
				claimed[i] = true
			}
		}
	}

	// role: a standalone employment-type keyword
	for i, ln := range lines {
		if res.Role != "" {
			break
		}
		if isRoleKeyword(ln) {
			res.Role = strings.TrimSpace(ln)
			claimed[i] = true
		}
	}

	// location: short line, no digits, not another field, no excluded words
	for i, ln := range lines {
		if res.Location != "" {
			break
		}
		if claimed[i] || reFieldLabel.MatchString(ln) {
			continue
		}
		if reDigit.MatchString(ln) || len(ln) < 3 || len(ln) > 50 {
			continue
		}
		if strings.EqualFold(ln, res.Name) || strings.EqualFold(ln, res.Role) {
			continue
		}
		if containsExcludedWord(ln) {
			continue
		}
		res.Location = ln
		claimed[i] = true
	}

	// description: from the last line backwards, first unclaimed line long
	// enough to read as prose
	for i := len(lines) - 1; i >= 0; i-- {
		if res.Description != "" {
			break
		}
		ln := lines[i]
		if claimed[i] || reFieldLabel.MatchString(ln) {
			continue
		}
		if len(ln) <= minDescriptionLen {
			continue
		}
		if reSalaryLine.MatchString(ln) {
			continue
		}
		res.Description = ln
		claimed[i] = true
	}
}

// extractSingle handles one-segment utterances: a bare role keyword becomes
// the role, a short plain word becomes a capitalized location.
func extractSingle(line string, res *ExtractionResult) {
	if res.Role == "" && isRoleKeyword(line) {
		res.Role = strings.TrimSpace(line)
		return
	}
	if res.Location != "" || res.Name != "" {
		return
	}
	if reDigit.MatchString(line) || reFieldLabel.MatchString(line) {
		return
	}
	if len(line) < minLocationLen || len(line) > maxSingleLocationLen {
		return
	}
	if len(strings.Fields(line)) > 3 {
		return
	}
	if containsExcludedWord(line) {
		return
	}
	res.Location = capitalizeFirst(line)
}

// scanLocationToken is the last-resort location heuristic: a capitalized
// token on a line no other field consumed, filtered through a stoplist of
// known non-location capitalized terms.
func scanLocationToken(lines []string, claimed []bool, res ExtractionResult) string {
	for i, ln := range lines {
		if claimed[i] || reFieldLabel.MatchString(ln) {
			continue
		}
		for _, tok := range strings.Fields(ln) {
			tok = strings.Trim(tok, `"'.,!?()`)
			if len(tok) < minLocationLen || len(tok) > maxTokenLocationLen {
				continue
			}
			if !startsUpper(tok) || reDigit.MatchString(tok) {
				continue
			}
			if _, stop := locationStoplist[strings.ToLower(tok)]; stop {
				continue
			}
			if res.Name != "" && strings.Contains(strings.ToLower(res.Name), strings.ToLower(tok)) {
				continue
			}
			return tok
		}
	}
	return ""
}

const (
	minNameLen           = 10
	minDescriptionLen    = 15
	minLocationLen       = 3
	maxSingleLocationLen = 30
	maxTokenLocationLen  = 30
)

var (
	reNameLabel        = regexp.MustCompile(`(?i)\b(?:name|title)\s*(?::|\bis\b)\s*([^,;\n]+)`)
	reCreateFor        = regexp.MustCompile(`(?i)create\s+(?:a\s+|an\s+)?(?:work\s+offer|job|position|posting)\s+for\s+([^,;\n]+)`)
	reRoleLabel        = regexp.MustCompile(`(?i)\brole\s*(?::|\bis\b)\s*([^,;\n]+)`)
	reSalaryLabel      = regexp.MustCompile(`(?i)\bsalary\s*(?::|\bis\b)\s*\$?\s*(\d[\d,.]*)`)
	reLocationLabel    = regexp.MustCompile(`(?i)\blocation\s*(?::|\bis\b)\s*([^,;\n]+)`)
	reDescriptionLabel = regexp.MustCompile(`(?i)\bdescription\s*(?::|\bis\b)\s*(.+)`)

	// a whole segment that reads as an amount: optional $ prefix, digits,
	// optional currency or pay-period suffix
	reSalaryLine = regexp.MustCompile(`(?i)^(?:\$\s*(\d[\d,.]*)|(?:(\d[\d,.]*)\s*(?:usd|eur|cop|gbp|dollars?|euros?|per\s+(?:hour|week|month|year))))\s*$`)

	reCompoundTitle = regexp.MustCompile(`(?i)\b((?:senior|junior|lead|principal|staff|mid[- ]level)\s+(?:\w+[- ]){0,2}(?:developer|engineer|designer|manager|analyst|specialist|architect))\b`)

	salaryFallbacks = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d[\d,.]*)\s*(?:usd|eur|cop|gbp|dollars?|euros?)\b`),
		regexp.MustCompile(`\$\s*(\d[\d,.]*)`),
		regexp.MustCompile(`(?i)\b(\d[\d,.]*)\s*(?:per|/)\s*(?:hour|week|month|year)\b`),
	}

	reFieldLabel = regexp.MustCompile(`(?i)^\s*(?:name|title|role|salary|description|availability|location)\s*:`)
	reDigit      = regexp.MustCompile(`\d`)
)

var titleKeywords = []string{
	"developer", "engineer", "designer", "manager", "analyst", "specialist", "architect",
}

var roleKeywords = map[string]struct{}{
	"employee":   {},
	"contractor": {},
	"freelancer": {},
	"intern":     {},
	"full-time":  {},
	"full time":  {},
	"part-time":  {},
	"part time":  {},
	"temporary":  {},
	"permanent":  {},
}

// words whose presence disqualifies a line as a location candidate: job
// titles, currencies, field labels and availability markers
var locationExcluded = []string{
	"developer", "engineer", "designer", "manager", "analyst", "specialist", "architect",
	"usd", "eur", "cop", "gbp", "dollar", "euro", "salary",
	"name", "title", "role", "description", "availability", "location",
	"remote", "hybrid", "onsite", "on-site", "on site", "on_site",
	"create", "offer", "job", "position",
}

// capitalized tokens that are never locations
var locationStoplist = map[string]struct{}{
	"front": {}, "end": {}, "backend": {}, "frontend": {}, "fullstack": {},
	"senior": {}, "junior": {}, "lead": {}, "principal": {}, "staff": {},
	"usd": {}, "eur": {}, "cop": {}, "gbp": {},
	"remote": {}, "hybrid": {}, "onsite": {},
	"developer": {}, "engineer": {}, "designer": {}, "manager": {},
	"analyst": {}, "specialist": {}, "architect": {},
	"create": {}, "work": {}, "offer": {}, "job": {}, "position": {},
	"salary": {}, "looking": {}, "hiring": {}, "wanted": {},
}

// splitSegments splits an utterance on newlines, commas and semicolons and
// drops empty segments.
func splitSegments(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ',' || r == ';'
	})
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsTitleKeyword(s string) bool {
	ls := strings.ToLower(s)
	for _, kw := range titleKeywords {
		if strings.Contains(ls, kw) {
			return true
		}
	}
	return false
}

func isRoleKeyword(s string) bool {
	_, ok := roleKeywords[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

func containsExcludedWord(s string) bool {
	ls := strings.ToLower(s)
	for _, w := range locationExcluded {
		if strings.Contains(ls, w) {
			return true
		}
	}
	return false
}

// parseAmount converts a digit string like "80,000" or "4500" to a
// non-negative number.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

func capitalizeFirst(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// cleanValue trims whitespace and surrounding quote characters.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
