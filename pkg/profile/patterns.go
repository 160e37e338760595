package profile

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// PatternType is the closed set of textual pattern categories.
type PatternType uint8

// Pattern categories, in the order they are listed to users.
const (
	PatternEmpty PatternType = iota
	PatternVeryLong
	PatternVeryShort
	PatternPureNumeric
	PatternFourDigitYear
	PatternIsoDate
	PatternEmailLike
	PatternURLLike
	PatternAllCaps
	PatternNumericWithPunctuation
	PatternFuzzyDate
	PatternDateRange
	PatternCenturyNotation
	PatternIsoLanguageCode
	PatternBracketedContent
	PatternMixedAlphanumeric
	PatternSpecialCharacterHeavy
	PatternOther

	patternCount
)

// MaxPatternExamples is the number of example values kept per pattern group.
const MaxPatternExamples = 5

const (
	veryLongThreshold  = 100
	veryShortThreshold = 2
	minAllCapsLen      = 3
	languageCodeLen    = 3
	isoDateMinLen      = 10
	dateRangeMinDigits = 8
	yearLen            = 4
	minYear            = 1000
	maxYear            = 2999
	specialRatio       = 0.25
)

type patternInfo struct {
	key         string
	name        string
	description string
}

var patternTable = [patternCount]patternInfo{
	PatternEmpty:                  {"empty", "Empty/Whitespace", "Empty strings or whitespace only"},
	PatternVeryLong:               {"very_long", "Very Long (>100 chars)", "Strings longer than 100 characters"},
	PatternVeryShort:              {"very_short", "Very Short (1-2 chars)", "1-2 character strings (codes, initials)"},
	PatternPureNumeric:            {"pure_numeric", "Purely Numeric", "Only digits, no other characters"},
	PatternFourDigitYear:          {"four_digit_year", "4-Digit Years (1000-2999)", "Four-digit numbers in year range (1000-2999)"},
	PatternIsoDate:                {"iso_date", "ISO Date Format", "ISO 8601 date format (YYYY-MM-DD or with time)"},
	PatternEmailLike:              {"email_like", "Email-like", "Contains @ symbol"},
	PatternURLLike:                {"url_like", "URL-like", "Starts with http:// or https://"},
	PatternAllCaps:                {"all_caps", "All Uppercase", "All uppercase letters (acronyms, codes)"},
	PatternNumericWithPunctuation: {"numeric_with_punctuation", "Numbers with Punctuation", "Numbers with commas, periods, or hyphens"},
	PatternFuzzyDate:              {"fuzzy_date", "Fuzzy Dates (circa, ca., ~)", "Approximate dates: 'circa 1800', 'ca. 1850', '~1900'"},
	PatternDateRange:              {"date_range", "Date Ranges", "Date ranges: '1800-1850', '1999/2000'"},
	PatternCenturyNotation:        {"century_notation", "Century Notation", "Century references: '18th century', '19. Jahrhundert'"},
	PatternIsoLanguageCode:        {"iso_language_code", "ISO Language Code (3-letter)", "3-letter language codes (eng, ger, fre)"},
	PatternBracketedContent:       {"bracketed_content", "Bracketed Content", "Text within brackets: '[n.d.]', '[London]'"},
	PatternMixedAlphanumeric:      {"mixed_alphanumeric", "Mixed Alphanumeric", "Mix of letters and numbers"},
	PatternSpecialCharacterHeavy:  {"special_character_heavy", "Special Character Heavy", ">25% special characters"},
	PatternOther:                  {"other", "Other/Unclassified", "Does not match any specific pattern"},
}

// ErrUnknownPattern is returned when parsing an unrecognized pattern key.
var ErrUnknownPattern = errors.New("unknown pattern")

// AllPatterns returns every pattern category in listing order.
func AllPatterns() []PatternType {
	all := make([]PatternType, 0, patternCount)
	for pt := range patternCount {
		all = append(all, pt)
	}

	return all
}

// String returns the stable machine key, e.g. "fuzzy_date".
func (pt PatternType) String() string {
	if pt >= patternCount {
		return "unknown"
	}

	return patternTable[pt].key
}

// Name returns the human-readable name.
func (pt PatternType) Name() string {
	if pt >= patternCount {
		return "Unknown"
	}

	return patternTable[pt].name
}

// Description returns the one-line explanation shown next to the name.
func (pt PatternType) Description() string {
	if pt >= patternCount {
		return ""
	}

	return patternTable[pt].description
}

// MarshalText encodes the pattern as its machine key.
func (pt PatternType) MarshalText() ([]byte, error) {
	if pt >= patternCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPattern, pt)
	}

	return []byte(pt.String()), nil
}

// UnmarshalText decodes a machine key.
func (pt *PatternType) UnmarshalText(text []byte) error {
	parsed, err := ParsePattern(string(text))
	if err != nil {
		return err
	}

	*pt = parsed

	return nil
}

// ParsePattern resolves a machine key back to its category.
func ParsePattern(key string) (PatternType, error) {
	for idx, info := range patternTable {
		if info.key == key {
			return PatternType(idx), nil
		}
	}

	return PatternOther, fmt.Errorf("%w: %q", ErrUnknownPattern, key)
}

// PatternGroup aggregates the facet values that fall into one pattern.
type PatternGroup struct {
	PatternType PatternType `json:"pattern_type" yaml:"pattern_type"`
	Count       int         `json:"count" yaml:"count"`
	Percentage  float64     `json:"percentage" yaml:"percentage"`
	Examples    []string    `json:"examples" yaml:"examples"`
}

// PatternAnalysis is the pattern breakdown of one field.
type PatternAnalysis struct {
	FieldName     string         `json:"field_name" yaml:"field_name"`
	TotalValues   int            `json:"total_values" yaml:"total_values"`
	PatternGroups []PatternGroup `json:"pattern_groups" yaml:"pattern_groups"`
}

type patternRule struct {
	pattern PatternType
	match   func(s string) bool
}

// cascade is evaluated top to bottom; the first matching rule decides.
// Lengths are byte lengths of the trimmed value.
var cascade = []patternRule{
	{PatternEmpty, func(s string) bool { return s == "" }},
	{PatternVeryLong, func(s string) bool { return len(s) > veryLongThreshold }},
	{PatternVeryShort, func(s string) bool { return len(s) <= veryShortThreshold }},
	{PatternURLLike, isURLLike},
	{PatternEmailLike, func(s string) bool { return strings.Contains(s, "@") }},
	{PatternFuzzyDate, isFuzzyDate},
	{PatternDateRange, isDateRange},
	{PatternCenturyNotation, isCenturyNotation},
	{PatternBracketedContent, isBracketed},
	{PatternIsoDate, isIsoDate},
	{PatternFourDigitYear, isFourDigitYear},
	{PatternIsoLanguageCode, isLanguageCode},
	{PatternPureNumeric, func(s string) bool { return allRunes(s, isASCIIDigit) }},
	{PatternNumericWithPunctuation, isNumericWithPunctuation},
	{PatternAllCaps, isAllCaps},
	{PatternSpecialCharacterHeavy, isSpecialHeavy},
	{PatternMixedAlphanumeric, isMixedAlphanumeric},
}

// Classify assigns a single string value to its pattern category.
func Classify(value string) PatternType {
	trimmed := strings.TrimSpace(value)

	for _, rule := range cascade {
		if rule.match(trimmed) {
			return rule.pattern
		}
	}

	return PatternOther
}

// ClassifyField groups the facet values of a field by pattern. Each facet
// value contributes its full count; the first MaxPatternExamples values of
// each group are kept as examples. Groups are sorted by count, highest first.
func ClassifyField(facets FacetAnalysis) PatternAnalysis {
	byPattern := make(map[PatternType]*PatternGroup)

	for _, fv := range facets.ValueFrequency {
		pt := Classify(fv.Value)

		group, ok := byPattern[pt]
		if !ok {
			group = &PatternGroup{PatternType: pt, Examples: make([]string, 0, MaxPatternExamples)}
			byPattern[pt] = group
		}

		group.Count += fv.Count

		if len(group.Examples) < MaxPatternExamples {
			group.Examples = append(group.Examples, fv.Value)
		}
	}

	groups := make([]PatternGroup, 0, len(byPattern))

	for _, group := range byPattern {
		group.Percentage = Percent(group.Count, facets.TotalValues)
		groups = append(groups, *group)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })

	return PatternAnalysis{
		FieldName:     facets.FieldName,
		TotalValues:   facets.TotalValues,
		PatternGroups: groups,
	}
}

func isURLLike(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func isFuzzyDate(s string) bool {
	lower := strings.ToLower(s)

	if strings.Contains(lower, "circa") || strings.Contains(lower, "ca.") ||
		strings.Contains(lower, "ca ") || strings.HasPrefix(lower, "~") {
		return true
	}

	return strings.Contains(lower, "c.") &&
		(strings.Contains(lower, "18") || strings.Contains(lower, "19") || strings.Contains(lower, "20"))
}

func isDateRange(s string) bool {
	separators := strings.Count(s, "-") + strings.Count(s, "/")
	if separators != 1 {
		return false
	}

	return countRunes(s, isASCIIDigit) >= dateRangeMinDigits
}

func isCenturyNotation(s string) bool {
	lower := strings.ToLower(s)

	if !strings.Contains(lower, "century") && !strings.Contains(lower, "jahrhundert") {
		return false
	}

	for _, marker := range []string{"th", "st", "nd", "rd", "."} {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	return false
}

func isBracketed(s string) bool {
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"))
}

func isIsoDate(s string) bool {
	if len(s) < isoDateMinLen {
		return false
	}

	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return false
	}

	year, month, day := parts[0], parts[1], parts[2]

	return len(year) == yearLen && allRunes(year, isASCIIDigit) &&
		len(month) == 2 && allRunes(month, isASCIIDigit) &&
		day != "" && isASCIIDigit(rune(day[0]))
}

func isFourDigitYear(s string) bool {
	if len(s) != yearLen || !allRunes(s, isASCIIDigit) {
		return false
	}

	year, err := strconv.Atoi(s)
	if err != nil {
		return false
	}

	return year >= minYear && year <= maxYear
}

func isLanguageCode(s string) bool {
	return len(s) == languageCodeLen && allRunes(s, unicode.IsLetter)
}

func isNumericWithPunctuation(s string) bool {
	if !strings.ContainsAny(s, ",.-") || countRunes(s, isASCIIDigit) == 0 {
		return false
	}

	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}

		if !isASCIIDigit(r) && r != ',' && r != '.' && r != '-' {
			return false
		}
	}

	return true
}

func isAllCaps(s string) bool {
	return len(s) >= minAllCapsLen && allRunes(s, func(r rune) bool {
		return unicode.IsUpper(r) || !unicode.IsLetter(r)
	})
}

func isSpecialHeavy(s string) bool {
	special := countRunes(s, func(r rune) bool {
		return !isAlphanumeric(r) && !unicode.IsSpace(r)
	})

	return float64(special)/float64(len(s)) > specialRatio
}

func isMixedAlphanumeric(s string) bool {
	return countRunes(s, unicode.IsLetter) > 0 && countRunes(s, isASCIIDigit) > 0
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func allRunes(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}

	return true
}

func countRunes(s string, pred func(rune) bool) int {
	n := 0

	for _, r := range s {
		if pred(r) {
			n++
		}
	}

	return n
}
