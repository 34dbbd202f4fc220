package model

import (
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// acronyms render upper-cased when they appear as a whole word in a key.
var acronyms = map[string]string{
	"id":  "ID",
	"cpf": "CPF",
	"url": "URL",
}

// DefaultLabeler converts a field or column key into a human-friendly label:
// "account_number" becomes "Account Number", "userId" becomes "User ID".
func DefaultLabeler(key string) string {
	if key == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(key, -1) {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, labelWord(part))
		}
	}
	return strings.Join(segments, " ")
}

func labelWord(word string) string {
	lower := strings.ToLower(word)
	if acronym, ok := acronyms[lower]; ok {
		return acronym
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input[i-1], r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(prev byte, r rune) bool {
	p := rune(prev)
	return (isLower(p) && isUpper(r)) || (isLetter(p) && isDigit(r)) || (isDigit(p) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
