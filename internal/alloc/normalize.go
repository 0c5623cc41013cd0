package alloc

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSubjectCode canonicalizes a subject code for comparison.
//
// Codes are trimmed of surrounding whitespace and normalized to Unicode NFC
// so that visually identical codes compare equal regardless of how the input
// method encoded them. Validation runs its empty and duplicate checks on
// normalized codes; raw codes are preserved on the row itself.
func NormalizeSubjectCode(code string) string {
	return norm.NFC.String(strings.TrimSpace(code))
}

// SubjectCodeEmpty reports whether a subject code is empty or whitespace-only
// after normalization.
func SubjectCodeEmpty(code string) bool {
	return NormalizeSubjectCode(code) == ""
}
