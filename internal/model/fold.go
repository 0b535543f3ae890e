package model

import "golang.org/x/text/cases"

// Fold returns the Unicode case-folded form of s.
//
// A cases.Caser is not safe for concurrent use, so hot loops should create
// their own with cases.Fold() instead of calling Fold repeatedly.
func Fold(s string) string {
	return cases.Fold().String(s)
}
