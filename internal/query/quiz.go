package query

import (
	"errors"
	"strings"

	"github.com/linux-command-library/lcl/internal/model"
)

// ErrNoReferenceSyntax is returned by CheckAnswer for a command without a
// usage line.
var ErrNoReferenceSyntax = errors.New("no reference syntax to check against")

// QuizResult is the outcome of one quiz answer.
type QuizResult struct {
	Command  string `json:"command"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
}

// CheckAnswer accepts a non-empty answer that appears verbatim in the
// command's usage line. Surrounding whitespace is ignored.
func CheckAnswer(d model.Document, answer string) (QuizResult, error) {
	expected := strings.TrimSpace(d.Usage)
	answer = strings.TrimSpace(answer)
	res := QuizResult{Command: d.Name, Answer: answer, Expected: expected}
	if expected == "" {
		return res, ErrNoReferenceSyntax
	}
	res.Correct = answer != "" && strings.Contains(expected, answer)
	return res, nil
}
