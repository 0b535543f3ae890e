package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/linux-command-library/lcl/internal/model"
	"github.com/linux-command-library/lcl/internal/shellquote"
)

// ErrEmptyCommandLine is returned by Explain for a line with no words.
var ErrEmptyCommandLine = errors.New("empty command line")

// FlagMatch pairs a token from the command line with the option it selects.
type FlagMatch struct {
	Token  string       `json:"token"`
	Flag   string       `json:"flag"`
	Option model.Option `json:"option"`
}

// Explanation describes a command line in terms of a catalog entry.
type Explanation struct {
	Tokens []string `json:"tokens"`

	// Command is nil when the first word has no catalog entry.
	Command *model.Document `json:"command,omitempty"`

	Flags []FlagMatch `json:"flags"`

	// Unknown lists flag-like tokens with no matching option.
	Unknown []string `json:"unknown,omitempty"`
}

// Explain splits line like a shell would, looks up its first word by exact
// name and matches every flag-like token against that command's options.
//
// Tokens are matched as written first, then "--opt=value" as "--opt", then
// bundled short flags such as "-xvf" letter by letter. Everything after a
// bare "--" is treated as an operand.
func Explain(src Source, line string) (Explanation, error) {
	tokens, err := shellquote.Split(line)
	if err != nil {
		return Explanation{}, fmt.Errorf("parse command line: %w", err)
	}
	if len(tokens) == 0 {
		return Explanation{}, ErrEmptyCommandLine
	}

	ex := Explanation{Tokens: tokens, Flags: []FlagMatch{}}

	want := model.Fold(tokens[0])
	for _, d := range src.Documents() {
		if model.Fold(d.Name) == want {
			ex.Command = &d
			break
		}
	}
	if ex.Command == nil {
		return ex, nil
	}

	for _, tok := range tokens[1:] {
		if tok == "--" {
			break
		}
		if !isFlagToken(tok) {
			continue
		}
		matches := matchFlag(ex.Command.Options, tok)
		if len(matches) == 0 {
			ex.Unknown = append(ex.Unknown, tok)
			continue
		}
		ex.Flags = append(ex.Flags, matches...)
	}
	return ex, nil
}

func isFlagToken(tok string) bool {
	return len(tok) > 1 && tok[0] == '-' && tok != "--"
}

func findOption(opts []model.Option, flag string) (model.Option, bool) {
	for _, o := range opts {
		if o.HasFlag(flag) {
			return o, true
		}
	}
	return model.Option{}, false
}

func matchFlag(opts []model.Option, tok string) []FlagMatch {
	if o, ok := findOption(opts, tok); ok {
		return []FlagMatch{{Token: tok, Flag: tok, Option: o}}
	}

	if name, _, ok := strings.Cut(tok, "="); ok && name != "" && name != "-" && name != "--" {
		if o, ok := findOption(opts, name); ok {
			return []FlagMatch{{Token: tok, Flag: name, Option: o}}
		}
		return nil
	}

	if strings.HasPrefix(tok, "--") {
		return nil
	}

	// Bundled short flags: every letter must resolve or none are reported.
	letters := []rune(tok[1:])
	if len(letters) < 2 {
		return nil
	}
	out := make([]FlagMatch, 0, len(letters))
	for _, r := range letters {
		flag := "-" + string(r)
		o, ok := findOption(opts, flag)
		if !ok {
			return nil
		}
		out = append(out, FlagMatch{Token: tok, Flag: flag, Option: o})
	}
	return out
}
