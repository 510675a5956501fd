package analyze

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"weakwrap-generator/internal/match"
)

// DirectivePrefix starts every comment line the generator reacts to.
const DirectivePrefix = "//weakwrap:"

const (
	verbWrap   = "wrap"
	optionFile = "file"
)

var knownOptions = []string{optionFile}

// directiveAST is the grammar of a directive line:
//
//	//weakwrap:wrap [key=value ...]
type directiveAST struct {
	Verb    string       `parser:"'//' 'weakwrap' ':' @Word"`
	Options []*optionAST `parser:"@@*"`
}

type optionAST struct {
	Key   string `parser:"@Word '='"`
	Value string `parser:"@(String | Word)"`
}

var directiveParser = participle.MustBuild[directiveAST](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Equals", Pattern: `=`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Word", Pattern: `[^\s=":]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// Directive is a parsed //weakwrap:wrap comment.
type Directive struct {
	// File overrides the output file name.
	File string
}

// IsDirective reports whether a raw comment line is meant for the generator.
func IsDirective(comment string) bool {
	return strings.HasPrefix(comment, DirectivePrefix)
}

// DirectiveError is a malformed directive, with suggestions for misspelled
// verbs or option keys.
type DirectiveError struct {
	Message     string
	Suggestions []string
}

func (e *DirectiveError) Error() string {
	return e.Message
}

// ParseDirective parses one raw comment line starting with DirectivePrefix.
func ParseDirective(comment string) (*Directive, error) {
	parsed, err := directiveParser.ParseString("", strings.TrimSpace(comment))
	if err != nil {
		return nil, &DirectiveError{Message: fmt.Sprintf("malformed directive %q: %v", comment, err)}
	}

	if parsed.Verb != verbWrap {
		return nil, &DirectiveError{
			Message:     fmt.Sprintf("unknown directive %q", DirectivePrefix+parsed.Verb),
			Suggestions: match.Suggest(parsed.Verb, []string{verbWrap}, match.DefaultSuggestions),
		}
	}

	d := &Directive{}

	for _, opt := range parsed.Options {
		value := opt.Value
		if strings.HasPrefix(value, `"`) {
			unquoted, err := strconv.Unquote(value)
			if err != nil {
				return nil, &DirectiveError{Message: fmt.Sprintf("bad value for %s: %v", opt.Key, err)}
			}

			value = unquoted
		}

		switch opt.Key {
		case optionFile:
			if !strings.HasSuffix(value, ".go") || strings.ContainsAny(value, `/\`) {
				return nil, &DirectiveError{Message: fmt.Sprintf("file=%q must be a .go file name without directories", value)}
			}

			d.File = value
		default:
			return nil, &DirectiveError{
				Message:     fmt.Sprintf("unknown option %q", opt.Key),
				Suggestions: match.Suggest(opt.Key, knownOptions, match.DefaultSuggestions),
			}
		}
	}

	return d, nil
}
