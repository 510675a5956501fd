package manifest

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"weakwrap-generator/internal/model"
)

// typeArguments returns the top-level type arguments of a spelling such as
// "Map<String, List<Long>>". A spelling without arguments yields nil.
func typeArguments(spelling string) []string {
	open := strings.IndexByte(spelling, '<')
	closing := strings.LastIndexByte(spelling, '>')

	if open < 0 || closing < open {
		return nil
	}

	var (
		args  []string
		depth int
		start = open + 1
	)

	inner := spelling[:closing]
	for i := start; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}

	return append(args, strings.TrimSpace(inner[start:]))
}

// bindings maps the type parameters of a supertype to the arguments given
// in an extends clause. A raw supertype binds each parameter to its erased
// bound, or Object.
func bindings(params []TypeParamDecl, args []string) map[string]string {
	if len(params) == 0 {
		return nil
	}

	out := make(map[string]string, len(params))

	for i, p := range params {
		if len(args) > 0 {
			out[p.Name] = args[i]
			continue
		}

		bound, _, _ := strings.Cut(p.Bound, "&")
		bound = eraseTypeArguments(bound)

		if bound == "" {
			bound = "Object"
		}

		out[p.Name] = bound
	}

	return out
}

// substituteMember rewrites the types of an inherited member in terms of
// the inheriting type. The member's own type parameters shadow bindings.
func substituteMember(m model.MemberDescriptor, bound map[string]string) model.MemberDescriptor {
	if len(bound) == 0 {
		return m
	}

	if len(m.TypeParameters) > 0 {
		bound = maps.Clone(bound)
		for _, tp := range m.TypeParameters {
			delete(bound, tp.Name)
		}
	}

	out := m

	out.TypeParameters = slices.Clone(m.TypeParameters)
	for i := range out.TypeParameters {
		out.TypeParameters[i].Bound = substitute(out.TypeParameters[i].Bound, bound)
	}

	out.Parameters = slices.Clone(m.Parameters)
	for i := range out.Parameters {
		out.Parameters[i].Type = substitute(out.Parameters[i].Type, bound)
	}

	out.ThrownTypes = slices.Clone(m.ThrownTypes)
	for i := range out.ThrownTypes {
		out.ThrownTypes[i] = substitute(out.ThrownTypes[i], bound)
	}

	if !m.ReturnType.IsVoid() {
		out.ReturnType = typeRefOf(substitute(m.ReturnType.Name, bound))
	}

	return out
}

// substitute replaces every identifier of spelling bound in names. Segments
// of qualified names are left alone.
func substitute(spelling string, names map[string]string) string {
	if len(names) == 0 || spelling == "" {
		return spelling
	}

	var b strings.Builder

	runes := []rune(spelling)
	for i := 0; i < len(runes); {
		if !isIdentStart(runes[i]) {
			b.WriteRune(runes[i])
			i++

			continue
		}

		j := i + 1
		for j < len(runes) && isIdentPart(runes[j]) {
			j++
		}

		ident := string(runes[i:j])
		qualified := (i > 0 && runes[i-1] == '.') || (j < len(runes) && runes[j] == '.' && !strings.HasPrefix(string(runes[j:]), "..."))

		if repl, ok := names[ident]; ok && !qualified {
			b.WriteString(repl)
		} else {
			b.WriteString(ident)
		}

		i = j
	}

	return b.String()
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
