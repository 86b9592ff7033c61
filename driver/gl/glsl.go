// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Shader code refers to descriptor bindings in one of two
// ways: through the LAYOUT_ID(set, binding) macro inside a
// layout qualifier, or through explicit "set = S, binding = B"
// qualifiers. Push constant blocks use the push_constant
// qualifier. These are rewritten into flat binding points.
var (
	reLayout    = regexp.MustCompile(`\blayout\s*\(`)
	reLayoutID  = regexp.MustCompile(`LAYOUT_ID\s*\(\s*(\w+)\s*,\s*(\w+)\s*\)`)
	reSet       = regexp.MustCompile(`\bset\s*=\s*(\w+)`)
	reBinding   = regexp.MustCompile(`\bbinding\s*=\s*(\w+)`)
	rePush      = regexp.MustCompile(`\bpush_constant\b`)
	reImage     = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp|readonly|writeonly|coherent|volatile|restrict)\s+)*[iu]?(?:sampler|image|texture)\w*\b`)
	reArray     = regexp.MustCompile(`^\s*\w+\s*\[\s*(\w*)\s*\]`)
	reDeclArray = regexp.MustCompile(`\w+\s*\[\s*(\w*)\s*\]\s*$`)
	reComment   = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
)

// layoutQual is a layout qualifier found in shader code.
type layoutQual struct {
	// Byte range of the qualifier's contents, excluding
	// parentheses.
	start, end int
	// Declaration text that follows the qualifier, up to
	// the first ';' or '{'.
	decl string
	// Text that follows the declaration.
	rest    string
	set     int
	binding int
	bound   bool
	push    bool
}

// blankComments replaces comments with spaces, preserving
// byte offsets.
func blankComments(src string) string {
	return reComment.ReplaceAllStringFunc(src, func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == '\n' {
				return r
			}
			return ' '
		}, s)
	})
}

func atoiGLSL(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Newf("gl: expected integer literal in layout qualifier, found %q", s)
	}
	return n, nil
}

// scanLayouts returns every layout qualifier of src.
func scanLayouts(src string) ([]layoutQual, error) {
	text := blankComments(src)
	var quals []layoutQual
	for _, loc := range reLayout.FindAllStringIndex(text, -1) {
		start := loc[1]
		depth := 1
		end := start
		for ; end < len(text) && depth > 0; end++ {
			switch text[end] {
			case '(':
				depth++
			case ')':
				depth--
			}
		}
		if depth != 0 {
			return nil, errors.New("gl: unbalanced parentheses in layout qualifier")
		}
		end-- // Closing parenthesis.
		q := layoutQual{start: start, end: end}
		after := text[end+1:]
		if i := strings.IndexAny(after, ";{"); i >= 0 {
			q.decl = after[:i]
			q.rest = after[i:]
		} else {
			q.decl = after
		}
		content := text[start:end]
		switch {
		case rePush.MatchString(content):
			q.push = true
		case reLayoutID.MatchString(content):
			m := reLayoutID.FindStringSubmatch(content)
			var err error
			if q.set, err = atoiGLSL(m[1]); err != nil {
				return nil, err
			}
			if q.binding, err = atoiGLSL(m[2]); err != nil {
				return nil, err
			}
			q.bound = true
		case reSet.MatchString(content):
			m := reSet.FindStringSubmatch(content)
			var err error
			if q.set, err = atoiGLSL(m[1]); err != nil {
				return nil, err
			}
			mb := reBinding.FindStringSubmatch(content)
			if mb == nil {
				return nil, errors.Newf("gl: layout qualifier %q has a set but no binding", content)
			}
			if q.binding, err = atoiGLSL(mb[1]); err != nil {
				return nil, err
			}
			q.bound = true
		}
		quals = append(quals, q)
	}
	return quals, nil
}

// kind classifies the declaration that follows q.
func (q *layoutQual) kind() ResourceKind {
	if reImage.MatchString(q.decl) {
		return KindImage
	}
	return KindBuffer
}

// arraySize returns the array length of the declaration
// that follows q.
// Opaque uniforms carry the length after their name.
// Blocks carry it after the instance name.
func (q *layoutQual) arraySize() (int, error) {
	var m []string
	if q.kind() == KindImage {
		m = reDeclArray.FindStringSubmatch(q.decl)
	} else {
		if !strings.HasPrefix(q.rest, "{") {
			return 1, nil
		}
		i := strings.IndexByte(q.rest, '}')
		if i < 0 {
			return 0, errors.New("gl: unterminated block declaration")
		}
		m = reArray.FindStringSubmatch(q.rest[i+1:])
	}
	if m == nil {
		return 1, nil
	}
	if m[1] == "" {
		return 0, errors.New("gl: unsized descriptor arrays are not supported")
	}
	n, err := atoiGLSL(m[1])
	if err != nil {
		return 0, err
	}
	return max(n, 1), nil
}

// ReflectGLSL collects descriptor set bindings declared in
// the shader code of every stage of a pipeline.
// The result is ordered by set index and then by binding.
func ReflectGLSL(src ...string) ([]SetReflection, error) {
	var sets []SetReflection
	for _, s := range src {
		quals, err := scanLayouts(s)
		if err != nil {
			return nil, err
		}
		for i := range quals {
			q := &quals[i]
			if !q.bound {
				continue
			}
			n, err := q.arraySize()
			if err != nil {
				return nil, err
			}
			for len(sets) <= q.set {
				sets = append(sets, SetReflection{Set: len(sets)})
			}
			sets[q.set].Bindings = append(sets[q.set].Bindings, BindingInfo{
				Binding:   q.binding,
				Kind:      q.kind(),
				ArraySize: n,
			})
		}
	}
	return sets, nil
}

// RewriteBindings replaces descriptor set references in src
// with the binding points of table.
// Push constant blocks are bound to PushConstantBinding
// with std140 layout.
func RewriteBindings(src string, table BindingTable) (string, error) {
	quals, err := scanLayouts(src)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(src) + len(quals)*8)
	last := 0
	for _, q := range quals {
		var content string
		switch {
		case q.push:
			content = rePush.ReplaceAllLiteralString(src[q.start:q.end], "std140, binding = "+strconv.Itoa(PushConstantBinding))
		case q.bound:
			bp, ok := table.Lookup(q.set, q.binding)
			if !ok {
				return "", errors.Newf("gl: no binding point for set %d binding %d", q.set, q.binding)
			}
			repl := "binding = " + strconv.Itoa(bp)
			content = src[q.start:q.end]
			if reLayoutID.MatchString(content) {
				content = reLayoutID.ReplaceAllLiteralString(content, repl)
			} else {
				content = reBinding.ReplaceAllLiteralString(content, repl)
				content = removeSetQualifier(content)
			}
		default:
			continue
		}
		sb.WriteString(src[last:q.start])
		sb.WriteString(content)
		last = q.end
	}
	sb.WriteString(src[last:])
	return sb.String(), nil
}

// removeSetQualifier removes "set = S" from the contents of
// a layout qualifier, along with its separating comma.
func removeSetQualifier(content string) string {
	loc := reSet.FindStringIndex(content)
	if loc == nil {
		return content
	}
	before := strings.TrimRight(content[:loc[0]], " \t")
	after := strings.TrimLeft(content[loc[1]:], " \t")
	switch {
	case strings.HasPrefix(after, ","):
		after = strings.TrimLeft(after[1:], " \t")
	case strings.HasSuffix(before, ","):
		before = strings.TrimRight(before[:len(before)-1], " \t")
	}
	if before != "" && after != "" {
		return before + ", " + after
	}
	return before + after
}
