// Package parser extracts the structural skeleton of Python source: imports,
// classes, methods, functions, parameters and doc-strings. It works directly
// on the raw bytes without a tokenizer and never fails on constructs it does
// not understand; such lines come back as Code items.
package parser

import (
	"bytes"
	"strings"
)

// alternative tries to recognize one item at the start of in. On a mismatch
// it reports false and the caller continues from the same input.
type alternative func(p *parser, in input) (Item, input, bool)

// parser holds the state of a single Parse call.
type parser struct {
	err error
}

// Parse returns the items of a whole module in source order. A leading
// doc-string becomes a ModuleDoc. The only error is a *DecodeError.
func Parse(src []byte) ([]Item, error) {
	p := &parser{}
	in := input{buf: src}

	var items []Item
	if desc, rest, ok := p.docString(in); ok {
		items = append(items, ModuleDoc{Description: desc})
		in = rest
	}

	for in.len() > 0 && p.err == nil {
		var item Item
		item, in = p.next(in, len(items) == 0)
		if item != nil {
			items = append(items, item)
		}
	}

	if p.err != nil {
		return nil, p.err
	}
	return items, nil
}

// next consumes at least one byte of a non-empty input. It returns a nil
// item only when the rest of the input was blank.
func (p *parser) next(in input, first bool) (Item, input) {
	in = skipBlankLines(in)
	if in.len() == 0 {
		return nil, in
	}

	alts := []alternative{
		(*parser).importStmt,
		(*parser).importFrom,
		(*parser).class,
		(*parser).function,
	}
	if first {
		alts = append([]alternative{(*parser).shebang}, alts...)
	}
	return p.first(in, alts)
}

// first returns the result of the first matching alternative, falling back
// to a single line of Code.
func (p *parser) first(in input, alts []alternative) (Item, input) {
	for _, alt := range alts {
		if item, rest, ok := alt(p, in); ok {
			return item, rest
		}
	}
	return p.code(in)
}

// text converts n bytes of in to a string, recording a DecodeError for
// invalid UTF-8.
func (p *parser) text(in input, n int) string {
	b := in.buf[:n]
	if i := invalidAt(b); i >= 0 {
		if p.err == nil {
			p.err = &DecodeError{Offset: in.off + i}
		}
		return ""
	}
	return string(b)
}

// restOfLine returns the trimmed text of the current line without any
// trailing comment, and the input past its newline.
func (p *parser) restOfLine(in input) (string, input) {
	n := lineEnd(in)
	s := p.text(in, n)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s), consumeLine(in, n)
}

func (p *parser) shebang(in input) (Item, input, bool) {
	if !in.hasPrefix("#!") {
		return nil, in, false
	}
	rest := in.advance(2)
	rest = rest.advance(spaces(rest))
	n := lineEnd(rest)
	path := strings.TrimSpace(p.text(rest, n))
	return Shebang{Path: path}, consumeLine(rest, n), true
}

func (p *parser) importStmt(in input) (Item, input, bool) {
	_, n := indentation(in)
	rest, ok := keyword(in.advance(n), "import")
	if !ok {
		return nil, in, false
	}
	path, rest := p.restOfLine(rest)
	if path == "" {
		return nil, in, false
	}
	return Import{Path: path}, rest, true
}

var importMarker = []byte(" import")

func (p *parser) importFrom(in input) (Item, input, bool) {
	_, n := indentation(in)
	rest, ok := keyword(in.advance(n), "from")
	if !ok {
		return nil, in, false
	}

	line := rest.buf[:lineEnd(rest)]
	at := -1
	for off := 0; ; {
		i := bytes.Index(line[off:], importMarker)
		if i < 0 {
			break
		}
		end := off + i + len(importMarker)
		if end < len(line) && (line[end] == ' ' || line[end] == '\t' || line[end] == '(') {
			at = off + i
			break
		}
		off = end
	}
	if at < 0 {
		return nil, in, false
	}

	module := strings.TrimSpace(p.text(rest, at))
	level := 0
	for level < len(module) && module[level] == '.' {
		level++
	}
	module = module[level:]
	if module == "" && level == 0 {
		return nil, in, false
	}

	rest = rest.advance(at + len(importMarker))
	rest = rest.advance(spaces(rest))

	var name string
	if rest.peek() == '(' {
		if end := bytes.IndexByte(rest.buf, ')'); end >= 0 {
			name = strings.Join(strings.Fields(p.text(rest.advance(1), end-1)), " ")
			name = strings.TrimSuffix(name, ",")
			_, rest = p.restOfLine(rest.advance(end + 1))
		} else {
			name, rest = p.restOfLine(rest)
		}
	} else {
		name, rest = p.restOfLine(rest)
	}
	if name == "" {
		return nil, in, false
	}

	return ImportFrom{Module: module, Name: name, Level: level}, rest, true
}

func (p *parser) class(in input) (Item, input, bool) {
	width, n := indentation(in)
	rest, ok := keyword(in.advance(n), "class")
	if !ok {
		return nil, in, false
	}

	n = ident(rest)
	if n == 0 {
		return nil, in, false
	}
	cls := Class{Name: p.text(rest, n)}
	rest = rest.advance(n)
	rest = rest.advance(spaces(rest))

	if rest.peek() == '(' {
		cls.Parents, rest, ok = p.nameList(rest, isParentByte)
		if !ok {
			return nil, in, false
		}
		rest = rest.advance(spaces(rest))
	}

	if rest.peek() != ':' {
		return nil, in, false
	}
	rest = rest.advance(1)

	if desc, after, ok := p.docString(rest); ok {
		cls.Description = desc
		rest = after
	}

	body, rest := block(rest, width)
	cls.Methods = p.classBody(body)
	return cls, rest, true
}

// classBody runs the restricted grammar over a class block: methods, nested
// classes and opaque lines. Only the methods are kept.
func (p *parser) classBody(body input) []Function {
	alts := []alternative{
		(*parser).function,
		(*parser).class,
	}

	var methods []Function
	for p.err == nil {
		body = skipBlankLines(body)
		if body.len() == 0 {
			break
		}
		var item Item
		item, body = p.first(body, alts)
		if fn, ok := item.(Function); ok {
			methods = append(methods, fn)
		}
	}
	return methods
}

func (p *parser) function(in input) (Item, input, bool) {
	start := skipBlankLines(in)
	width, n := indentation(start)
	rest := start.advance(n)

	for rest.peek() == '@' {
		rest = consumeLine(rest, lineEnd(rest))
		rest = skipBlankLines(rest)
		_, n = indentation(rest)
		rest = rest.advance(n)
	}

	if after, ok := keyword(rest, "async"); ok {
		rest = after
	}
	rest, ok := keyword(rest, "def")
	if !ok {
		return nil, in, false
	}

	n = ident(rest)
	if n == 0 {
		return nil, in, false
	}
	fn := Function{Name: p.text(rest, n)}
	rest = rest.advance(n)
	rest = rest.advance(spaces(rest))

	if rest.peek() != '(' {
		return nil, in, false
	}
	fn.Parameters, rest, ok = p.nameList(rest, isParamByte)
	if !ok {
		return nil, in, false
	}
	rest = rest.advance(spaces(rest))

	if rest.hasPrefix("->") {
		line := rest.buf[:lineEnd(rest)]
		i := bytes.IndexByte(line, ':')
		if i < 0 {
			return nil, in, false
		}
		rest = rest.advance(i)
	}

	if rest.peek() != ':' {
		return nil, in, false
	}
	rest = rest.advance(1)

	if desc, after, ok := p.docString(rest); ok {
		fn.Description = desc
		rest = after
	}

	if rest.len() > 0 {
		_, rest = block(rest, width)
	}
	return fn, rest, true
}

// nameList parses a parenthesized, comma separated list of tokens drawn from
// class. A trailing comma is allowed and the list may span lines.
func (p *parser) nameList(in input, class func(byte) bool) ([]string, input, bool) {
	rest := in.advance(1)
	var names []string
	for {
		rest = rest.advance(whitespace(rest))
		if rest.peek() == ')' {
			return names, rest.advance(1), true
		}

		n := token(rest, class)
		if n == 0 {
			return nil, in, false
		}
		names = append(names, p.text(rest, n))
		rest = rest.advance(n)
		rest = rest.advance(whitespace(rest))

		switch rest.peek() {
		case ',':
			rest = rest.advance(1)
		case ')':
			return names, rest.advance(1), true
		default:
			return nil, in, false
		}
	}
}

// code consumes exactly one line. It always succeeds on non-empty input.
func (p *parser) code(in input) (Item, input) {
	in = skipBlankLines(in)
	n := lineEnd(in)
	text := strings.TrimRight(p.text(in, n), "\r")
	return Code{Text: text}, consumeLine(in, n)
}

// docString matches an optional run of whitespace followed by a string in
// triple double or triple single quotes.
func (p *parser) docString(in input) (string, input, bool) {
	rest := in.advance(whitespace(in))

	var quote string
	switch {
	case rest.hasPrefix(`"""`):
		quote = `"""`
	case rest.hasPrefix(`'''`):
		quote = `'''`
	default:
		return "", in, false
	}

	body := rest.advance(len(quote))
	end := bytes.Index(body.buf, []byte(quote))
	if end < 0 {
		return "", in, false
	}
	return cleanDoc(p.text(body, end)), body.advance(end + len(quote)), true
}

// cleanDoc trims a doc-string and removes the indentation its continuation
// lines share.
func cleanDoc(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) == 1 {
		return s
	}

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		if indent := len(line) - len(trimmed); margin < 0 || indent < margin {
			margin = indent
		}
	}

	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if i > 0 && margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
