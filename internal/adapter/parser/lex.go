package parser

import "bytes"

const tabWidth = 8

// input is the unconsumed tail of the source together with its absolute
// byte offset, so decode errors can point back into the original buffer.
type input struct {
	buf []byte
	off int
}

func (in input) len() int { return len(in.buf) }

func (in input) advance(n int) input {
	return input{buf: in.buf[n:], off: in.off + n}
}

func (in input) peek() byte {
	if len(in.buf) == 0 {
		return 0
	}
	return in.buf[0]
}

func (in input) hasPrefix(s string) bool {
	return len(in.buf) >= len(s) && string(in.buf[:len(s)]) == s
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentByte(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// isParamByte extends the identifier class with the characters needed for
// simple default values such as x=1, items=[] or opts={}.
func isParamByte(c byte) bool {
	switch c {
	case '=', '{', '}', '[', ']', '*', '.':
		return true
	}
	return isIdentByte(c)
}

func isParentByte(c byte) bool {
	return isIdentByte(c) || c == '.' || c == '='
}

// ident returns the length of the identifier at the start of in, or 0 when
// there is none.
func ident(in input) int {
	if !isLetter(in.peek()) {
		return 0
	}
	n := 1
	for n < len(in.buf) && isIdentByte(in.buf[n]) {
		n++
	}
	return n
}

// token returns the length of the maximal run of bytes accepted by class.
func token(in input, class func(byte) bool) int {
	n := 0
	for n < len(in.buf) && class(in.buf[n]) {
		n++
	}
	return n
}

// spaces counts horizontal whitespace.
func spaces(in input) int {
	n := 0
	for n < len(in.buf) && (in.buf[n] == ' ' || in.buf[n] == '\t') {
		n++
	}
	return n
}

// whitespace counts any whitespace, newlines included.
func whitespace(in input) int {
	n := 0
	for n < len(in.buf) {
		switch in.buf[n] {
		case ' ', '\t', '\r', '\n':
			n++
		default:
			return n
		}
	}
	return n
}

// indentation measures the leading whitespace of the current line. It
// returns the column width and the number of bytes it occupies.
func indentation(in input) (width, n int) {
	for n < len(in.buf) {
		switch in.buf[n] {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		default:
			return width, n
		}
		n++
	}
	return width, n
}

// lineEnd returns the index of the next newline, or the input length.
func lineEnd(in input) int {
	if i := bytes.IndexByte(in.buf, '\n'); i >= 0 {
		return i
	}
	return len(in.buf)
}

// consumeLine advances past n bytes and the newline that follows them.
func consumeLine(in input, n int) input {
	if n < len(in.buf) && in.buf[n] == '\n' {
		n++
	}
	return in.advance(n)
}

// keyword matches kw followed by at least one space or tab and returns the
// input past both.
func keyword(in input, kw string) (input, bool) {
	if !in.hasPrefix(kw) {
		return in, false
	}
	rest := in.advance(len(kw))
	n := spaces(rest)
	if n == 0 {
		return in, false
	}
	return rest.advance(n), true
}

// blankLine returns the length of the whitespace-only line at the start of
// b including its newline, or 0 when the line has content. Whitespace that
// runs to the end of input counts as a blank line.
func blankLine(b []byte) int {
	for i, c := range b {
		switch c {
		case ' ', '\t', '\r':
		case '\n':
			return i + 1
		default:
			return 0
		}
	}
	return len(b)
}

// skipBlankLines drops whole blank lines. Indentation of the first line
// with content is left in place so it can still be measured.
func skipBlankLines(in input) input {
	for {
		n := blankLine(in.buf)
		if n == 0 {
			return in
		}
		in = in.advance(n)
	}
}
