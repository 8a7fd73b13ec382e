package parser

// Block splits in into the indented block that belongs to a header whose
// own indentation is width, and the tail that follows it.
//
// The first line of in is the remainder of the header line and is always
// part of the block. Every following line with content and an indentation
// of at most width ends the block; the split happens at the start of that
// line, before its leading whitespace. Blank lines never end a block. When
// no such line exists the whole input is the block.
func Block(in []byte, width int) (block, rest []byte) {
	atIndent := false
	lineStart, indent := 0, 0

	for i, c := range in {
		if !atIndent {
			if c == '\n' {
				atIndent = true
				lineStart, indent = i+1, 0
			}
			continue
		}

		switch c {
		case ' ':
			indent++
		case '\t':
			indent += tabWidth - indent%tabWidth
		case '\r':
		case '\n':
			lineStart, indent = i+1, 0
		default:
			if indent <= width {
				return in[:lineStart], in[lineStart:]
			}
			atIndent = false
		}
	}

	return in, in[len(in):]
}

func block(in input, width int) (body, rest input) {
	b, r := Block(in.buf, width)
	return input{buf: b, off: in.off}, input{buf: r, off: in.off + len(b)}
}
