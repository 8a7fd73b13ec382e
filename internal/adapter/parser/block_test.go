package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlock(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		width     int
		wantBlock string
		wantRest  string
	}{
		{
			name:      "deeper lines then a line at the reference indent",
			input:     "\n   a\n   b\n   c\n  next\n",
			width:     2,
			wantBlock: "\n   a\n   b\n   c\n",
			wantRest:  "  next\n",
		},
		{
			name:      "a shallower line also ends the block",
			input:     ":\n        body\n    sibling\n",
			width:     4,
			wantBlock: ":\n        body\n",
			wantRest:  "    sibling\n",
		},
		{
			name:      "blank lines do not end the block",
			input:     "\n    a\n\n  \n    b\nend",
			width:     0,
			wantBlock: "\n    a\n\n  \n    b\n",
			wantRest:  "end",
		},
		{
			name:      "blank lines before the ending line stay in the block",
			input:     "\n    a\n\n\nend\n",
			width:     0,
			wantBlock: "\n    a\n\n\n",
			wantRest:  "end\n",
		},
		{
			name:      "input exhausted",
			input:     "\n    a\n    b",
			width:     0,
			wantBlock: "\n    a\n    b",
			wantRest:  "",
		},
		{
			name:      "empty body",
			input:     "\nnext\n",
			width:     0,
			wantBlock: "\n",
			wantRest:  "next\n",
		},
		{
			name:      "remainder of the header line is never checked",
			input:     " pass\ndef g(): pass\n",
			width:     0,
			wantBlock: " pass\n",
			wantRest:  "def g(): pass\n",
		},
		{
			name:      "tabs count to the next multiple of eight",
			input:     "\n\tbody\n    next\n",
			width:     4,
			wantBlock: "\n\tbody\n",
			wantRest:  "    next\n",
		},
		{
			name:      "carriage returns are transparent",
			input:     "\r\n    a\r\n\r\nb\r\n",
			width:     0,
			wantBlock: "\r\n    a\r\n\r\n",
			wantRest:  "b\r\n",
		},
		{
			name:      "empty input",
			input:     "",
			width:     0,
			wantBlock: "",
			wantRest:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, rest := Block([]byte(tt.input), tt.width)
			assert.Equal(t, tt.wantBlock, string(block))
			assert.Equal(t, tt.wantRest, string(rest))
		})
	}
}

func TestBlockBoundary(t *testing.T) {
	for width := 0; width < 6; width++ {
		for k := 1; k < 5; k++ {
			inner := strings.Repeat(" ", width+1) + "x\n"
			outer := strings.Repeat(" ", width) + "y\n"
			src := "\n" + strings.Repeat(inner, k) + outer

			block, rest := Block([]byte(src), width)
			assert.Equal(t, "\n"+strings.Repeat(inner, k), string(block), "width=%d k=%d", width, k)
			assert.Equal(t, outer, string(rest), "width=%d k=%d", width, k)
		}
	}
}
