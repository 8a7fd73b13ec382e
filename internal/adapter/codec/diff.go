package codec

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Diff returns a unified diff from current to updated, or an empty string
// when they are equal. name labels both sides.
func Diff(name string, current, updated []byte) string {
	a, b := string(current), string(updated)
	if a == b {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), a, b)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (parsed)", a, edits))
}
