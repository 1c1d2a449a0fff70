// Package print renders report lines as indented text, one option per line.
package print

import (
	"fmt"
	"io"

	"github.com/maxsalles/mx/modules/report"
)

// Encoder writes report lines for humans.
type Encoder struct {
	w io.Writer
}

var _ report.Encoder = (*Encoder)(nil)

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode prints the line header followed by the options, keys sorted.
func (e *Encoder) Encode(line report.Line) error {
	if _, err := fmt.Fprintf(e.w, "%s %s %s\n", line.File, line.Element, line.Aspect); err != nil {
		return err
	}

	if line.Options.Len() == 0 {
		_, err := fmt.Fprintln(e.w, "      (no options)")
		return err
	}

	// Keys are sorted for consistent output
	for _, k := range line.Options.Keys() {
		v, _ := line.Options.Get(k)
		if _, err := fmt.Fprintf(e.w, "      %s = %s\n", k, v); err != nil {
			return err
		}
	}
	return nil
}
