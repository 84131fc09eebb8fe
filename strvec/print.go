package strvec

import (
	"io"
	"strconv"
	"strings"
)

// Print writes the elements to w separated by sep. Nothing is written for an
// empty vector; no trailing separator or newline is appended. Elements are
// written under the Get view.
func (sv *StrVec) Print(w io.Writer, sep string) error {
	for i := 0; i < sv.size; i++ {
		if i > 0 {
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, sv.Get(i)); err != nil {
			return err
		}
	}
	return nil
}

// String renders the vector as a quoted, bracketed list for debugging.
func (sv *StrVec) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < sv.size; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(sv.Get(i)))
	}
	b.WriteByte(']')
	return b.String()
}
