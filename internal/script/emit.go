package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write re-serializes the script in canonical form.
func (s *Script) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, d := range s.Directives {
		if _, err := bw.WriteString(FormatDirective(d) + "\n"); err != nil {
			return fmt.Errorf("failed to write script: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}

// FormatDirective renders one directive back to its file form.
func FormatDirective(d Directive) string {
	switch d.Kind {
	case KindCommand:
		parts := []string{"!" + string(d.Command)}
		if d.Arg != "" {
			parts = append(parts, d.Arg)
		}
		if d.Expect != "" {
			parts = append(parts, "@"+d.Expect)
		}
		return strings.Join(parts, " ")
	case KindText:
		return "+" + d.Arg
	case KindEnd:
		return "."
	case KindWait:
		return "$" + d.Arg
	case KindNote:
		return "@ " + d.Arg
	}
	return ""
}
