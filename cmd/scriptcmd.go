package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/daikw/sdlocale/internal/script"
)

func handleScriptShow(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: sdlocale script show <file>")
	}

	s, err := script.ParseFile(c.Args().Get(0))
	if err != nil {
		return err
	}

	for _, d := range s.Directives {
		line := fmt.Sprintf("%4d  %-7s", d.Line, d.Kind)
		switch d.Kind {
		case script.KindCommand:
			line += "  " + string(d.Command)
			if d.Arg != "" {
				line += " " + d.Arg
			}
			if d.Expect != "" {
				line += fmt.Sprintf("  (expect: %s)", d.Expect)
			}
		case script.KindWait:
			line += fmt.Sprintf("  %ss", d.Arg)
		case script.KindText, script.KindNote:
			line += "  " + d.Arg
		}
		fmt.Println(line)
	}
	fmt.Printf("%d directives\n", len(s.Directives))
	return nil
}
