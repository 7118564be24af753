// Package script parses plain-text test scripts for the speech-dispatcher
// test harness: an ordered sequence of control directives, utterance text
// blocks and wait/annotation lines, executed against a single SELF session.
package script

import "fmt"

// Kind classifies a directive line by its sigil.
type Kind string

const (
	// KindCommand is a "!" control command line.
	KindCommand Kind = "command"
	// KindText is a "+" utterance text line inside a speak block.
	KindText Kind = "text"
	// KindEnd is the "." line closing a speak block.
	KindEnd Kind = "end"
	// KindWait is a "$" wait line with a duration in seconds.
	KindWait Kind = "wait"
	// KindNote is an "@" annotation describing expected audible behavior.
	KindNote Kind = "note"
)

// Command tokens accepted after the "!" sigil.
type Command string

const (
	CmdSpeak  Command = "speak"
	CmdStop   Command = "stop"
	CmdPause  Command = "pause"
	CmdResume Command = "resume"
	CmdQuit   Command = "quit"
)

// ParseCommand validates a control command token.
func ParseCommand(s string) (Command, error) {
	switch Command(s) {
	case CmdSpeak, CmdStop, CmdPause, CmdResume, CmdQuit:
		return Command(s), nil
	}
	return "", fmt.Errorf("unknown command %q", s)
}

// Directive is one recognized line of a test script.
type Directive struct {
	Line    int     // 1-based line number in the source file
	Kind    Kind
	Command Command // set for KindCommand
	Arg     string  // command argument, wait seconds, text or note content
	Expect  string  // expected-event marker from a trailing "@event" token
}

// Script is the ordered directive list of one test-script file. Order is
// significant: the harness executes directives in file order.
type Script struct {
	Name       string
	Directives []Directive
}

// WaitSeconds returns the wait duration of a KindWait directive.
func (d Directive) WaitSeconds() int {
	if d.Kind != KindWait {
		return 0
	}
	var n int
	_, _ = fmt.Sscanf(d.Arg, "%d", &n)
	return n
}
