package script

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daikw/sdlocale/internal/symbols"
)

const sampleScript = `# basic playback test
@ speech should start, pause briefly, then resume

!speak
+This is the first sentence of the test.
+And this is the second one.
.
$2
!pause @audio-pauses
$1
!resume self @audio-resumes
$3
!stop
!quit
`

func TestParse_SampleScript(t *testing.T) {
	s, err := Parse(strings.NewReader(sampleScript), "basic.test")
	require.NoError(t, err)

	// One directive per recognized line, in file order; comments and blank
	// lines are not counted.
	require.Len(t, s.Directives, 12)

	assert.Equal(t, KindNote, s.Directives[0].Kind)
	assert.Equal(t, "speech should start, pause briefly, then resume", s.Directives[0].Arg)

	assert.Equal(t, CmdSpeak, s.Directives[1].Command)
	assert.Equal(t, KindText, s.Directives[2].Kind)
	assert.Equal(t, "This is the first sentence of the test.", s.Directives[2].Arg)
	assert.Equal(t, KindEnd, s.Directives[4].Kind)

	wait := s.Directives[5]
	assert.Equal(t, KindWait, wait.Kind)
	assert.Equal(t, 2, wait.WaitSeconds())

	pause := s.Directives[6]
	assert.Equal(t, CmdPause, pause.Command)
	assert.Equal(t, "audio-pauses", pause.Expect)

	resume := s.Directives[8]
	assert.Equal(t, CmdResume, resume.Command)
	assert.Equal(t, "self", resume.Arg)
	assert.Equal(t, "audio-resumes", resume.Expect)

	assert.Equal(t, CmdQuit, s.Directives[11].Command)

	// Line numbers point into the original file.
	assert.Equal(t, 2, s.Directives[0].Line)
	assert.Equal(t, 4, s.Directives[1].Line)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		msg   string
	}{
		{
			name:  "unknown command",
			input: "!shout\n",
			line:  1,
			msg:   "unknown command",
		},
		{
			name:  "text outside speak block",
			input: "+hello\n",
			line:  1,
			msg:   "outside of a speak block",
		},
		{
			name:  "terminator without block",
			input: ".\n",
			line:  1,
			msg:   "without an open speak block",
		},
		{
			name:  "unterminated block",
			input: "!speak\n+hello\n",
			line:  2,
			msg:   "unterminated speak block",
		},
		{
			name:  "command inside speak block",
			input: "!speak\n!stop\n",
			line:  2,
			msg:   "not terminated",
		},
		{
			name:  "non-numeric wait",
			input: "$soon\n",
			line:  1,
			msg:   "positive number of seconds",
		},
		{
			name:  "negative wait",
			input: "$-3\n",
			line:  1,
			msg:   "positive number of seconds",
		},
		{
			name:  "invalid target",
			input: "!stop other\n",
			line:  1,
			msg:   "invalid target",
		},
		{
			name:  "speak with argument",
			input: "!speak now\n",
			line:  1,
			msg:   "takes no arguments",
		},
		{
			name:  "unrecognized sigil",
			input: "%boom\n",
			line:  1,
			msg:   "unrecognized directive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "bad.test")
			require.Error(t, err)
			var perr *symbols.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			assert.Contains(t, perr.Msg, tt.msg)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	s, err := Parse(strings.NewReader(sampleScript), "basic.test")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))

	again, err := Parse(&buf, "again.test")
	require.NoError(t, err)
	require.Len(t, again.Directives, len(s.Directives))
	for i, d := range s.Directives {
		got := again.Directives[i]
		assert.Equal(t, d.Kind, got.Kind)
		assert.Equal(t, d.Command, got.Command)
		assert.Equal(t, d.Arg, got.Arg)
		assert.Equal(t, d.Expect, got.Expect)
	}
}
