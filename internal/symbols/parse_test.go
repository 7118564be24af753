package symbols

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDict = `# generated for tests
complexSymbols:
# identifier	regexp
. sentence ending	(?<=[^\s.])\.(?=["')\s]|$)
in-word '	(?<=[^\W_])[']

symbols:
!	exclamation	all	norep
. sentence ending	point	# sentence full stop
decimal point		# virgulă pentru zecimale
\#	number sign	some
`

func TestParse_Sections(t *testing.T) {
	dict, err := Parse(strings.NewReader(sampleDict), "sample.dic")
	require.NoError(t, err)

	require.Len(t, dict.ComplexRules, 2)
	assert.Equal(t, ". sentence ending", dict.ComplexRules[0].Identifier)
	assert.Equal(t, `(?<=[^\s.])\.(?=["')\s]|$)`, dict.ComplexRules[0].Pattern)

	require.Len(t, dict.Rules, 4)

	excl, ok := dict.Lookup("!")
	require.True(t, ok)
	assert.Equal(t, "exclamation", excl.Replacement)
	assert.Equal(t, LevelAll, excl.Level)
	assert.Equal(t, RepeatNone, excl.Repeat)

	hash, ok := dict.Lookup("#")
	require.True(t, ok)
	assert.Equal(t, "number sign", hash.Replacement)
	assert.Equal(t, LevelSome, hash.Level)
}

func TestParse_EmptyReplacementWithDisplayName(t *testing.T) {
	dict, err := Parse(strings.NewReader("symbols:\ndecimal point\t\t# virgulă pentru zecimale\n"), "ro.dic")
	require.NoError(t, err)

	r, ok := dict.Lookup("decimal point")
	require.True(t, ok)
	assert.Empty(t, r.Replacement)
	assert.Equal(t, "virgulă pentru zecimale", r.DisplayName)
}

func TestParse_BOMAndCRLF(t *testing.T) {
	dict, err := Parse(strings.NewReader("\ufeffsymbols:\r\n!\texclamation\tall\r\n"), "bom.dic")
	require.NoError(t, err)

	r, ok := dict.Lookup("!")
	require.True(t, ok)
	assert.Equal(t, "exclamation", r.Replacement)
}

func TestParse_MultiByteKeysPreserved(t *testing.T) {
	dict, err := Parse(strings.NewReader("symbols:\n„\tghilimele jos\tmost\n😀\tfață zâmbitoare\tnone\n"), "ro.dic")
	require.NoError(t, err)

	r, ok := dict.Lookup("„")
	require.True(t, ok)
	assert.Equal(t, "ghilimele jos", r.Replacement)

	r, ok = dict.Lookup("😀")
	require.True(t, ok)
	assert.Equal(t, "față zâmbitoare", r.Replacement)
}

func TestParse_LevelEnum(t *testing.T) {
	for _, tag := range []string{"none", "some", "most", "all"} {
		t.Run(tag, func(t *testing.T) {
			dict, err := Parse(strings.NewReader("symbols:\n!\tbang\t"+tag+"\n"), "t.dic")
			require.NoError(t, err)
			r, _ := dict.Lookup("!")
			assert.Equal(t, VerbosityLevel(tag), r.Level)
		})
	}

	_, err := Parse(strings.NewReader("symbols:\n!\tbang\tloud\n"), "t.dic")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, perr.Error(), "t.dic:2")
}

func TestParse_RepeatEnum(t *testing.T) {
	for _, tag := range []string{"always", "norep"} {
		t.Run(tag, func(t *testing.T) {
			dict, err := Parse(strings.NewReader("symbols:\n!\tbang\tall\t"+tag+"\n"), "t.dic")
			require.NoError(t, err)
			r, _ := dict.Lookup("!")
			assert.Equal(t, RepeatPolicy(tag), r.Repeat)
		})
	}

	_, err := Parse(strings.NewReader("symbols:\n!\tbang\tall\tsometimes\n"), "t.dic")
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		msg   string
	}{
		{
			name:  "rule before any section",
			input: "!\texclamation\n",
			line:  1,
			msg:   "outside of a section",
		},
		{
			name:  "missing replacement field",
			input: "symbols:\n!\n",
			line:  2,
			msg:   "at least a key and a replacement",
		},
		{
			name:  "too many fields",
			input: "symbols:\n!\tbang\tall\tnorep\textra\n",
			line:  2,
			msg:   "too many fields",
		},
		{
			name:  "duplicate symbol",
			input: "symbols:\n!\tbang\n!\texclamation\n",
			line:  3,
			msg:   "duplicate symbol",
		},
		{
			name:  "duplicate complex identifier",
			input: "complexSymbols:\ndates\t\\d+/\\d+\ndates\t\\d+-\\d+\n",
			line:  3,
			msg:   "duplicate complex symbol",
		},
		{
			name:  "complex rule without pattern",
			input: "complexSymbols:\ndates\n",
			line:  2,
			msg:   "identifier and pattern",
		},
		{
			name:  "complex rule with empty pattern",
			input: "complexSymbols:\ndates\t\n",
			line:  2,
			msg:   "empty pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "bad.dic")
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			assert.Contains(t, perr.Msg, tt.msg)
		})
	}
}

func TestDictionary_Merge(t *testing.T) {
	base, err := Parse(strings.NewReader("symbols:\n!\texclamation\tall\n?\tquestion\tall\n"), "base.dic")
	require.NoError(t, err)
	overlay, err := Parse(strings.NewReader("symbols:\n!\tsemn de exclamare\tall\n"), "ro.dic")
	require.NoError(t, err)

	base.Merge(overlay)

	r, ok := base.Lookup("!")
	require.True(t, ok)
	assert.Equal(t, "semn de exclamare", r.Replacement)

	r, ok = base.Lookup("?")
	require.True(t, ok)
	assert.Equal(t, "question", r.Replacement)
	assert.Len(t, base.Rules, 2)
}

func TestAnnouncementText(t *testing.T) {
	assert.Equal(t, "point", AnnouncementText(Rule{Replacement: "point", DisplayName: "full stop"}))
	assert.Equal(t, "virgulă pentru zecimale", AnnouncementText(Rule{DisplayName: "virgulă pentru zecimale"}))
}
