package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformStyles(t *testing.T) {
	cases := []struct {
		input string
		style CaseStyle
		want  string
	}{
		{"The Logic of Sense by Gilles Deleuze", Snake, "the_logic_of_sense_by_gilles_deleuze"},
		{"The Logic of Sense by Gilles Deleuze", Kebab, "the-logic-of-sense-by-gilles-deleuze"},
		{"The Logic of Sense by Gilles Deleuze", Camel, "theLogicOfSenseByGillesDeleuze"},
		{"The Logic of Sense by Gilles Deleuze", Pascal, "TheLogicOfSenseByGillesDeleuze"},
		{"The Logic of Sense by Gilles Deleuze", Lower, "the logic of sense by gilles deleuze"},
		{"The Logic of Sense by Gilles Deleuze", Title, "The Logic Of Sense By Gilles Deleuze"},
		{"Python Week 04 Args Kwargs Class", Camel, "pythonWeek04ArgsKwargsClass"},
		{"Python Week 04 Args Kwargs Class", Kebab, "python-week-04-args-kwargs-class"},
		{"  --mixed__SEPARATORS \t here-- ", Snake, "mixed_separators_here"},
		{"already_snake_case", Snake, "already_snake_case"},
		{"Chapter One Overview", CaseStyle("shouty"), "chapter_one_overview"},
		{"ÉCOLE normale", Title, "École Normale"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Transform(tc.input, tc.style), "Transform(%q, %s)", tc.input, tc.style)
	}
}

func TestTransformEmptyInput(t *testing.T) {
	for _, style := range Styles {
		assert.Empty(t, Transform("", style))
		assert.Empty(t, Transform(" _-_ ", style))
	}
}

func TestTransformIdempotentForSeparatedStyles(t *testing.T) {
	inputs := []string{
		"quarterly budget review 2024",
		"Meeting-Notes_final draft",
		"x",
	}
	for _, style := range []CaseStyle{Snake, Kebab, Lower, Title} {
		for _, input := range inputs {
			once := Transform(input, style)
			assert.Equal(t, once, Transform(once, style), "style %s input %q", style, input)
		}
	}
}

// Camel and pascal drop word boundaries, so a second pass only stays stable
// for single-word input.
func TestTransformIdempotentSingleWordJoinedStyles(t *testing.T) {
	for _, style := range []CaseStyle{Camel, Pascal} {
		once := Transform("invoice", style)
		assert.Equal(t, once, Transform(once, style))
	}
}

func TestParseCaseStyle(t *testing.T) {
	style, err := ParseCaseStyle(" Kebab ")
	require.NoError(t, err)
	assert.Equal(t, Kebab, style)

	style, err = ParseCaseStyle("")
	require.NoError(t, err)
	assert.Equal(t, Snake, style)

	_, err = ParseCaseStyle("screaming")
	require.Error(t, err)
}
