package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInclusion(t *testing.T) {
	tests := []struct {
		value   string
		kind    Kind
		message string
	}{
		{value: "", kind: KindError, message: "Cannot have empty or blank regex."},
		{value: "   ", kind: KindError, message: "Cannot have empty or blank regex."},
		{value: MatchAll, kind: KindWarning, message: "You should remove this trait instead of matching all paths"},
		{value: `src/.*\.go`, kind: KindOK},
	}

	for _, tt := range tests {
		v := CheckInclusion(tt.value)
		assert.Equal(t, tt.kind, v.Kind, "value %q", tt.value)
		assert.Equal(t, tt.message, v.Message, "value %q", tt.value)
	}

	v := CheckInclusion("src/(")
	assert.Equal(t, KindError, v.Kind)
	assert.Contains(t, v.Message, "Invalid Regex : ")
	assert.True(t, v.Blocking())
}

func TestCheckExclusion(t *testing.T) {
	assert.Equal(t, KindOK, CheckExclusion("").Kind)
	assert.Equal(t, KindOK, CheckExclusion(`docs/.*`).Kind)
	assert.Equal(t, KindWarning, CheckExclusion("  ").Kind)

	v := CheckExclusion(MatchAll)
	assert.Equal(t, KindWarning, v.Kind)
	assert.False(t, v.Blocking())

	v = CheckExclusion("(?=x)")
	assert.Equal(t, KindError, v.Kind)
}

func TestCheck(t *testing.T) {
	results := Check(MatchAll, MatchAll)
	assert.Equal(t, KindWarning, results["inclusion"].Kind)
	assert.Equal(t, KindWarning, results["exclusion"].Kind)
}

func TestCheckAgreesWithBuild(t *testing.T) {
	patterns := []string{
		`src/.*\.go`,
		`\Qsrc/a+b.go`,
		`\Qdocs/`,
		`\Qa|b\E|c`,
		`(?-i:Makefile)`,
		`src/(`,
		`[a-`,
		`(?=x)`,
		`x{2,1}`,
	}

	for _, p := range patterns {
		_, incErr := Build(p, "")
		assert.Equal(t, incErr != nil, CheckInclusion(p).Blocking(), "inclusion %q", p)

		_, excErr := Build(MatchAll, p)
		assert.Equal(t, excErr != nil, CheckExclusion(p).Blocking(), "exclusion %q", p)
	}

	v := CheckInclusion("src/(")
	require.True(t, v.Blocking())
	assert.Equal(t, "Invalid Regex : error parsing regexp: missing closing ): `src/(`", v.Message)
}
