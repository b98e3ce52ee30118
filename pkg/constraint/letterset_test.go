package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterSet(t *testing.T) {
	s := NewLetterSet('Q', 'A', 'Q')
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains('A'))
	assert.False(t, s.Contains('B'))
	assert.Equal(t, []rune{'A', 'Q'}, s.Letters())
	assert.Equal(t, "{A, Q}", s.String())

	// runes past the initial capacity
	s.Add('É')
	s.Add('!')
	assert.True(t, s.Contains('É'))
	assert.Equal(t, []rune{'!', 'A', 'Q', 'É'}, s.Letters())

	assert.True(t, s.ContainsAny("XXQ"))
	assert.False(t, s.ContainsAny("XYZ"))
}

func TestLetterSetZeroValue(t *testing.T) {
	var s LetterSet
	assert.True(t, s.Empty())
	assert.False(t, s.Contains('A'))
	assert.Nil(t, s.Letters())
	assert.False(t, s.ContainsAny("ABC"))

	s.Add('A')
	assert.True(t, s.Contains('A'))
}

func TestLetterSetUnion(t *testing.T) {
	a := NewLetterSet('A', 'B')
	b := NewLetterSet('B', 'C')
	u := a.Union(b)
	assert.Equal(t, "A,B,C", u.Join(","))

	// operands are untouched
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestLetterSetClone(t *testing.T) {
	a := NewLetterSet('A', 'B')
	c := a.Clone()
	c.Add('C')
	assert.Equal(t, "A,B", a.Join(","))
	assert.Equal(t, "A,B,C", c.Join(","))

	var zero LetterSet
	z := zero.Clone()
	z.Add('Z')
	assert.True(t, zero.Empty())
	assert.Equal(t, []rune{'Z'}, z.Letters())
}

func TestParseExclusions(t *testing.T) {
	testCases := []struct {
		input  string
		policy ExclusionPolicy
		want   string
	}{
		{"", ExclusionAccept, ""},
		{"bt", ExclusionAccept, "B,T"},
		{"b t  b", ExclusionAccept, "B,T"},
		{"b,t", ExclusionAccept, ",,B,T"},
		{"b,t", ExclusionIgnore, "B,T"},
		{"x1y", ExclusionIgnore, "X,Y"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.policy)+"/"+tc.input, func(t *testing.T) {
			set, err := ParseExclusions(tc.input, tc.policy)
			require.NoError(t, err)
			assert.Equal(t, tc.want, set.Join(","))
		})
	}
}

func TestParseExclusionsReject(t *testing.T) {
	_, err := ParseExclusions("ab,c", ExclusionReject)
	var ee *ExclusionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ',', ee.Char)

	set, err := ParseExclusions("a b c", ExclusionReject)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestParseExclusionPolicy(t *testing.T) {
	for in, want := range map[string]ExclusionPolicy{
		"":        ExclusionAccept,
		"ACCEPT":  ExclusionAccept,
		"ignore":  ExclusionIgnore,
		"reject ": ExclusionReject,
	} {
		got, err := ParseExclusionPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseExclusionPolicy("strict")
	assert.Error(t, err)
}
