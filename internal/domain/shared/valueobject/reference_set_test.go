package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceSet_AddDeduplicates(t *testing.T) {
	set := NewReferenceSet()
	set.Add("M1")
	set.Add("R1")
	set.Add("R1 R2")
	set.Add("R3")

	assert.Equal(t, "M1 R1 R2 R3", set.String())
	assert.Equal(t, 4, set.Len())
}

func TestReferenceSet_FirstSeenOrderPreserved(t *testing.T) {
	set := NewReferenceSet()
	set.Add("B A")
	set.Add("A C")

	assert.Equal(t, []string{"B", "A", "C"}, set.Tokens())
}

func TestReferenceSet_TrimsAndSkipsEmptyTokens(t *testing.T) {
	set := NewReferenceSet()
	set.Add("  R1   R2  ")
	set.Add("")
	set.Add("   ")

	assert.Equal(t, "R1 R2", set.String())
}

func TestReferenceSet_CasePreservingButDuplicateSensitiveToCase(t *testing.T) {
	set := NewReferenceSet()
	set.Add("abc ABC")

	// Different case is a different token; original case is preserved.
	assert.Equal(t, []string{"abc", "ABC"}, set.Tokens())
	assert.True(t, set.Contains("abc"))
	assert.True(t, set.Contains("ABC"))
	assert.False(t, set.Contains("Abc"))
}

func TestReferenceSet_Idempotent(t *testing.T) {
	set := NewReferenceSet()
	set.Add("M1 R1")
	first := set.String()

	set.Add("M1 R1")
	assert.Equal(t, first, set.String())
}

func TestParseReferenceSet_RoundTrip(t *testing.T) {
	set := ParseReferenceSet("M1 R1 R2")
	assert.Equal(t, "M1 R1 R2", set.String())

	empty := ParseReferenceSet("")
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "", empty.String())
}
