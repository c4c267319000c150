package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleLike(t *testing.T) {
	likes, liked := ToggleLike(nil, "u1")
	assert.True(t, liked)
	assert.Equal(t, []string{"u1"}, likes)

	likes, liked = ToggleLike(likes, "u1")
	assert.False(t, liked)
	assert.Empty(t, likes)
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	sets := [][]string{
		{},
		{"a"},
		{"a", "b", "c"},
		{"b", "u", "c"},
	}
	for _, s := range sets {
		for _, u := range []string{"a", "u", "z"} {
			once, _ := ToggleLike(s, u)
			twice, _ := ToggleLike(once, u)
			assert.ElementsMatch(t, s, twice, "set=%v user=%s", s, u)
		}
	}
}

func TestToggleLikeNeverDuplicates(t *testing.T) {
	likes := []string{"a", "b"}
	for i := 0; i < 7; i++ {
		likes, _ = ToggleLike(likes, "b")
		count := 0
		for _, id := range likes {
			if id == "b" {
				count++
			}
		}
		assert.LessOrEqual(t, count, 1)
	}
}

func TestToggleLikeDoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b"}
	_, _ = ToggleLike(in, "a")
	assert.Equal(t, []string{"a", "b"}, in)
}

func TestToggleLikeCollapsesCorruptDuplicates(t *testing.T) {
	likes, liked := ToggleLike([]string{"a", "x", "a"}, "a")
	assert.False(t, liked)
	assert.Equal(t, []string{"x"}, likes)
	assert.False(t, HasLiked(likes, "a"))
	assert.True(t, HasLiked(likes, "x"))
}
