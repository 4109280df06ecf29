// AngelaMos | 2026
// element_test.go

package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGapIsSignedAndRecomputed(t *testing.T) {
	r := Rating{Element: ElementWork, Current: 7, Desired: 9}
	assert.Equal(t, 2.0, r.Gap())

	over := Rating{Element: ElementPlay, Current: 9, Desired: 5}
	assert.Equal(t, -4.0, over.Gap())
}

func TestSummarizeBiggestGap(t *testing.T) {
	ratings := []Rating{
		{Element: ElementSleep, Current: 5, Desired: 6},
		{Element: ElementHealth, Current: 2, Desired: 8},
		{Element: ElementWork, Current: 7, Desired: 9},
	}

	summary := Summarize(ratings)
	assert.Equal(t, ElementHealth, summary.BiggestGapElement)
	assert.Equal(t, 6.0, summary.BiggestGapValue)
}

func TestSummarizeTieBreaksByCanonicalOrder(t *testing.T) {
	// Work and Sleep both have a gap of 2; Work is first in canonical
	// order and must win regardless of input order.
	ratings := []Rating{
		{Element: ElementSleep, Current: 5, Desired: 7},
		{Element: ElementWork, Current: 7, Desired: 9},
	}

	for i := 0; i < 3; i++ {
		summary := Summarize(ratings)
		assert.Equal(t, ElementWork, summary.BiggestGapElement)
		assert.Equal(t, 2.0, summary.BiggestGapValue)
	}

	reversed := []Rating{ratings[1], ratings[0]}
	assert.Equal(t, Summarize(ratings), Summarize(reversed))
}

func TestSummarizeEmptyInputReturnsSentinel(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, Element(""), summary.BiggestGapElement)
	assert.Zero(t, summary.BiggestGapValue)
	assert.Empty(t, summary.ElementsNeedingAttention)
}

func TestSummarizeAttentionListInCanonicalOrder(t *testing.T) {
	ratings := []Rating{
		{Element: ElementGrowth, Current: 3, Desired: 8},
		{Element: ElementWork, Current: 6, Desired: 9},
		{Element: ElementPlay, Current: 7, Desired: 8},
	}

	summary := Summarize(ratings)
	assert.Equal(t,
		[]Element{ElementWork, ElementGrowth},
		summary.ElementsNeedingAttention,
	)
}

func TestElementValidity(t *testing.T) {
	for _, e := range CanonicalOrder {
		assert.True(t, e.IsValid(), "element %q", e)
	}
	assert.False(t, Element("career").IsValid())
}
