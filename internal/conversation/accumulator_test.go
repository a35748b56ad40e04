package conversation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/llm"
)

func products() []catalog.Item {
	return []catalog.Item{
		{ID: catalog.NewID("1"), Name: "Foaming Cleanser", Brand: "CeraVe", Category: "cleanser", Description: "Removes oil"},
		{ID: catalog.NewID("2"), Name: "Revitalift Serum", Brand: "L'Oréal Paris", Category: "skincare", Description: "Plumps skin"},
	}
}

func TestNewStartsWithSystemTurn(t *testing.T) {
	a := New("be helpful", "")
	turns := a.Snapshot()
	require.Len(t, turns, 1)
	assert.Equal(t, llm.RoleSystem, turns[0].Role)
	assert.Equal(t, "be helpful", turns[0].Content)
}

func TestAppendUserRejectsBlank(t *testing.T) {
	a := New("sys", "")
	for _, text := range []string{"", "   ", "\n\t"} {
		assert.ErrorIs(t, a.AppendUser(text), ErrInvalidInput)
	}
	assert.Equal(t, 1, a.Len())
}

func TestAppendUserKeepsLiteralText(t *testing.T) {
	a := New("sys", "")
	require.NoError(t, a.AppendUser("  hi there  "))
	assert.Equal(t, "  hi there  ", a.Last().Content)
	assert.Equal(t, llm.RoleUser, a.Last().Role)
}

func TestAppendAssistantGrowsByOneAndKeepsHistory(t *testing.T) {
	a := New("sys", "")
	require.NoError(t, a.AppendUser("hello"))
	before := a.Snapshot()

	a.AppendAssistant("## **Hi!**")
	after := a.Snapshot()

	require.Len(t, after, len(before)+1)
	assert.Equal(t, before, after[:len(before)])
	assert.Equal(t, Turn{Role: llm.RoleAssistant, Content: "## **Hi!**"}, after[len(after)-1])
}

func TestSnapshotIsACopy(t *testing.T) {
	a := New("sys", "")
	snap := a.Snapshot()
	snap[0].Content = "mutated"
	assert.Equal(t, "sys", a.Snapshot()[0].Content)
}

func TestAppendRoutineRequestDetailed(t *testing.T) {
	a := New("sys", VerbosityDetailed)
	require.NoError(t, a.AppendRoutineRequest(products()))

	last := a.Last()
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.Contains(t, last.Content, "1. **Foaming Cleanser** by CeraVe\n   - Category: cleanser\n   - Description: Removes oil")
	assert.Contains(t, last.Content, "2. **Revitalift Serum** by L'Oréal Paris")
	assert.Contains(t, last.Content, "Quick Highlights")
	assert.Less(t, strings.Index(last.Content, "Foaming"), strings.Index(last.Content, "Revitalift"))
}

func TestAppendRoutineRequestBrief(t *testing.T) {
	a := New("sys", VerbosityBrief)
	require.NoError(t, a.AppendRoutineRequest(products()))
	assert.Equal(t, "Create a beauty routine with these products: Foaming Cleanser, Revitalift Serum", a.Last().Content)
}

func TestAppendRoutineRequestEmpty(t *testing.T) {
	a := New("sys", "")
	assert.ErrorIs(t, a.AppendRoutineRequest(nil), ErrNoProducts)
	assert.Equal(t, 1, a.Len())
}
