package report

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(parent, category string, endSum int64) MaterialRecord {
	return MaterialRecord{Parent: parent, Category: category, EndSum: decimal.NewFromInt(endSum)}
}

func randomRecords(r *rand.Rand, n int) []MaterialRecord {
	parents := []string{"A", "B", "C", ""}
	cats := []string{"X", "Y", "Z", ""}
	d := func() decimal.Decimal { return decimal.New(r.Int63n(200000)-100000, -2) }
	out := make([]MaterialRecord, n)
	for i := range out {
		out[i] = MaterialRecord{
			Parent:       parents[r.Intn(len(parents))],
			Category:     cats[r.Intn(len(cats))],
			StartAmount:  d(),
			StartSum:     d(),
			IncomeAmount: d(),
			IncomeSum:    d(),
			OutgoAmount:  d(),
			OutgoSum:     d(),
			EndAmount:    d(),
			EndSum:       d(),
		}
	}
	return out
}

func TestAggregate_TwoParentsScenario(t *testing.T) {
	tree := Aggregate([]MaterialRecord{
		rec("A", "X", 100),
		rec("A", "Y", 50),
		rec("B", "X", 25),
	})

	require.Len(t, tree.Parents, 2)
	a, b := tree.Parents[0], tree.Parents[1]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "B", b.Name)
	assert.True(t, a.Totals.EndSum.Equal(decimal.NewFromInt(150)))
	assert.True(t, b.Totals.EndSum.Equal(decimal.NewFromInt(25)))
	assert.True(t, tree.Grand.EndSum.Equal(decimal.NewFromInt(175)))

	require.Len(t, a.Categories, 2)
	assert.Equal(t, "X", a.Categories[0].Name)
	assert.Equal(t, "Y", a.Categories[1].Name)
	assert.Equal(t, "A", a.Categories[0].ParentName)
}

func TestAggregate_MissingParentGoesToUnknown(t *testing.T) {
	r := MaterialRecord{Category: "X", StartSum: decimal.NewFromInt(7), EndSum: decimal.NewFromInt(3)}
	tree := Aggregate([]MaterialRecord{r})

	require.Len(t, tree.Parents, 1)
	p := tree.Parents[0]
	assert.Equal(t, UnknownGroup, p.Name)
	assert.True(t, p.Totals.Equal(TotalsOf(r)))
}

func TestAggregate_BothGroupsMissingStillCounted(t *testing.T) {
	r := MaterialRecord{IncomeAmount: decimal.NewFromInt(5)}
	tree := Aggregate([]MaterialRecord{r, rec("A", "X", 1)})

	require.Len(t, tree.Parents, 2)
	unknown := tree.Parents[0]
	assert.Equal(t, UnknownGroup, unknown.Name)
	require.Len(t, unknown.Categories, 1)
	assert.Equal(t, UnknownGroup, unknown.Categories[0].Name)
	assert.True(t, unknown.Totals.IncomeAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, tree.Grand.IncomeAmount.Equal(decimal.NewFromInt(5)))
}

func TestAggregate_Empty(t *testing.T) {
	tree := Aggregate(nil)
	assert.True(t, tree.Empty())
	assert.True(t, tree.Grand.Equal(Totals{}))
	for _, f := range tree.Grand.Fields() {
		assert.True(t, f.IsZero())
	}
}

func TestAggregate_PreservesItemOrder(t *testing.T) {
	in := []MaterialRecord{
		{Parent: "A", Category: "X", Name: "first"},
		{Parent: "B", Category: "X", Name: "other"},
		{Parent: "A", Category: "X", Name: "second"},
		{Parent: "A", Category: "Y", Name: "y"},
		{Parent: "A", Category: "X", Name: "third"},
	}
	tree := Aggregate(in)

	require.Len(t, tree.Parents, 2)
	x := tree.Parents[0].Categories[0]
	require.Len(t, x.Items, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{x.Items[0].Name, x.Items[1].Name, x.Items[2].Name})
	assert.Equal(t, "Y", tree.Parents[0].Categories[1].Name)
}

func TestAggregate_SameCategoryNameUnderDifferentParents(t *testing.T) {
	tree := Aggregate([]MaterialRecord{rec("A", "X", 1), rec("B", "X", 2)})

	ax := tree.Parents[0].Categories[0]
	bx := tree.Parents[1].Categories[0]
	assert.NotEqual(t, ax.ID(), bx.ID())
	assert.True(t, ax.Totals.EndSum.Equal(decimal.NewFromInt(1)))
	assert.True(t, bx.Totals.EndSum.Equal(decimal.NewFromInt(2)))
}

func TestAggregate_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		records := randomRecords(r, r.Intn(60))
		tree := Aggregate(records)

		var topLevel Totals
		count := 0
		for _, p := range tree.Parents {
			var children Totals
			for _, c := range p.Categories {
				assert.True(t, c.Totals.Equal(Sum(c.Items)), "category totals")
				children = children.Add(c.Totals)
				count += len(c.Items)
			}
			assert.True(t, p.Totals.Equal(children), "parent totals == sum of categories")
			topLevel = topLevel.Add(p.Totals)
		}
		assert.Equal(t, len(records), count, "no record dropped or duplicated")
		assert.True(t, tree.Grand.Equal(topLevel), "grand == sum of parents")
		assert.True(t, tree.Grand.Equal(Sum(records)))
	}
}

func TestSum_Additive(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		records := randomRecords(r, r.Intn(40))
		cut := 0
		if len(records) > 0 {
			cut = r.Intn(len(records) + 1)
		}
		whole := Sum(records)
		parts := Sum(records[:cut]).Add(Sum(records[cut:]))
		assert.True(t, whole.Equal(parts))
	}
}

func TestSum_ExactDecimals(t *testing.T) {
	records := []MaterialRecord{
		{StartSum: decimal.RequireFromString("0.1")},
		{StartSum: decimal.RequireFromString("0.2")},
	}
	assert.Equal(t, "0.3", Sum(records).StartSum.String())
}

func TestTree_Find(t *testing.T) {
	tree := Aggregate([]MaterialRecord{rec("A", "X", 1)})

	n, ok := tree.Find(ParentID("A"))
	require.True(t, ok)
	assert.Equal(t, KindParent, n.Kind())

	n, ok = tree.Find(CategoryID("A", "X"))
	require.True(t, ok)
	assert.Equal(t, KindCategory, n.Kind())
	assert.Empty(t, n.Children())

	_, ok = tree.Find(CategoryID("B", "X"))
	assert.False(t, ok)
}

func TestNodeID_SlashInNames(t *testing.T) {
	assert.NotEqual(t, CategoryID("A/B", "C"), CategoryID("A", "B/C"))
}
