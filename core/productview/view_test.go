package productview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/backoffice/core/productview"
)

type product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	CategoryID  int
}

func newView(opts ...productview.Option) *productview.View[product] {
	return productview.New(productview.Fields[product]{
		Name:        func(p product) string { return p.Name },
		Description: func(p product) string { return p.Description },
		Price:       func(p product) float64 { return p.Price },
		CategoryID:  func(p product) int { return p.CategoryID },
	}, opts...)
}

func names(list []product) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Name
	}
	return out
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

var catalog = []product{
	{ID: 1, Name: "Aspirin", Description: "pain relief tablets", Price: 5, CategoryID: 1},
	{ID: 2, Name: "Bandage", Description: "sterile first aid wrap", Price: 3, CategoryID: 2},
	{ID: 3, Name: "Cough Syrup", Description: "for dry cough", Price: 12, CategoryID: 3},
	{ID: 4, Name: "Ibuprofen", Description: "pain and fever relief", Price: 8, CategoryID: 1},
}

func TestSetProducts_InitializesProjection(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)

	assert.Len(t, v.All(), 4)
	// No ordering is applied before an explicit sort.
	assert.Equal(t, names(catalog), names(v.Filtered()))
}

func TestCategoryFilter(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)
	v.SetCategoryFilter(intPtr(1))

	filtered := v.Filtered()
	require.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.Equal(t, 1, p.CategoryID)
	}

	v.SetCategoryFilter(nil)
	assert.Len(t, v.Filtered(), 4)
}

func TestSearchQuery_MatchesNameOrDescription(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)

	v.SetSearchQuery("PAIN") // case-insensitive, description match
	assert.ElementsMatch(t, []string{"Aspirin", "Ibuprofen"}, names(v.Filtered()))

	v.SetSearchQuery("bandage") // name match
	assert.Equal(t, []string{"Bandage"}, names(v.Filtered()))

	v.SetSearchQuery("no such thing")
	assert.Empty(t, v.Filtered())
}

func TestPriceRange_InclusiveBounds(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)

	v.SetPriceRange(floatPtr(5), floatPtr(8))
	assert.ElementsMatch(t, []string{"Aspirin", "Ibuprofen"}, names(v.Filtered()))

	v.SetPriceRange(nil, floatPtr(3))
	assert.Equal(t, []string{"Bandage"}, names(v.Filtered()))
}

func TestFiltersAreANDed(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)

	v.SetCategoryFilter(intPtr(1))
	v.SetSearchQuery("relief")
	v.SetPriceRange(floatPtr(6), nil)

	assert.Equal(t, []string{"Ibuprofen"}, names(v.Filtered()))
}

func TestApplyFilters_Idempotent(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)
	v.SetSearchQuery("pain")

	v.ApplyFilters()
	first := v.Filtered()
	v.ApplyFilters()
	assert.Equal(t, first, v.Filtered())
}

func TestResetFilters_BypassesPredicate(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)
	v.SetSearchQuery("no match at all")
	require.Empty(t, v.Filtered())

	v.ResetFilters()
	assert.Equal(t, names(v.All()), names(v.Filtered()), "reset restores the source list order")
	assert.Equal(t, productview.Filters{}, v.CurrentFilters())
}

func TestApplyFilters_PreservesSourceOrder(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts([]product{
		{ID: 1, Name: "Zinc", Price: 7},
		{ID: 2, Name: "Aspirin", Price: 5},
	})

	v.ApplyFilters()
	assert.Equal(t, []string{"Zinc", "Aspirin"}, names(v.Filtered()))

	v.ResetFilters()
	v.ApplyFilters()
	assert.Equal(t, []string{"Zinc", "Aspirin"}, names(v.Filtered()),
		"recompute must not impose an ordering before an explicit sort")
}

func TestSortProducts(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts([]product{
		{ID: 1, Name: "B", Price: 10},
		{ID: 2, Name: "A", Price: 5},
	})

	v.SortProducts(productview.SortPriceAsc)
	got := v.Filtered()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, 5.0, got[0].Price)
	assert.Equal(t, "B", got[1].Name)

	v.SortProducts(productview.SortPriceDesc)
	assert.Equal(t, []string{"B", "A"}, names(v.Filtered()))

	v.SortProducts(productview.SortNameDesc)
	assert.Equal(t, []string{"B", "A"}, names(v.Filtered()))

	v.SortProducts(productview.SortNameAsc)
	assert.Equal(t, []string{"A", "B"}, names(v.Filtered()))
}

func TestSort_StableForEqualKeys(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts([]product{
		{ID: 1, Name: "Zinc", Price: 7},
		{ID: 2, Name: "Iron", Price: 7},
		{ID: 3, Name: "Calcium", Price: 7},
	})

	v.SortProducts(productview.SortPriceAsc)
	got := v.Filtered()
	require.Len(t, got, 3)
	// Equal prices keep their prior (source) relative order.
	assert.Equal(t, []string{"Zinc", "Iron", "Calcium"}, names(got))
}

func TestManualRecompute_BatchesCriteria(t *testing.T) {
	t.Parallel()

	v := newView(productview.WithManualRecompute())
	v.SetProducts(catalog)

	v.SetSearchQuery("pain")
	assert.Len(t, v.Filtered(), 4, "manual mode: setter must not recompute")

	v.ApplyFilters()
	assert.ElementsMatch(t, []string{"Aspirin", "Ibuprofen"}, names(v.Filtered()))

	// Replacing the source resets the projection without reapplying.
	v.SetProducts(catalog)
	assert.Len(t, v.Filtered(), 4)
}

func TestAutoMode_SetProductsReappliesActiveFilters(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)
	v.SetSearchQuery("pain")
	require.Len(t, v.Filtered(), 2)

	v.SetProducts(append(catalog, product{ID: 5, Name: "Pain Patch", Description: "", Price: 9, CategoryID: 2}))
	assert.ElementsMatch(t, []string{"Aspirin", "Ibuprofen", "Pain Patch"}, names(v.Filtered()))
}

func TestFilteredReturnsCopy(t *testing.T) {
	t.Parallel()

	v := newView()
	v.SetProducts(catalog)

	got := v.Filtered()
	got[0] = product{Name: "mutated"}
	assert.NotEqual(t, "mutated", v.Filtered()[0].Name)
}
