package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func local(id, title string, rating float64) Summary {
	return Summary{ID: id, Title: title, AverageRating: rating}
}

func mirrored(id, externalID, title string, rating float64) Summary {
	return Summary{ID: id, Title: title, ExternalID: externalID, AverageRating: rating}
}

func external(id, title string) Summary {
	return Summary{ID: id, Title: title, External: true, ExternalID: id}
}

func keys(items []Summary) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Key()
	}
	return out
}

func TestAggregateDedup(t *testing.T) {
	t.Run("MirroredLocalCopy_WinsOverLiveExternal", func(t *testing.T) {
		loc := []Summary{mirrored("local-1", "52772", "Teriyaki Chicken Casserole", 4.5)}
		ext := []Summary{external("52772", "Teriyaki Chicken Casserole")}

		page := Aggregate(loc, ext, Filters{})

		require.Len(t, page.Items, 1)
		assert.Equal(t, "local-1", page.Items[0].ID)
		assert.False(t, page.Items[0].External)
		assert.Equal(t, 4.5, page.Items[0].AverageRating)
	})

	t.Run("NonMirroredSources_AreConcatenated", func(t *testing.T) {
		loc := []Summary{local("local-1", "Carbonara", 4)}
		ext := []Summary{external("52772", "Teriyaki Chicken Casserole")}

		page := Aggregate(loc, ext, Filters{})

		assert.Equal(t, 2, page.TotalCount)
		assert.ElementsMatch(t,
			[]string{"loc:local-1", "ext:52772"},
			keys(page.Items))
	})

	t.Run("LocalIDColliding_WithExternalID_IsNotDeduped", func(t *testing.T) {
		// Id spaces are not disjoint: a local id equal to a catalog id
		// is a coincidence, not a mirror. Only ExternalID links them.
		loc := []Summary{local("52772", "Homemade Casserole", 0)}
		ext := []Summary{external("52772", "Teriyaki Chicken Casserole")}

		page := Aggregate(loc, ext, Filters{})

		assert.Equal(t, 2, page.TotalCount)
	})

	t.Run("RepeatedExternalRecords_KeepFirstOccurrenceOnly", func(t *testing.T) {
		loc := []Summary{local("local-1", "Carbonara", 4)}
		ext := []Summary{
			external("52772", "Teriyaki Chicken Casserole"),
			external("52804", "Poutine"),
		}
		doubled := append(append([]Summary{}, ext...), ext...)

		once := Aggregate(loc, ext, Filters{PageSize: 100})
		withDoubled := Aggregate(loc, doubled, Filters{PageSize: 100})

		assert.Equal(t, 3, once.TotalCount)
		assert.Equal(t, once.TotalCount, withDoubled.TotalCount)
		assert.Equal(t, keys(once.Items), keys(withDoubled.Items))
	})

	t.Run("Idempotent_SecondPassChangesNothing", func(t *testing.T) {
		loc := []Summary{
			mirrored("local-1", "52772", "Teriyaki Chicken Casserole", 4.5),
			local("local-2", "Carbonara", 3),
		}
		ext := []Summary{
			external("52772", "Teriyaki Chicken Casserole"),
			external("52804", "Poutine"),
		}

		once := Aggregate(loc, ext, Filters{PageSize: 100})
		twice := Aggregate(once.Items, nil, Filters{PageSize: 100})

		assert.Equal(t, keys(once.Items), keys(twice.Items))
		assert.Equal(t, once.TotalCount, twice.TotalCount)
	})

	t.Run("InputSlices_AreNotMutated", func(t *testing.T) {
		loc := []Summary{local("b", "Banana Bread", 2), local("a", "Apple Pie", 5)}
		ext := []Summary{external("52772", "Teriyaki Chicken Casserole")}

		Aggregate(loc, ext, Filters{Sort: SortNameAsc})

		assert.Equal(t, "b", loc[0].ID)
		assert.Equal(t, "a", loc[1].ID)
	})
}

func TestAggregateFilters(t *testing.T) {
	loc := []Summary{
		{ID: "1", Title: "Beef Wellington", Category: "Beef", Area: "British", AverageRating: 4.2},
		{ID: "2", Title: "Chicken Curry", Category: "Chicken", Area: "Indian", AverageRating: 3.9},
		{ID: "3", Title: "Beef Stroganoff", Category: "Beef", Area: "Russian", AverageRating: 4.0},
	}

	t.Run("SearchTerm_MatchesTitleCategoryOrArea", func(t *testing.T) {
		byTitle := Aggregate(loc, nil, Filters{SearchTerm: "wellington"})
		require.Len(t, byTitle.Items, 1)
		assert.Equal(t, "1", byTitle.Items[0].ID)

		byCategory := Aggregate(loc, nil, Filters{SearchTerm: "beef"})
		assert.Equal(t, 2, byCategory.TotalCount)

		byArea := Aggregate(loc, nil, Filters{SearchTerm: "indian"})
		require.Len(t, byArea.Items, 1)
		assert.Equal(t, "2", byArea.Items[0].ID)
	})

	t.Run("CategoryAndArea_AreExactMatches", func(t *testing.T) {
		page := Aggregate(loc, nil, Filters{Category: "Beef", Area: "Russian"})

		require.Len(t, page.Items, 1)
		assert.Equal(t, "3", page.Items[0].ID)
	})

	t.Run("MinRating_BoundaryIsInclusive", func(t *testing.T) {
		page := Aggregate(loc, nil, Filters{MinRating: 4.0})

		assert.ElementsMatch(t, []string{"loc:1", "loc:3"}, keys(page.Items))
	})

	t.Run("CombinedFilters_EqualSequentialApplication", func(t *testing.T) {
		combined := Aggregate(loc, nil, Filters{SearchTerm: "beef", MinRating: 4.0})

		searched := Aggregate(loc, nil, Filters{SearchTerm: "beef", PageSize: 100})
		sequential := Aggregate(searched.Items, nil, Filters{MinRating: 4.0})

		assert.ElementsMatch(t, keys(sequential.Items), keys(combined.Items))
	})
}

func TestAggregateSort(t *testing.T) {
	t.Run("NameAsc_IsTheDefault", func(t *testing.T) {
		loc := []Summary{
			local("1", "Poutine", 0),
			local("2", "Apple Pie", 0),
			local("3", "Lasagne", 0),
		}

		page := Aggregate(loc, nil, Filters{})

		assert.Equal(t, []string{"loc:2", "loc:3", "loc:1"}, keys(page.Items))
	})

	t.Run("NameSort_IgnoresCase", func(t *testing.T) {
		loc := []Summary{
			local("1", "banana bread", 0),
			local("2", "Apple Pie", 0),
		}

		page := Aggregate(loc, nil, Filters{Sort: SortNameAsc})

		assert.Equal(t, []string{"loc:2", "loc:1"}, keys(page.Items))
	})

	t.Run("RatingTies_PreserveInputOrder", func(t *testing.T) {
		loc := []Summary{
			local("c", "Ceviche", 4.0),
			local("a", "Arancini", 4.0),
			local("b", "Bibimbap", 4.0),
		}

		page := Aggregate(loc, nil, Filters{Sort: SortRatingDesc})

		assert.Equal(t, []string{"loc:c", "loc:a", "loc:b"}, keys(page.Items))
	})

	t.Run("RatingDesc_OrdersHighestFirst", func(t *testing.T) {
		loc := []Summary{
			local("1", "Lasagne", 2.5),
			local("2", "Poutine", 4.8),
			local("3", "Ceviche", 3.1),
		}

		page := Aggregate(loc, nil, Filters{Sort: SortRatingDesc})

		assert.Equal(t, []string{"loc:2", "loc:3", "loc:1"}, keys(page.Items))
	})

	t.Run("RatingAsc_OrdersLowestFirst", func(t *testing.T) {
		loc := []Summary{
			local("1", "Lasagne", 2.5),
			local("2", "Poutine", 4.8),
		}

		page := Aggregate(loc, nil, Filters{Sort: SortRatingAsc})

		assert.Equal(t, []string{"loc:1", "loc:2"}, keys(page.Items))
	})
}

func TestAggregatePagination(t *testing.T) {
	many := func(n int) []Summary {
		items := make([]Summary, n)
		for i := range items {
			items[i] = local(string(rune('a'+i)), string(rune('a'+i)), 0)
		}
		return items
	}

	t.Run("TotalPages_RoundsUp", func(t *testing.T) {
		page := Aggregate(many(25), nil, Filters{PageSize: 12})

		assert.Equal(t, 25, page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Items, 12)
	})

	t.Run("LastPage_HoldsTheRemainder", func(t *testing.T) {
		page := Aggregate(many(25), nil, Filters{PageSize: 12, Page: 3})

		assert.Len(t, page.Items, 1)
	})

	t.Run("PageBeyondEnd_ReturnsEmptyWithTrueTotals", func(t *testing.T) {
		page := Aggregate(many(25), nil, Filters{PageSize: 12, Page: 4})

		assert.Empty(t, page.Items)
		assert.Equal(t, 25, page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("ZeroPageAndSize_FallBackToDefaults", func(t *testing.T) {
		page := Aggregate(many(25), nil, Filters{})

		assert.Len(t, page.Items, DefaultPageSize)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("EmptyResultSet_HasZeroPages", func(t *testing.T) {
		page := Aggregate(nil, nil, Filters{SearchTerm: "nope"})

		assert.Empty(t, page.Items)
		assert.Zero(t, page.TotalCount)
		assert.Zero(t, page.TotalPages)
	})
}

func TestAggregateNormalization(t *testing.T) {
	t.Run("NegativeRating_IsResetBeforeFiltering", func(t *testing.T) {
		loc := []Summary{local("1", "Lasagne", -3)}

		page := Aggregate(loc, nil, Filters{})

		require.Len(t, page.Items, 1)
		assert.Zero(t, page.Items[0].AverageRating)
	})

	t.Run("UnloadedSource_IsJustAnEmptySlice", func(t *testing.T) {
		ext := []Summary{external("52772", "Teriyaki Chicken Casserole")}

		page := Aggregate(nil, ext, Filters{})

		assert.Equal(t, 1, page.TotalCount)
	})
}
