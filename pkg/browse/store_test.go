package browse

import (
	"testing"
)

func TestStore_InitFromURL(t *testing.T) {
	var got FilterState
	store := NewStore(
		NewMemoryHistory("q=iphone&categories=cat-electronics&sort=price_low_high"),
		WithOnChange(func(f FilterState) { got = f }),
	)
	store.Init()

	if got.Query != "iphone" {
		t.Errorf("query: got %q", got.Query)
	}
	if len(got.Categories) != 1 || got.Categories[0] != "cat-electronics" {
		t.Errorf("categories: got %v", got.Categories)
	}
	if got.Sort != SortPriceLowHigh {
		t.Errorf("sort: got %q", got.Sort)
	}
}

func TestStore_InitMalformedURL_Defaults(t *testing.T) {
	store := NewStore(NewMemoryHistory("%zz=broken;;"))
	store.Init()

	if !store.State().IsZero() {
		t.Errorf("malformed URL should hydrate defaults, got %+v", store.State())
	}
}

func TestStore_ApplySyncsURL(t *testing.T) {
	history := NewMemoryHistory("")
	store := NewStore(history)
	store.Init()

	store.Apply(func(f *FilterState) {
		f.Query = "generator"
		f.MinPrice = f64(50000)
	})

	if got := history.Current(); got != "price_min=50000&q=generator" {
		t.Errorf("URL: got %q", got)
	}
}

func TestStore_ClearHelpers(t *testing.T) {
	history := NewMemoryHistory("q=tv&categories=a,b&conditions=new&location=Ikeja&price_min=10&price_max=20")
	store := NewStore(history)
	store.Init()

	store.ClearCategory("a")
	if got := store.State().Categories; !sameSet(got, []string{"b"}) {
		t.Errorf("after ClearCategory: %v", got)
	}

	store.ClearSearch()
	if store.State().Query != "" {
		t.Error("ClearSearch should drop the query")
	}

	store.ClearCondition("new")
	if len(store.State().Conditions) != 0 {
		t.Error("ClearCondition should drop the condition")
	}

	store.ClearLocation()
	if store.State().Location != "" {
		t.Error("ClearLocation should drop the location")
	}

	store.ClearPriceRange()
	s := store.State()
	if s.MinPrice != nil || s.MaxPrice != nil {
		t.Error("ClearPriceRange should drop both bounds")
	}

	if history.Current() != "" {
		t.Errorf("URL should be empty once all filters cleared, got %q", history.Current())
	}
}

func TestStore_ClearAll(t *testing.T) {
	history := NewMemoryHistory("q=tv&sort=oldest&price_max=99")
	store := NewStore(history)
	store.Init()

	store.ClearAll()

	if !store.State().IsZero() {
		t.Errorf("expected zero state, got %+v", store.State())
	}
	if history.Current() != "" {
		t.Errorf("URL: got %q, want empty", history.Current())
	}
}

func TestStore_OnChangeFiresPerCommit(t *testing.T) {
	var count int
	store := NewStore(NewMemoryHistory(""), WithOnChange(func(FilterState) { count++ }))
	store.Init()
	store.Apply(func(f *FilterState) { f.Query = "a" })
	store.Apply(func(f *FilterState) { f.Query = "ab" })

	if count != 3 {
		t.Errorf("onChange fired %d times, want 3", count)
	}
}

func TestStore_StateReturnsCopy(t *testing.T) {
	store := NewStore(NewMemoryHistory("categories=a,b"))
	store.Init()

	s := store.State()
	s.Categories[0] = "mutated"

	if store.State().Categories[0] != "a" {
		t.Error("State must return an isolated copy")
	}
}
