// Package browse provides the client-side core for a listings browse page:
// URL-synchronized filter state plus a debounced query dispatcher against the
// tradehub search API.
//
// The pieces compose; the host UI owns rendering and wiring:
//
//	client := browse.NewClient("https://api.tradehub.example")
//	disp := browse.NewDispatcher(client, browse.WithDebounce(500*time.Millisecond))
//	store := browse.NewStore(browse.NewMemoryHistory(""),
//	    browse.WithOnChange(disp.Apply),
//	)
//	store.Init()
//
//	store.Apply(func(f *browse.FilterState) { f.Query = "iphone" })
//	// ... user scrolls to the bottom:
//	disp.LoadMore()
//
// Text edits are debounced so each keystroke does not become a request; all
// other filter changes dispatch immediately. Responses from superseded
// requests are discarded, so a slow early query can never overwrite the
// results of a later one.
package browse
