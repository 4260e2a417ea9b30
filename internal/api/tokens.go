// ABOUTME: TokenSource adapter reading access tokens from a credential store
// ABOUTME: Each request borrows a read-only snapshot; the pipeline never writes

package api

import "github.com/botdeck/botdeck/internal/credstore"

// StoreTokens returns a TokenSource backed by a credential store. The store
// is read at dispatch time, so concurrent requests each see their own
// snapshot of the current pair.
func StoreTokens(store credstore.Store) TokenSource {
	return func() string {
		pair, ok := store.Load()
		if !ok {
			return ""
		}
		return pair.AccessToken
	}
}
