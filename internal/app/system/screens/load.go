// internal/app/system/screens/load.go
package screens

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/eventdash/internal/app/system/collection"
)

// Load returns the session's collection for screen, fetching when the
// request is a mount, the state is new, or no fetch has succeeded yet.
// Partial requests against a loaded state reuse it without a round trip.
// A fetch superseded by a newer one is not an error.
func Load[T collection.Record](
	r *http.Request,
	reg *Registry,
	sessionID, screen string,
	create func() *collection.State[T],
	fetch func(context.Context) ([]T, error),
) (*collection.State[T], error) {
	st, created := Obtain(reg, sessionID, screen, create)
	if !created && !IsMount(r) && st.Loaded() {
		return st, nil
	}
	if err := st.Fetch(r.Context(), fetch); err != nil && !errors.Is(err, collection.ErrStale) {
		return st, err
	}
	return st, nil
}

// Refetch re-runs fetch on an existing state, for mutations whose effect
// the client cannot reproduce locally.
func Refetch[T collection.Record](ctx context.Context, st *collection.State[T], fetch func(context.Context) ([]T, error)) error {
	if err := st.Fetch(ctx, fetch); err != nil && !errors.Is(err, collection.ErrStale) {
		return err
	}
	return nil
}
