// Package loader defines the read-through value-producer hook a store
// invokes on a miss. Grounded on goelayush89-go-stashd's Loader/LoaderFunc
// method-value adapter shape.
package loader

import (
	"context"

	"github.com/cakecache/cake/attribute"
)

// Func produces a value (and optional attributes to seed the new entry
// with) for key on a store miss. A non-nil error means the load failed;
// the store routes it through exception.Service.LoadFailed, which may
// substitute a value or propagate the error to the caller.
type Func[K comparable, V any] func(ctx context.Context, key K, attrs *attribute.Map) (V, *attribute.Map, error)
