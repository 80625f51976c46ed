package port

import (
	"context"
)

// OrderExporter durably stores a serialized order outside of the cart store.
// Export returns a human readable location of the stored file.
type OrderExporter interface {
	Name() string
	Export(ctx context.Context, fileName string, body []byte) (string, error)
}
