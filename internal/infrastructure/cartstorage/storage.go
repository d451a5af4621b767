// Package cartstorage persists the serialized cart blob under a fixed key,
// the server-side analog of the browser's local storage.
package cartstorage

import "context"

// Storage stores one opaque blob. Load returns (nil, nil) when nothing has
// been saved yet.
type Storage interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
}
