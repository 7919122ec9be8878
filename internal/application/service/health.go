package service

import "context"

// StoreHealth probes the backing store. A nil error means both builder tables are present.
type StoreHealth interface {
	Check(ctx context.Context) error
}
