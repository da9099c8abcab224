package domain

import "context"

// ItemRepository holds the ordered item list. Mutating methods return a
// snapshot of the list taken after the change.
type ItemRepository interface {
	List(ctx context.Context) ([]string, error)
	Append(ctx context.Context, item string) ([]string, error)
	// RemoveAt deletes by zero-based index and returns ErrItemIndexOutOfRange
	// when index is outside the list.
	RemoveAt(ctx context.Context, index int) ([]string, error)
}
