package fixture

import "context"

// Repository exposes the curated fixture list.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
}
