package competition

import "context"

type Repository interface {
	LoadCatalog(ctx context.Context) (Catalog, error)
}
