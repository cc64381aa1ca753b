package settings

import "context"

// Repository loads and stores the single settings row. Load creates the
// default row on first access.
type Repository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
