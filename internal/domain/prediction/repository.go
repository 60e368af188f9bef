package prediction

import "context"

// Repository describes prediction-sheet persistence needs from use cases.
// Participants are addressed by their directory slug.
type Repository interface {
	ListParticipants(ctx context.Context, slug string) ([]string, error)
	Load(ctx context.Context, slug, participant string) (Sheet, bool, error)
	Save(ctx context.Context, slug, participant string, sheet Sheet) error
	LoadAll(ctx context.Context, slug string) ([]Sheet, error)
}
