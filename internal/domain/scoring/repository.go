package scoring

import "context"

// Repository describes rule-document persistence needs from use cases.
type Repository interface {
	Load(ctx context.Context, slug string) (RuleSet, bool, error)
	Save(ctx context.Context, slug string, set RuleSet) error
}
