package championship

import "context"

// Repository describes table persistence needs from use cases.
type Repository interface {
	Load(ctx context.Context, slug string) (Table, bool, error)
	Save(ctx context.Context, slug string, table Table) error
	Backup(ctx context.Context, slug string) (string, error)
	List(ctx context.Context) ([]string, error)
}

// ReportArchive stores rendered round reports.
type ReportArchive interface {
	SaveReport(ctx context.Context, slug string, round int, content []byte) (string, error)
}
