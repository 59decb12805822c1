package lead

import "context"

// Source supplies the static lead dataset loaded once at startup.
type Source interface {
	FetchLeads(ctx context.Context) ([]Lead, error)
}
