package ports

import "context"

// LanguageCache stores the code→name map returned by the API.
type LanguageCache interface {
	// Get reports ok=false on a miss or an expired entry.
	Get(ctx context.Context) (langs map[string]string, ok bool, err error)
	Set(ctx context.Context, langs map[string]string) error
}
