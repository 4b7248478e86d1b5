package trait

import "github.com/cheerioskun/prfilter/internal/filter"

// DisplayName is how the trait is listed to users
const DisplayName = "Include discovered GitHub pull requests by changed files via regex"

// CheckConfig validates both patterns of cfg the way a configuration form
// would, returning one result per field.
func CheckConfig(cfg Config) map[string]filter.Validation {
	return filter.Check(cfg.Inclusion, cfg.Exclusion)
}

// Blocking returns true if any result in results prevents saving
func Blocking(results map[string]filter.Validation) bool {
	for _, v := range results {
		if v.Blocking() {
			return true
		}
	}
	return false
}
