package domain

const (
	// DEFAULT_BACKFILL_DAYS is the trailing window re-ingested on every run
	DEFAULT_BACKFILL_DAYS = 5

	// DEFAULT_WORKER_POOL_SIZE is the number of concurrent ingestion workers
	DEFAULT_WORKER_POOL_SIZE = 3

	// DEFAULT_MAX_REQUESTS_PER_MINUTE is the upstream request budget
	DEFAULT_MAX_REQUESTS_PER_MINUTE = 60

	// MIN_REQUESTS_PER_MINUTE and MAX_REQUESTS_PER_MINUTE bound the upstream request budget
	MIN_REQUESTS_PER_MINUTE = 10
	MAX_REQUESTS_PER_MINUTE = 200

	// DAYS_PER_YEAR is used to annualize windowed totals
	DAYS_PER_YEAR = 365
)

// DefaultWindows are the window lengths (in days) aggregated when none is requested
var DefaultWindows = []int{1, 7, 30, 90, 180, 365}

// IsValidWindow checks if a window length can be aggregated
func IsValidWindow(days int) bool {
	return days > 0
}
