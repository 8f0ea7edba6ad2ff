package domain

// Tolerances bound how far two alignments may drift and still count as
// the same hit. Thresholds are calibration, not contract: they load from
// configuration and default to values that proved reasonable against
// real nucleotide searches.
type Tolerances struct {
	// PctIdentity is the allowed absolute drift in percent identity.
	PctIdentity float64 `toml:"pct_identity"`

	// Coordinates is the allowed drift, in bases, for each alignment
	// coordinate (query/subject start and end) and the alignment length.
	Coordinates int `toml:"coordinates"`

	// BitScoreFrac is the allowed relative drift in bit score (0.05 =
	// five percent).
	BitScoreFrac float64 `toml:"bit_score_frac"`

	// EValueOrders is the allowed drift in orders of magnitude between
	// e-values.
	EValueOrders float64 `toml:"e_value_orders"`
}

// DefaultTolerances returns the documented default drift bounds.
func DefaultTolerances() Tolerances {
	return Tolerances{
		PctIdentity:  0.5,
		Coordinates:  10,
		BitScoreFrac: 0.05,
		EValueOrders: 2,
	}
}

// Config is the persisted application configuration.
type Config struct {
	// Email identifies the caller to the directory service, a
	// responsible-use requirement. Required before any lookup.
	Email string `toml:"email"`

	// APIKey is the optional directory API key; raises the allowed
	// request rate.
	APIKey string `toml:"api_key"`

	// Database is the directory database to resolve against.
	Database string `toml:"database"`

	// CacheTTLDays bounds how long cached lookups stay fresh.
	CacheTTLDays int `toml:"cache_ttl_days"`

	// Tolerances configure the default hit comparator.
	Tolerances Tolerances `toml:"comparator"`
}

// DefaultConfig returns the configuration used before the user sets
// anything.
func DefaultConfig() Config {
	return Config{
		Database:     "nuccore",
		CacheTTLDays: 7,
		Tolerances:   DefaultTolerances(),
	}
}
