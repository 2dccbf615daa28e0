package engine

const (
	// DefaultLowStockThreshold applies when an item carries no threshold of its own.
	DefaultLowStockThreshold = 10

	// DefaultExpiryWarningDays is the look-ahead window for "expiring" classification.
	DefaultExpiryWarningDays = 30
)

// Config holds the process-wide classification defaults. Individual items may
// override the threshold; the warning window is always global.
type Config struct {
	DefaultLowStockThreshold int `json:"default_low_stock_threshold"`
	ExpiryWarningDays        int `json:"expiry_warning_days"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		DefaultLowStockThreshold: DefaultLowStockThreshold,
		ExpiryWarningDays:        DefaultExpiryWarningDays,
	}
}

// Normalize fills non-positive fields with the defaults so a zero Config
// behaves like DefaultConfig.
func (c Config) Normalize() Config {
	if c.DefaultLowStockThreshold <= 0 {
		c.DefaultLowStockThreshold = DefaultLowStockThreshold
	}
	if c.ExpiryWarningDays <= 0 {
		c.ExpiryWarningDays = DefaultExpiryWarningDays
	}
	return c
}
