package bank

// Transaction is a single retained deposit event. Every retained
// transaction has Amount > 0 and a non-empty Date; rows failing that are
// dropped at load time. Transactions are never mutated after creation.
type Transaction struct {
	// Source is the code of the originating bank export.
	Source string
	// Date is the canonical YYYY-MM-DD posting date.
	Date string
	// Amount is the deposited amount, always positive.
	Amount float64
	// DepositorRaw is the untouched original depositor field. The
	// post-match noise classifier needs it because extraction may have
	// stripped the system markers.
	DepositorRaw string
	// DepositorName is the best-effort extracted payer name. Empty means
	// no identifiable payer; such rows can only match by amount.
	DepositorName string
}

// LoadStats reports what happened to the raw rows of one source. Skips are
// counted per reason so the caller can see how lossy a source was.
type LoadStats struct {
	Source  string
	Rows    int
	Loaded  int
	Skipped map[string]int
}

// Skip reasons used by the loader.
const (
	SkipNoise     = "noise"
	SkipBadDate   = "bad_date"
	SkipBadAmount = "bad_amount"
)
