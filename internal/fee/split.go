// Package fee computes the fixed three-way division of a transfer fee.
package fee

// Split is the fee taken from one transfer and how it is routed.
//
// Fee is one percent of the transferred amount. Half of it is burned, a
// quarter is swapped into the paired asset and the remainder, including any
// rounding dust, is deposited back into the pool.
type Split struct {
	Amount  uint64 `json:"amount"`
	Fee     uint64 `json:"fee"`
	Burn    uint64 `json:"burn"`
	Swap    uint64 `json:"swap"`
	Deposit uint64 `json:"deposit"`
}

const (
	feeDivisor  = 100
	burnDivisor = 2
	swapDivisor = 4
)

// Calculate is total over uint64; every output is bounded by amount.
func Calculate(amount uint64) Split {
	fee := amount / feeDivisor
	burn := fee / burnDivisor
	swap := fee / swapDivisor

	return Split{
		Amount:  amount,
		Fee:     fee,
		Burn:    burn,
		Swap:    swap,
		Deposit: fee - burn - swap,
	}
}
