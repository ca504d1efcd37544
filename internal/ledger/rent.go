package ledger

const (
	AccountStorageOverhead     = 128
	DefaultLamportsPerByteYear = 3480
	DefaultExemptionYears      = 2
)

type Rent struct {
	LamportsPerByteYear uint64
	ExemptionYears      uint64
}

func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionYears:      DefaultExemptionYears,
	}
}

// MinimumBalance is the rent-exempt balance for an account holding size bytes.
func (r Rent) MinimumBalance(size int) uint64 {
	return (AccountStorageOverhead + uint64(size)) * r.LamportsPerByteYear * r.ExemptionYears
}
