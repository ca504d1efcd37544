package cpswap

import (
	"math/big"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
)

const FeeRateDenominator = 1_000_000

var (
	bigFeeDenominator = big.NewInt(FeeRateDenominator)
	bigOne            = big.NewInt(1)
)

// SwapBaseInput quotes a constant-product swap of amountIn after the trade
// fee, which is rounded up and stays in the pool.
func SwapBaseInput(amountIn, reserveIn, reserveOut, tradeFeeRate uint64) (amountOut uint64, fee uint64) {
	in := new(big.Int).SetUint64(amountIn)

	f := new(big.Int).Mul(in, new(big.Int).SetUint64(tradeFeeRate))
	f = ceilDiv(f, bigFeeDenominator)
	fee = f.Uint64()

	afterFee := new(big.Int).Sub(in, f)
	denominator := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), afterFee)
	if denominator.Sign() == 0 {
		return 0, fee
	}

	out := new(big.Int).Mul(new(big.Int).SetUint64(reserveOut), afterFee)
	out.Quo(out, denominator)
	return out.Uint64(), fee
}

// LpTokensToTradingTokens is what a depositor pays for lpAmount, rounded
// up in the pool's favour.
func LpTokensToTradingTokens(lpAmount, lpSupply, reserve0, reserve1 uint64) (uint64, uint64, bool) {
	if lpSupply == 0 {
		return 0, 0, false
	}
	supply := new(big.Int).SetUint64(lpSupply)
	lp := new(big.Int).SetUint64(lpAmount)

	t0 := ceilDiv(new(big.Int).Mul(lp, new(big.Int).SetUint64(reserve0)), supply)
	t1 := ceilDiv(new(big.Int).Mul(lp, new(big.Int).SetUint64(reserve1)), supply)
	if !t0.IsUint64() || !t1.IsUint64() {
		return 0, 0, false
	}
	return t0.Uint64(), t1.Uint64(), true
}

// QuoteLpForAmount is the largest LP amount whose cost on the reserve side
// does not exceed amount.
func QuoteLpForAmount(amount, lpSupply, reserve uint64) uint64 {
	if reserve == 0 {
		return 0
	}
	lp := new(big.Int).Mul(new(big.Int).SetUint64(amount), new(big.Int).SetUint64(lpSupply))
	lp.Quo(lp, new(big.Int).SetUint64(reserve))
	if !lp.IsUint64() {
		return 0
	}
	return lp.Uint64()
}

// Reserves are the vault balances less fees owed to the protocol and the fund.
func Reserves(state coder.PoolState, balance0, balance1 uint64) (uint64, uint64) {
	return saturatingSub(balance0, state.ProtocolFeesToken0+state.FundFeesToken0),
		saturatingSub(balance1, state.ProtocolFeesToken1+state.FundFeesToken1)
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func ceilDiv(n, d *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, bigOne)
	}
	return q
}
