package app

// Gas limits per operation. Each mutating call runs under its own gas meter;
// running out aborts the call without writing anything.
const (
	MaxGasPerMint            uint64 = 100_000
	MaxGasPerTransfer        uint64 = 100_000
	MaxGasPerPoolCreation    uint64 = 300_000
	MaxGasPerSwap            uint64 = 200_000
	MaxGasPerLiquidityAdd    uint64 = 250_000
	MaxGasPerLiquidityRemove uint64 = 250_000
	MaxGasPerShareTransfer   uint64 = 100_000
	MaxGasPerParamsUpdate    uint64 = 50_000

	// UnlimitedGas runs a call under an infinite gas meter. Used for state
	// imports, which touch every entry.
	UnlimitedGas uint64 = 0
)
