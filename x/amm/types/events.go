package types

// AMM module event types
const (
	EventTypePoolCreated     = "amm_pool_created"
	EventTypeSwap            = "amm_swap"
	EventTypeAddLiquidity    = "amm_add_liquidity"
	EventTypeRemoveLiquidity = "amm_remove_liquidity"
	EventTypeShareTransfer   = "amm_share_transfer"
	EventTypeParamsUpdated   = "amm_params_updated"
)

// AMM module event attributes
const (
	AttributeKeyPair      = "pair"
	AttributeKeyCreator   = "creator"
	AttributeKeyTrader    = "trader"
	AttributeKeyProvider  = "provider"
	AttributeKeyFrom      = "from"
	AttributeKeyTo        = "to"
	AttributeKeyAssetIn   = "asset_in"
	AttributeKeyAssetOut  = "asset_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyShares    = "shares"
	AttributeKeyFeeBps    = "fee_bps"
	AttributeKeyPrice     = "price"
)
