package types

// Token module event types and attributes
const (
	EventTypeMint     = "token_mint"
	EventTypeTransfer = "token_transfer"

	AttributeKeyAsset  = "asset"
	AttributeKeyFrom   = "from"
	AttributeKeyTo     = "to"
	AttributeKeyAmount = "amount"
)
