package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// GetParams returns the module parameters, or the defaults when unset.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}
	fee, err := types.UnmarshalFee(bz)
	if err != nil {
		return types.Params{}, fmt.Errorf("GetParams: %w", err)
	}
	return types.NewParams(fee), nil
}

// SetParams validates and stores the module parameters. Existing pools keep
// the fee they were created with.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	k.getStore(ctx).Set(types.ParamsKey, types.MarshalFee(params.FeeBps))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeParamsUpdated,
			sdk.NewAttribute(types.AttributeKeyFeeBps, fmt.Sprintf("%d", params.FeeBps)),
		),
	)
	return nil
}
