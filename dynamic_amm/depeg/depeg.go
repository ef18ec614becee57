package depeg

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// BaseCacheExpire is how long a cached oracle virtual price stays fresh,
// in seconds.
const BaseCacheExpire = 60 * 10

// UpdateBaseVirtualPrice refreshes the curve's depeg virtual price from
// the supplied stake account bytes. Pure function of its inputs: the
// caller fetches the accounts, this only decodes. A depeg pool whose
// stake account is absent is unquotable.
func UpdateBaseVirtualPrice(curve *shared.CurveType, currentTime int64, stake solanago.PublicKey, stakeData map[solanago.PublicKey][]byte) error {
	if curve.Kind != shared.CurveKindStable || curve.Depeg.Source == shared.DepegSourceNone {
		return nil
	}
	if curve.Depeg.BaseVirtualPrice != 0 && uint64(currentTime) < curve.Depeg.BaseCacheUpdated+BaseCacheExpire {
		return nil
	}
	data, ok := stakeData[stake]
	if !ok {
		return fmt.Errorf("%w: no account data for stake %s", shared.ErrMissingDepegAccount, stake)
	}
	virtualPrice, err := StakePoolVirtualPrice(data)
	if err != nil {
		return err
	}
	curve.Depeg.BaseVirtualPrice = virtualPrice
	curve.Depeg.BaseCacheUpdated = uint64(currentTime)
	return nil
}
