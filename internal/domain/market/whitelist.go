package market

// Whitelist is a caller-supplied set of accounts that mint without paying the
// minting fee. It is an input to the mint operation, not engine state.
type Whitelist []string

func (w Whitelist) Contains(account string) bool {
	for _, entry := range w {
		if entry == account {
			return true
		}
	}
	return false
}
