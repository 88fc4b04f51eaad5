package memorystore

// assetKey scopes an asset list to one owner on one exchange and base.
type assetKey struct {
	Owner    string // Username of the session that owns the assets
	Exchange string // Exchange name (e.g., "poloniex")
	Base     string // Quote currency (e.g., "BTC")
}
