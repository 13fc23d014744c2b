package domain

// TokenMetadata is display metadata for a token address, fetched from the
// external metadata provider. Not persisted; cached client-side only.
// A zero-valued entry with the address echoed back is the placeholder used
// when a lookup fails.
type TokenMetadata struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Icon     string `json:"icon"`
	Decimals int    `json:"decimals"`
}

// Placeholder returns the fallback metadata entry for an address whose
// lookup failed or returned nothing.
func Placeholder(address string) TokenMetadata {
	return TokenMetadata{Address: address}
}
