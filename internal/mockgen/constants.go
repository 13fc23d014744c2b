package mockgen

// AgentSeed is a demo solver agent registered at startup.
type AgentSeed struct {
	Name  string
	Image string
}

// Agents are the demo solver agents.
var Agents = []AgentSeed{
	{Name: "Aleph", Image: "/aleph.png"},
	{Name: "Bet", Image: "/bet.png"},
}

// Venue is a routing hop a mock solution can pass through.
type Venue struct {
	Name    string
	Address string
	Image   string
}

// Venues are well-known Solana swap programs used as route nodes.
var Venues = []Venue{
	{
		Name:    "Jupiter Aggregator v6",
		Address: "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
		Image:   "https://statics.solscan.io/ex-img/JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4.svg",
	},
	{
		Name:    "Jupiter Aggregator v4",
		Address: "JUP4Fb2cqiRUcaTHdrPC8h2gNsA2ETXiPDD33WcGuJB",
		Image:   "https://statics.solscan.io/ex-img/JUP4Fb2cqiRUcaTHdrPC8h2gNsA2ETXiPDD33WcGuJB.svg",
	},
	{
		Name:    "Raydium Concentrated Liquidity",
		Address: "CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK",
		Image:   "https://statics.solscan.io/ex-img/CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK.png",
	},
	{
		Name:    "Raydium CPMM",
		Address: "CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C",
		Image:   "https://statics.solscan.io/ex-img/CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK.png",
	},
	{
		Name:    "Raydium Liquidity Pool AMM",
		Address: "5quBtoiQqxF9Jv6KYKctB59NT3gtJD2Y65kdnB1Uev3h",
		Image:   "https://statics.solscan.io/ex-img/5quBtoiQqxF9Jv6KYKctB59NT3gtJD2Y65kdnB1Uev3h.png",
	},
	{
		Name:    "Raydium Liquidity Pool V4",
		Address: "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8",
		Image:   "https://statics.solscan.io/ex-img/675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8.png",
	},
	{
		Name:    "Raydium Liquidity Pool V3",
		Address: "27haf8L6oxUeXrHrgEgsexjSY5hbVUWEmvv9Nyxg8vQv",
		Image:   "https://statics.solscan.io/ex-img/27haf8L6oxUeXrHrgEgsexjSY5hbVUWEmvv9Nyxg8vQv.png",
	},
	{
		Name:    "Raydium Liquidity Pool V2",
		Address: "RVKd61ztZW9GUwhRbbLoYVRE5Xf1B2tVscKqwZqXgEr",
		Image:   "https://statics.solscan.io/ex-img/RVKd61ztZW9GUwhRbbLoYVRE5Xf1B2tVscKqwZqXgEr.png",
	},
	{
		Name:    "Orca Whirlpool",
		Address: "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc",
		Image:   "https://statics.solscan.io/ex-img/whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc.svg",
	},
	{
		Name:    "Orca Swap V2",
		Address: "9W959DqEETiGZocYWCQPaJ6sBmUzgfxXfqGeTEdp3aQP",
		Image:   "https://statics.solscan.io/ex-img/9W959DqEETiGZocYWCQPaJ6sBmUzgfxXfqGeTEdp3aQP.svg",
	},
}

// UserVenueImage is the inline avatar used for user nodes in route graphs.
const UserVenueImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iODAwcHgiIGhlaWdodD0iODAwcHgiIHZpZXdCb3g9Ii04IDAgNTEyIDUxMiIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIiBuaWdodGV5ZT0iZGlzYWJsZWQiIGZpbGw9IndoaXRlIj48cGF0aCBkPSJNMjQ4IDhDMTExIDggMCAxMTkgMCAyNTZzMTExIDI0OCAyNDggMjQ4IDI0OC0xMTEgMjQ4LTI0OFMzODUgOCAyNDggOHptMCA5NmM0OC42IDAgODggMzkuNCA4OCA4OHMtMzkuNCA4OC04OCA4OC04OC0zOS40LTg4LTg4IDM5LjQtODggODgtODh6bTAgMzQ0Yy01OC43IDAtMTExLjMtMjYuNi0xNDYuNS02OC4yIDE4LjgtMzUuNCA1NS42LTU5LjggOTguNS01OS44IDIuNCAwIDQuOC40IDcuMSAxLjEgMTMgNC4yIDI2LjYgNi45IDQwLjkgNi45IDE0LjMgMCAyOC0yLjcgNDAuOS02LjkgMi4zLS43IDQuNy0xLjEgNy4xLTEuMSA0Mi45IDAgNzkuNyAyNC40IDk4LjUgNTkuOEMzNTkuMyA0MjEuNCAzMDYuNyA0NDggMjQ4IDQ0OHoiLz48L3N2Zz4="

// Tokens are the mint addresses mock orders trade between.
var Tokens = []string{
	"4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R", // Raydium (RAY)
	"5goWRao6a3yNC4d6UjMdQxonkCMvKBwdpubU3qhfcdf1", // Tether USD (USDTpo)
	"4wjPQJ6PrkC4dHhYghwJzGBVP78DkBzA2U3kHoFNBuhj", // LIQ Protocol (LIQ)
	"5RpUwQ8wtdPCZHhu6MERp2RGrpobsbZ6MH5dDHkUjs2",  // Binance USD (BUSDbs)
	"5TtSKAamFq88grN1QGrEaZ1AjjyciqnCya1aiMhAgFvG", // Chiliz (CHZ)
	"7dVH61ChzgmN9BwG4PkzwRP8PbYwPJ7ZPNF2vamKT2H8", // Huobi BTC (HBTC)
	"7gjNiPun3AzEazTZoFEjZgcBMeuaXdpjHq2raZTmTrfs", // Curve DAO Token (CRV)
	"7i5KKsX2weiTkry7jA4ZwSuXGhs5eJBEjY8vVxR4pfRx", // Green Metaverse Token (GMT)
	"7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs", // Ether (ETH)
	"7VQo3HFLNH5QqGtM8eC3XQbPkJUu7nS9LeGWjerRh5Sw", // HUSD Stablecoin (HUSD)
}
