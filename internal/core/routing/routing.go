// Package routing maps a sender account onto the settlement rail that
// clears it and the pooled account that receives the funds.
package routing

import "strings"

const (
	RailInvestec = "INVESTEC BANK"
	RailAbsa     = "ABSA BANK"
	RailStandard = "STANDARD BANK"

	PoolInvestec = "INV-POOL-888"
	PoolAbsa     = "ABS-MERCHANT-001"
	PoolStandard = "SB-CLEARING-999"
)

type Route struct {
	Rail        string
	PoolAccount string
}

type rule struct {
	prefix string
	route  Route
}

// Checked in order, first match wins.
var rules = []rule{
	{prefix: "INV", route: Route{Rail: RailInvestec, PoolAccount: PoolInvestec}},
	{prefix: "ABS", route: Route{Rail: RailAbsa, PoolAccount: PoolAbsa}},
}

var defaultRoute = Route{Rail: RailStandard, PoolAccount: PoolStandard}

// Resolve never fails: an account matching no prefix, the empty one
// included, clears through the default rail.
func Resolve(senderAccount string) Route {
	for _, r := range rules {
		if strings.HasPrefix(senderAccount, r.prefix) {
			return r.route
		}
	}
	return defaultRoute
}
