package models

import "strings"

const DefaultCurrencyCode = "ZAR"

// CurrencyPolicy decides what happens to the currency field of an incoming
// transaction.
type CurrencyPolicy string

const (
	// CurrencyPolicyDefault fills the default code only when none was given.
	CurrencyPolicyDefault CurrencyPolicy = "default"
	// CurrencyPolicyOverride always replaces the code with the default one.
	CurrencyPolicyOverride CurrencyPolicy = "override"
	// CurrencyPolicyEnforce fills an empty code and rejects any other.
	CurrencyPolicyEnforce CurrencyPolicy = "enforce"
)

func ParseCurrencyPolicy(s string) (CurrencyPolicy, bool) {
	switch p := CurrencyPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return CurrencyPolicyDefault, true
	case CurrencyPolicyDefault, CurrencyPolicyOverride, CurrencyPolicyEnforce:
		return p, true
	default:
		return "", false
	}
}
