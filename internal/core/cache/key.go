package cache

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Key identifies one classification: the transaction reference and its
// amount in canonical form.
type Key struct {
	Reference string
	Amount    string
}

func NewKey(reference string, amount decimal.Decimal) Key {
	return Key{Reference: reference, Amount: CanonicalAmount(amount)}
}

// String is the flat form used by shared stores. The reference is quoted so
// a separator inside it cannot collide with another key.
func (k Key) String() string {
	return strconv.Quote(k.Reference) + "|" + k.Amount
}

// CanonicalAmount renders numerically equal amounts identically: at least
// two fraction digits, no trailing zeros past that. 10, 10.0 and 10.000 all
// become "10.00"; 10.125 stays "10.125".
func CanonicalAmount(amount decimal.Decimal) string {
	s := amount.String()
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= 2 {
		return amount.StringFixed(2)
	}
	return s
}
