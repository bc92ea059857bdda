// Package identity holds shared identity-module definitions that both the
// service and the contract surface need.
package identity

import (
	dErrors "regnet/pkg/domain-errors"
)

// Top-up codes stand in for confirmed bank transactions: each opaque code
// maps to a fixed coin amount. Unknown codes are rejected outright.
var topUpCodes = map[string]int{
	"upg100":  100,
	"upg500":  500,
	"upg1000": 1000,
}

// TopUpAmount resolves a top-up code to its coin value.
func TopUpAmount(code string) (int, error) {
	amount, ok := topUpCodes[code]
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeInvalidArgument, "unrecognized top-up code %q", code)
	}
	return amount, nil
}
