package rew

import (
	"strconv"

	"github.com/mikkopa/mso-rew-converter/internal/mso"
)

// mustValue builds an mso.Value from a source literal. Panics on a bad
// literal so test fixtures fail loudly.
func mustValue(raw string) mso.Value {
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		panic(err)
	}
	return mso.Value{Num: num, Raw: raw}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
