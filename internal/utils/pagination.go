// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"math"
	"net/url"
	"strconv"
)

// ErrNegative is returned by QueryInt for values below zero.
var ErrNegative = errors.New("value must not be negative")

// QueryInt reads a non-negative base-10 integer from v[key].
//
// An absent key yields def. A key that is present but empty, malformed,
// out of range or negative is an error; parse failures are returned as
// *strconv.NumError.
//
// Example:
//
//	n, _ := utils.QueryInt(url.Values{"limit": {"5"}}, "limit", 10) // 5
//	n, _ = utils.QueryInt(url.Values{}, "limit", 10)               // 10
//	_, err := utils.QueryInt(url.Values{"p": {"x"}}, "p", 1)        // *strconv.NumError
func QueryInt(v url.Values, key string, def int) (int, error) {
	if !v.Has(key) {
		return def, nil
	}
	n, err := strconv.Atoi(v.Get(key))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNegative
	}
	return n, nil
}

// ParseID parses a base-10 int64 identifier from a path segment. Failures
// are returned as *strconv.NumError.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// Offset converts a 1-based page number into a row offset.
// Pages below 1 are treated as the first page. An offset too large for int
// is clamped to math.MaxInt; see OffsetOverflows.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	if OffsetOverflows(page, limit) {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// OffsetOverflows reports whether (page-1)*limit does not fit in an int.
// Such a page lies past the end of any listing.
func OffsetOverflows(page, limit int) bool {
	return page > 1 && limit > 0 && page-1 > math.MaxInt/limit
}
