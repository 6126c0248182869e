package types

import "fmt"

// CacheControl is a per-field and per-type caching hint. The zero value
// of interest is DefaultCacheControl, not the Go zero value: an
// unconstrained hint is public with no age limit.
type CacheControl struct {
	Public bool `json:"public"`
	MaxAge int  `json:"maxAge"`
}

// DefaultCacheControl is the merge identity {public, 0}.
func DefaultCacheControl() CacheControl {
	return CacheControl{Public: true}
}

// Merge combines two hints pairwise: privacy is sticky, and the smaller
// of two nonzero max ages wins. Merge is commutative.
func (c CacheControl) Merge(other CacheControl) CacheControl {
	merged := CacheControl{Public: c.Public && other.Public}
	switch {
	case c.MaxAge == 0:
		merged.MaxAge = other.MaxAge
	case other.MaxAge == 0:
		merged.MaxAge = c.MaxAge
	case c.MaxAge < other.MaxAge:
		merged.MaxAge = c.MaxAge
	default:
		merged.MaxAge = other.MaxAge
	}
	return merged
}

// Value renders the hint as a Cache-Control header value, or "" when the
// hint carries no max age.
func (c CacheControl) Value() string {
	if c.MaxAge <= 0 {
		return ""
	}
	if !c.Public {
		return fmt.Sprintf("max-age=%d, private", c.MaxAge)
	}
	return fmt.Sprintf("max-age=%d", c.MaxAge)
}
