package intake

import (
	"errors"
	"sort"
)

// Training-focus areas a registration distributes its percentage across.
const (
	FocusTechnique = "technique"
	FocusTactics   = "tactics"
	FocusPhysical  = "physical"
	FocusMental    = "mental"
)

// Focus distribution errors.
var (
	ErrFocusEmpty    = errors.New("focus distribution has no entries")
	ErrFocusNegative = errors.New("focus percentages cannot be negative")
	ErrFocusSum      = errors.New("focus percentages must sum to 100")
)

// ValidateFocus checks a focus distribution.
// PRE: focus maps area name to a whole percentage
// POST: Returns nil only when all entries are >= 0 and sum to exactly 100
func ValidateFocus(focus map[string]int) error {
	if len(focus) == 0 {
		return ErrFocusEmpty
	}
	sum := 0
	for _, v := range focus {
		if v < 0 {
			return ErrFocusNegative
		}
		sum += v
	}
	if sum != 100 {
		return ErrFocusSum
	}
	return nil
}

// NormalizeFocus scales arbitrary non-negative weights to whole percentages
// summing to exactly 100, assigning leftover points to the largest
// remainders (ties broken by area name for determinism).
// PRE: at least one entry is positive
// POST: ValidateFocus(result) == nil
func NormalizeFocus(focus map[string]int) (map[string]int, error) {
	if len(focus) == 0 {
		return nil, ErrFocusEmpty
	}
	total := 0
	for _, v := range focus {
		if v < 0 {
			return nil, ErrFocusNegative
		}
		total += v
	}
	if total == 0 {
		return nil, ErrFocusSum
	}

	type share struct {
		area      string
		whole     int
		remainder int
	}
	shares := make([]share, 0, len(focus))
	assigned := 0
	for area, v := range focus {
		scaled := v * 100
		s := share{area: area, whole: scaled / total, remainder: scaled % total}
		assigned += s.whole
		shares = append(shares, s)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		return shares[i].area < shares[j].area
	})
	for i := 0; assigned < 100; i++ {
		shares[i%len(shares)].whole++
		assigned++
	}

	out := make(map[string]int, len(shares))
	for _, s := range shares {
		out[s.area] = s.whole
	}
	return out, nil
}
