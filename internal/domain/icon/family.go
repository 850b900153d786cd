// Package icon implements the icon derivation pipeline: aspect-ratio
// validation, the per-family size tables, Lanczos rendering to lossless PNG,
// and the batch runner that ties them together.
package icon

import (
	"fmt"
	"strings"

	platformerrors "storeicons/internal/platform/errors"
)

// Family selects which aspect-ratio policy and size table apply to a run.
type Family string

const (
	FamilySquare Family = "square"
	FamilyWide   Family = "wide"
)

// ParseFamily maps user input to a Family.
func ParseFamily(s string) (Family, error) {
	switch Family(strings.ToLower(strings.TrimSpace(s))) {
	case FamilySquare:
		return FamilySquare, nil
	case FamilyWide:
		return FamilyWide, nil
	default:
		return "", platformerrors.New(platformerrors.KindConfig,
			"parse family", fmt.Sprintf("unknown icon family %q", s))
	}
}

// AspectPolicy describes the accepted aspect-ratio window for a family.
// Tolerance is a fraction of the target ratio, strictly between 0 and 1.
type AspectPolicy struct {
	TargetRatio float64
	Tolerance   float64
}

// Tolerances are a shipped product decision; keep them exactly.
var policies = map[Family]AspectPolicy{
	FamilySquare: {TargetRatio: 1.0, Tolerance: 0.05},
	FamilyWide:   {TargetRatio: 310.0 / 150.0, Tolerance: 0.10},
}

// PolicyFor returns the aspect policy of a family.
func PolicyFor(f Family) (AspectPolicy, error) {
	policy, ok := policies[f]
	if !ok {
		return AspectPolicy{}, platformerrors.New(platformerrors.KindConfig,
			"policy lookup", fmt.Sprintf("unknown icon family %q", f))
	}
	return policy, nil
}
