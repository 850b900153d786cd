package icon

import (
	"fmt"

	platformerrors "storeicons/internal/platform/errors"
)

// Validate gates a source image's aspect ratio against the family policy.
// The window [target*(1-tolerance), target*(1+tolerance)] is inclusive on
// both ends. Pure; no side effects.
func Validate(width, height int, policy AspectPolicy) error {
	if width <= 0 || height <= 0 {
		return platformerrors.New(platformerrors.KindInvalidImage, "validate",
			fmt.Sprintf("degenerate image dimensions %dx%d", width, height))
	}
	if policy.Tolerance <= 0 || policy.Tolerance >= 1 {
		return platformerrors.New(platformerrors.KindConfig, "validate",
			fmt.Sprintf("tolerance %v outside (0,1)", policy.Tolerance))
	}

	observed := float64(width) / float64(height)
	lo := policy.TargetRatio * (1 - policy.Tolerance)
	hi := policy.TargetRatio * (1 + policy.Tolerance)
	if observed < lo || observed > hi {
		return platformerrors.New(platformerrors.KindAspectRatio, "validate",
			fmt.Sprintf("aspect ratio %.4f outside allowed [%.4f, %.4f] (target %.4f)",
				observed, lo, hi, policy.TargetRatio))
	}
	return nil
}
