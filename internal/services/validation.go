package services

import (
	"fmt"
	"unicode"

	"github.com/yukikurage/task-tracker/internal/constants"
)

// validatePassword applies the password policy: minimum length, at least one
// uppercase letter and at least one digit, and a matching confirmation.
// Failures are recorded on the given ValidationError.
func validatePassword(password, confirm string, verr *ValidationError) {
	if password != confirm {
		verr.add("password_confirm", "passwords do not match")
	}

	if len(password) < constants.MinPasswordLength {
		verr.add("password", fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
		return
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasDigit {
		verr.add("password", "password must contain an uppercase letter and a digit")
	}
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
