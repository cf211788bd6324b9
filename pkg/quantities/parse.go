// Package quantities parses the comma-separated production quantity lists
// entered by users.
package quantities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is wrapped by every error returned from Parse.
var ErrInvalid = errors.New("invalid quantity list")

// Parse converts input such as "100, 200,300" into quantities. Tokens are
// trimmed; empty, non-integer and non-positive tokens are rejected.
func Parse(input string) ([]int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: quantity list is empty", ErrInvalid)
	}

	tokens := strings.Split(trimmed, ",")
	result := make([]int, 0, len(tokens))
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("%w: quantity %d is empty", ErrInvalid, i+1)
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: quantity %q is not an integer", ErrInvalid, token)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: quantity %q must be positive", ErrInvalid, token)
		}
		result = append(result, n)
	}
	return result, nil
}

// Format renders quantities in the canonical form accepted by Parse.
func Format(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
