package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// batchIDPattern matches ids of the form PREFIX-YYYYMMDD-NNN.
var batchIDPattern = regexp.MustCompile(`^[A-Z]+-\d{8}-\d{3}$`)

// GenerateBatchID produces a batch id of the form PREFIX-YYYYMMDD-NNN, where
// NNN is a random 3-digit suffix. Uniqueness is only probabilistic; callers
// must check the store and retry on collision.
func GenerateBatchID(prefix string, date time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to generate batch id suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, date.Format("20060102"), n.Int64()), nil
}

// IsValidBatchID reports whether the given string has the batch id shape.
func IsValidBatchID(id string) bool {
	return batchIDPattern.MatchString(id)
}
