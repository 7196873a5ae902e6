package payment

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference builds a transaction reference of the form PREFIX-<unix>-<6 chars>.
func NewReference(prefix string, now time.Time) string {
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			n = big.NewInt(now.UnixNano() % int64(len(referenceAlphabet)))
		}
		suffix[i] = referenceAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.Unix(), suffix)
}
