package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTransactionID returns a gateway-safe transaction id of the form TXN-<32 hex>.
func GenerateTransactionID() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
