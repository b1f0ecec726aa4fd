/*
Package randx generates identifiers used for log correlation.
*/
package randx

import (
	"strings"

	"github.com/google/uuid"
)

// OperationID returns a UUID v4 that tags one GraphQL round trip in the logs.
func OperationID() string {
	return uuid.New().String()
}

// WriteID returns a short identifier for a snapshot write, used to pair "scheduled" and "written" log lines.
func WriteID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
