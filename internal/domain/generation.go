package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Generation is one audit row per generate request. Only the candidate's name
// is kept from the document.
type Generation struct {
	ID        uuid.UUID     `json:"id"`
	RequestID string        `json:"request_id"`
	Name      string        `json:"name"`
	Filename  string        `json:"filename"`
	Engine    string        `json:"engine"`
	Locale    string        `json:"locale"`
	Pages     int           `json:"pages"`
	Bytes     int           `json:"bytes"`
	Duration  time.Duration `json:"duration"`
	Outcome   string        `json:"outcome"`
	ErrorCode string        `json:"error_code,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
