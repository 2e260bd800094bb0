package insights

import (
	"time"

	"github.com/google/uuid"
)

// idNamespace scopes insight IDs so that they never collide with name-based
// UUIDs minted elsewhere.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("finsight.insights"))

// stableID derives a deterministic ID from the detector type and its
// grouping key.
func stableID(t Type, key string) string {
	return uuid.NewSHA1(idNamespace, []byte(string(t)+"/"+key)).String()
}

// newInsight fills the identity fields shared by every detector.
func newInsight(t Type, key string, severity Severity, now time.Time) Insight {
	return Insight{
		ID:        stableID(t, key),
		Type:      t,
		Severity:  severity,
		CreatedAt: now,
	}
}
