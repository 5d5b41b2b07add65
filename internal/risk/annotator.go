package risk

import (
	"time"

	"github.com/smartdetector/moderation/internal/models"
)

// AtRisk reports whether any fragment of a classification result was labeled
// positive. A post is at risk if either its title or its body was flagged.
func AtRisk(labels []int) bool {
	for _, label := range labels {
		if label == 1 {
			return true
		}
	}
	return false
}

// Annotate stamps the item with the classification verdict. When any label is
// positive the item is flagged with score 1 and a detection timestamp;
// otherwise the risk fields keep their zero values, so RiskDetectedAt is set
// iff RiskFlag is true.
func Annotate(item *models.ContentItem, labels []int) {
	if !AtRisk(labels) {
		return
	}
	now := time.Now()
	item.RiskFlag = true
	item.RiskScore = 1
	item.RiskDetectedAt = &now
}
