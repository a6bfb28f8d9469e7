package bot

import (
	"fmt"
	"strings"

	"github.com/okozak/pricetrail/internal/models"
)

// formatAlerts renders the digest message. Alerts arrive already sorted by
// drop percentage, largest first.
func formatAlerts(alerts []models.Alert) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📉 %d price drop(s) spotted:\n", len(alerts))
	for _, alert := range alerts {
		fmt.Fprintf(&b, "\n%s: %s → %s (-%s%%)",
			alert.ProductName,
			alert.PreviousPrice.StringFixed(2),
			alert.CurrentPrice.StringFixed(2),
			alert.DropPercentage.StringFixed(1),
		)
	}

	return b.String()
}
