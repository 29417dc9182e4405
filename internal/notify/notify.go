// Package notify delivers fire-and-forget admin notifications. Delivery
// failures are the caller's to log, never to propagate: a lost
// notification must not fail the request that triggered it.
package notify

import (
	"log/slog"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

type Notifier interface {
	ContactReceived(lead *models.ContactLead) error
}

// LogNotifier records the notification in the server log. It stands in
// for outbound email, which this service does not send itself.
type LogNotifier struct {
	Log *slog.Logger
}

func (n *LogNotifier) ContactReceived(lead *models.ContactLead) error {
	n.Log.Info("contact form submission received",
		"name", lead.Name,
		"email", lead.Email,
	)
	return nil
}
