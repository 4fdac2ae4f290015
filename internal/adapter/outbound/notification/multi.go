package notification

import (
	"context"
	"errors"
	"strings"

	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
)

// MultiNotifier fans an alert out to several channels. Every channel is
// attempted; errors are joined so a failing channel does not starve the rest.
type MultiNotifier struct {
	notifiers []outbound.AlertNotifier
}

var _ outbound.AlertNotifier = (*MultiNotifier)(nil)

// NewMultiNotifier wraps the given notifiers. With exactly one notifier it is
// returned unwrapped.
func NewMultiNotifier(notifiers ...outbound.AlertNotifier) outbound.AlertNotifier {
	if len(notifiers) == 1 {
		return notifiers[0]
	}
	return &MultiNotifier{notifiers: notifiers}
}

func (m *MultiNotifier) Channel() string {
	names := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		names = append(names, n.Channel())
	}
	return strings.Join(names, "+")
}

func (m *MultiNotifier) Recipient() string {
	recipients := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		recipients = append(recipients, n.Recipient())
	}
	return strings.Join(recipients, ",")
}

func (m *MultiNotifier) SendSecurityAlert(ctx context.Context, notification outbound.AlertNotification) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.SendSecurityAlert(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
