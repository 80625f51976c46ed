package render

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
	"io"
	"sync"
)

// Notification texts shown to the shopper.
const (
	MsgEmptyCart     = "Please add items to your cart before checking out"
	MsgMissingFields = "Please fill in all required fields"
)

func MsgAdded(name string) string {
	return fmt.Sprintf("Added %s to cart!", name)
}

func MsgRemoved(name string) string {
	return fmt.Sprintf("Removed %s from cart", name)
}

func MsgOrderSaved(target string) string {
	return fmt.Sprintf("Order placed successfully and saved to %s!", target)
}

func MsgOrderNotSaved(target string) string {
	return fmt.Sprintf("Order placed but failed to save to %s. Please try again.", target)
}

type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	logger *zap.Logger
	styles map[port.NotificationKind]lipgloss.Style
}

var _ port.Notifier = (*Notifier)(nil)

func NewNotifier(out io.Writer, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	lr := lipgloss.NewRenderer(out)
	base := lr.NewStyle().Bold(true)

	return &Notifier{
		out:    out,
		logger: logger,
		styles: map[port.NotificationKind]lipgloss.Style{
			port.NotifySuccess: base.Foreground(Accent),
			port.NotifyError:   base.Foreground(Destructive),
			port.NotifyInfo:    base.Foreground(Info),
		},
	}
}

func (n *Notifier) Notify(kind port.NotificationKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	style, ok := n.styles[kind]
	if !ok {
		style = n.styles[port.NotifyInfo]
	}

	if _, err := fmt.Fprintln(n.out, style.Render(message)); err != nil {
		n.logger.Warn("notification not shown", zap.Error(err))
	}

	if kind == port.NotifyError {
		n.logger.Warn("notification", zap.String("kind", string(kind)), zap.String("message", message))
		return
	}
	n.logger.Debug("notification", zap.String("kind", string(kind)), zap.String("message", message))
}
