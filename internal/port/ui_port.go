package port

import (
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"io"
)

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

type Renderer interface {
	Render(w io.Writer, snapshot domain.Snapshot) error
}

type Notifier interface {
	Notify(kind NotificationKind, message string)
}
