// Package render draws the cart and transient notifications in the terminal.
package render

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"golang.org/x/text/currency"
	"io"
	"strings"
)

var (
	Primary     = lipgloss.Color("#101F38")
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#6B7280")
	Destructive = lipgloss.Color("#e53935")
	Info        = lipgloss.Color("#2196F3")
)

const EmptyCartText = "Your cart is empty"

type CartRenderer struct {
	currency currency.Unit
}

var _ port.Renderer = (*CartRenderer)(nil)

func NewCartRenderer(unit currency.Unit) *CartRenderer {
	return &CartRenderer{currency: unit}
}

// Render redraws the whole cart view: both count badges, the line list and
// the total. Every display of the count goes through here.
func (r *CartRenderer) Render(w io.Writer, snapshot domain.Snapshot) error {
	lr := lipgloss.NewRenderer(w)

	title := lr.NewStyle().Bold(true).Foreground(Primary)
	badge := lr.NewStyle().Bold(true).Foreground(Accent)
	dim := lr.NewStyle().Foreground(Muted)
	box := lr.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	count := snapshot.Count()

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		title.Render("Cart"), " ", badge.Render(fmt.Sprintf("[%d]", count)))

	var body strings.Builder
	if snapshot.IsEmpty() {
		body.WriteString(dim.Render(EmptyCartText))
	} else {
		width := 0
		for _, item := range snapshot.Items {
			width = max(width, lipgloss.Width(item.Name))
		}
		for i, item := range snapshot.Items {
			if i > 0 {
				body.WriteString("\n")
			}
			price := domain.NewMoney(item.Price, r.currency).String()
			fmt.Fprintf(&body, "%2d. %-*s  %s  %s",
				i+1, width, item.Name, price, dim.Render(item.ID.String()))
		}
	}

	total := domain.NewMoney(snapshot.Total(), r.currency).String()
	footer := lipgloss.JoinHorizontal(lipgloss.Center,
		badge.Render(fmt.Sprintf("Items: %d", count)), "   ", title.Render("Total: "+total))

	view := lipgloss.JoinVertical(lipgloss.Left, header, box.Render(body.String()), footer)
	if _, err := fmt.Fprintln(w, view); err != nil {
		return fmt.Errorf("write cart view: %w", err)
	}
	return nil
}
