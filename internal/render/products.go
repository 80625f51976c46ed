package render

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"golang.org/x/text/currency"
	"io"
	"strings"
)

const NoProductsText = "No products match your search"

func RenderProducts(w io.Writer, products []catalog.Product, unit currency.Unit) error {
	lr := lipgloss.NewRenderer(w)
	dim := lr.NewStyle().Foreground(Muted)
	price := lr.NewStyle().Bold(true).Foreground(Accent)

	if len(products) == 0 {
		_, err := fmt.Fprintln(w, dim.Render(NoProductsText))
		return err
	}

	width := 0
	for _, p := range products {
		width = max(width, lipgloss.Width(p.Name))
	}

	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "%-*s  %s", width, p.Name, price.Render(domain.NewMoney(p.Price, unit).String()))
		if p.Section != "" {
			b.WriteString("  " + dim.Render(p.Section))
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write products: %w", err)
	}
	return nil
}
