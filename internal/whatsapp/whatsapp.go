// Package whatsapp builds the pre-filled order messages that hand a checkout
// over to the shop's WhatsApp number. Messages are French and all amounts
// are whole FCFA, formatted with fr-FR digit grouping.
package whatsapp

import (
	"net/url"
	"strings"

	"boutika/internal/cart"
	"boutika/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frPrinter = message.NewPrinter(language.French)

// FormatPrice renders a whole-FCFA amount with French thousands grouping.
func FormatPrice(amount int64) string {
	return frPrinter.Sprintf("%d", amount)
}

// Builder assembles wa.me links for a configured shop number.
type Builder struct {
	phone string
}

// NewBuilder creates a link builder for the shop's number, given in
// international format without the leading "+".
func NewBuilder(phone string) *Builder {
	return &Builder{phone: phone}
}

// ProductMessage is the single-product order text used from the detail view.
func (b *Builder) ProductMessage(p model.Product, quantity int) string {
	var sb strings.Builder
	sb.WriteString("Bonjour, je souhaite commander ")
	sb.WriteString(frPrinter.Sprintf("%d", quantity))
	sb.WriteString(" x ")
	sb.WriteString(p.Name)
	sb.WriteString(" - ")
	sb.WriteString(FormatPrice(p.Price))
	sb.WriteString(" FCFA. Total: ")
	sb.WriteString(FormatPrice(p.Price * int64(quantity)))
	sb.WriteString(" FCFA")
	return sb.String()
}

// CartMessage is the multi-line order text used from the cart drawer, one
// line per cart entry plus the grand total.
func (b *Builder) CartMessage(lines []cart.Line, total int64) string {
	var sb strings.Builder
	sb.WriteString("Commande:\n")
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(frPrinter.Sprintf("%d", l.Quantity))
		sb.WriteString("x ")
		sb.WriteString(l.Product.Name)
		sb.WriteString(" (")
		sb.WriteString(FormatPrice(l.Product.Price))
		sb.WriteString(" FCFA)")
	}
	sb.WriteString("\n\nTotal: ")
	sb.WriteString(FormatPrice(total))
	sb.WriteString(" FCFA")
	return sb.String()
}

// Link wraps a message into a https://wa.me/ URL that opens the messaging
// app with the text pre-filled.
func (b *Builder) Link(msg string) string {
	return "https://wa.me/" + b.phone + "?text=" + url.QueryEscape(msg)
}

// ProductLink is Link(ProductMessage(p, quantity)).
func (b *Builder) ProductLink(p model.Product, quantity int) string {
	return b.Link(b.ProductMessage(p, quantity))
}

// CartLink is Link(CartMessage(lines, total)).
func (b *Builder) CartLink(lines []cart.Line, total int64) string {
	return b.Link(b.CartMessage(lines, total))
}
