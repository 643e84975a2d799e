// Package display renders the per-cycle terminal status summary.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/chiaswap/takebot/internal/domain"
)

const offerURLBase = "https://dexie.space/offers/"

// OfferLine is one ranked candidate with its classification and the decision
// taken for it.
type OfferLine struct {
	Offer    domain.EvaluatedOffer
	Band     domain.Band
	Decision string
}

// CycleStatus is everything one cycle reports.
type CycleStatus struct {
	Time           time.Time
	RefPrice       decimal.Decimal
	Balance        decimal.Decimal
	BaseSymbol     string
	SellTriggerPct decimal.Decimal
	BuyTriggerPct  decimal.Decimal
	Sell           []OfferLine
	Buy            []OfferLine
}

// Renderer renders cycle summaries.
type Renderer struct {
	header  lipgloss.Style
	section lipgloss.Style
	band    lipgloss.Style
	muted   lipgloss.Style
}

// NewRenderer creates a renderer with the default styles.
func NewRenderer() *Renderer {
	return &Renderer{
		header:  lipgloss.NewStyle().Bold(true),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		band:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render returns the full status block for one cycle.
func (r *Renderer) Render(st CycleStatus) string {
	var b strings.Builder

	b.WriteString(r.header.Render(st.Time.Format("2006-01-02 15:04:05")) + "\n")
	b.WriteString(fmt.Sprintf("sell %s if >= %s%% above market, buy if <= %s%% below market\n",
		st.BaseSymbol, st.SellTriggerPct.StringFixed(1), st.BuyTriggerPct.StringFixed(1)))
	b.WriteString(fmt.Sprintf("balance: %s %s | market price: $%s\n",
		st.Balance.StringFixed(4), st.BaseSymbol, st.RefPrice.StringFixed(4)))

	b.WriteString("\n" + r.section.Render(fmt.Sprintf("Offers (you sell %s):", st.BaseSymbol)) + "\n")
	r.renderLines(&b, st.Sell)

	b.WriteString("\n" + r.section.Render(fmt.Sprintf("Offers (you buy %s):", st.BaseSymbol)) + "\n")
	r.renderLines(&b, st.Buy)

	return b.String()
}

func (r *Renderer) renderLines(b *strings.Builder, lines []OfferLine) {
	if len(lines) == 0 {
		b.WriteString(r.muted.Render("  none") + "\n")
		return
	}
	for _, l := range lines {
		prefix := ""
		if label := l.Band.String(); label != "" {
			prefix = r.band.Render(label) + " "
		}
		b.WriteString(fmt.Sprintf("  %s%s [%s]\n", prefix, l.Offer.String(), l.Decision))
		b.WriteString(r.muted.Render("  "+offerURLBase+l.Offer.Raw.ID) + "\n")
	}
}
