package utils

import (
	"fmt"
	"strings"

	"github.com/Dan9191/card-tracker/internal/models"
)

const maskDots = "••••"

// NetworkName returns the display name for a card network
func NetworkName(n models.Network) string {
	switch n {
	case models.NetworkVisa:
		return "Visa"
	case models.NetworkMastercard:
		return "Mastercard"
	case models.NetworkAmex:
		return "American Express"
	case models.NetworkDiscover:
		return "Discover"
	default:
		return "Card"
	}
}

// NormalizeLastFour keeps the last four digits of a card number or suffix.
// Returns "" if fewer than four digits are present.
func NormalizeLastFour(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 4 {
		return ""
	}
	return d[len(d)-4:]
}

// MaskLastFour renders a masked card suffix, e.g. "•••• 1234"
func MaskLastFour(lastFour string) string {
	d := NormalizeLastFour(lastFour)
	if d == "" {
		return maskDots
	}
	return maskDots + " " + d
}

// CardLabel builds the short label used in lists and reminders,
// e.g. "Sapphire (Visa •••• 1234)"
func CardLabel(card models.Card) string {
	name := strings.TrimSpace(card.Name)
	if name == "" {
		name = NetworkName(card.Network)
	}
	return fmt.Sprintf("%s (%s %s)", name, NetworkName(card.Network), MaskLastFour(card.LastFour))
}
