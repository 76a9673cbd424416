package subscriptions

import "fmt"

// WarningTier classifies how close a subscriber is to exhausting the
// monthly quota. Only TierBlocked exposes the renew action.
type WarningTier string

const (
	TierNone    WarningTier = "none"
	TierWarning WarningTier = "warning"
	TierDanger  WarningTier = "danger"
	TierBlocked WarningTier = "blocked"
)

// Thresholds in remaining hours. Default values pending product
// confirmation; kept as variables so a config override stays cheap.
const (
	blockedBelowHours = 0
	dangerBelowHours  = 2
	warningBelowHours = 4
)

// Warning is the descriptor handed to the booking UI.
type Warning struct {
	Tier      WarningTier
	HoursLeft float64
	Message   string
}

// WarningFor derives the quota warning from the remaining hours:
// <=0 blocked, <=2 danger, <=4 warning, otherwise none.
func WarningFor(hoursLeft float64) Warning {
	w := Warning{HoursLeft: hoursLeft}
	switch {
	case hoursLeft <= blockedBelowHours:
		w.Tier = TierBlocked
		w.Message = "Quota mensuel épuisé. Renouvelez votre abonnement pour réserver."
	case hoursLeft <= dangerBelowHours:
		w.Tier = TierDanger
		w.Message = fmt.Sprintf("Attention : il ne vous reste que %.0fh ce mois-ci.", hoursLeft)
	case hoursLeft <= warningBelowHours:
		w.Tier = TierWarning
		w.Message = fmt.Sprintf("Il vous reste %.0fh sur votre quota mensuel.", hoursLeft)
	default:
		w.Tier = TierNone
	}
	return w
}

// AllowsRenewal reports whether the renew-subscription action should
// be shown. Only the blocked tier exposes it.
func (w Warning) AllowsRenewal() bool { return w.Tier == TierBlocked }
