package notifier

import (
	"fmt"
	"strings"
	"time"

	"DugoutEdge/internal/model"
)

// FormatPassReport formats a full analysis pass into a Telegram message.
// skipped carries one reason line per item the pass dropped.
func FormatPassReport(opps []model.Opportunity, parlays []model.ParlayCombination, events int, skipped []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("⚾ <b>DugoutEdge Analysis</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Games analyzed: %d", events))
	if len(skipped) > 0 {
		b.WriteString(fmt.Sprintf(" (%d skipped)", len(skipped)))
	}
	b.WriteString("\n\n")

	if len(opps) == 0 {
		b.WriteString("No value opportunities found.\n")
	} else {
		b.WriteString(formatOpportunities(opps))
	}

	if len(parlays) > 0 {
		b.WriteString("\n")
		b.WriteString(formatParlays(parlays))
	}

	if s := FormatSkipped(skipped); s != "" {
		b.WriteString("\n")
		b.WriteString(s)
	}

	return b.String()
}

func formatOpportunities(opps []model.Opportunity) string {
	var b strings.Builder
	b.WriteString("🎯 <b>Value Bets:</b>\n")
	for _, o := range opps {
		b.WriteString(fmt.Sprintf("  %s | %s %s %s\n",
			o.Matchup, marketLabel(o.Market), o.Selection, formatOdds(o.Odds)))
		b.WriteString(fmt.Sprintf("    model %.1f%% vs implied %.1f%% | edge %+.1f%% | %s\n",
			o.ModelProb*100, o.ImpliedProb*100, o.Edge*100, o.Confidence))
		if o.Stake > 0 {
			b.WriteString(fmt.Sprintf("    stake $%.2f (%.1f%% of bankroll)\n",
				o.Stake, o.StakeFraction*100))
		}
		if o.StaleData {
			b.WriteString("    ⚠️ built from stale data\n")
		}
	}
	return b.String()
}

// FormatParlayReport formats the ranked parlay combinations on their own,
// for the /parlays command.
func FormatParlayReport(parlays []model.ParlayCombination) string {
	if len(parlays) == 0 {
		return "No parlay combinations cleared the probability floor."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚾ <b>DugoutEdge Parlays</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(formatParlays(parlays))
	return b.String()
}

func formatParlays(parlays []model.ParlayCombination) string {
	var b strings.Builder
	b.WriteString("🧩 <b>Parlays:</b>\n")
	for i, p := range parlays {
		b.WriteString(fmt.Sprintf("  %d. %s (%s risk)\n", i+1, p.Description, p.Risk))
		for _, leg := range p.Legs {
			b.WriteString(fmt.Sprintf("     • %s %s\n", leg.Selection, formatOdds(leg.Odds)))
		}
		b.WriteString(fmt.Sprintf("     prob %.1f%% | odds %s | pays $%.2f per $%.0f\n",
			p.Probability*100, formatOdds(p.AmericanOdds), p.Payout, p.Payout/p.DecimalOdds))
	}
	return b.String()
}

// FormatBankroll formats the staking state for the /bankroll command.
func FormatBankroll(state model.BankrollState) string {
	var b strings.Builder
	b.WriteString("💰 <b>Bankroll</b>\n\n")
	b.WriteString(fmt.Sprintf("Balance: $%.2f\n", state.Bankroll))
	b.WriteString(fmt.Sprintf("Kelly fraction: %.2f\n", state.KellyFraction))
	b.WriteString(fmt.Sprintf("Max stake: %.1f%% per bet\n", state.MaxStakeFraction*100))
	if n := len(state.RecentExposures); n > 0 {
		total := 0.0
		for _, e := range state.RecentExposures {
			total += e
		}
		b.WriteString(fmt.Sprintf("Recommended exposure, last %d passes: $%.2f\n", n, total))
	}
	if !state.UpdatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Updated: %s\n", state.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatSkipped lists the items a pass dropped, for log-style reporting.
func FormatSkipped(reasons []string) string {
	if len(reasons) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("⏭ <b>Skipped:</b>\n")
	for _, r := range reasons {
		b.WriteString(fmt.Sprintf("  %s\n", r))
	}
	return b.String()
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return strings.Join([]string{
		"⚾ <b>DugoutEdge</b>",
		"",
		"/analyze - run a full analysis pass now",
		"/parlays - show ranked parlay combinations",
		"/bankroll - show staking state",
		"/help - this message",
	}, "\n")
}

func marketLabel(m model.MarketType) string {
	switch m {
	case model.MarketMoneyline:
		return "ML"
	case model.MarketTotal:
		return "Total"
	case model.MarketSpread:
		return "RL"
	default:
		return string(m)
	}
}

// formatOdds renders American odds with the conventional explicit plus.
func formatOdds(odds int) string {
	if odds > 0 {
		return fmt.Sprintf("+%d", odds)
	}
	return fmt.Sprintf("%d", odds)
}
