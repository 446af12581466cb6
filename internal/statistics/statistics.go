package statistics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// RoundResult is the outcome of a single round for one player
type RoundResult struct {
	Outcome    game.Outcome
	Bet        int  // stake on the table when the round was settled
	Net        int  // chips won (+) or lost (-)
	Bust       bool // player went over 21
	DealerBust bool
}

// FromResult converts a settled game result into a RoundResult
func FromResult(r game.Result, dealerBust bool) RoundResult {
	return RoundResult{
		Outcome:    r.Outcome,
		Bet:        r.Bet,
		Net:        r.Delta,
		Bust:       r.Bust,
		DealerBust: dealerBust,
	}
}

// Statistics accumulates results over many rounds
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Every per-round net, for median/percentiles

	Wins        int // includes blackjacks
	Losses      int
	Pushes      int
	Blackjacks  int
	Busts       int
	DealerBusts int

	NetChips int
	Wagered  int
	MaxWin   int
	MaxLoss  int
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch result.Outcome {
	case game.OutcomeBlackjack:
		s.Blackjacks++
		s.Wins++
	case game.OutcomeWin:
		s.Wins++
	case game.OutcomePush:
		s.Pushes++
	default:
		s.Losses++
	}
	if result.Bust {
		s.Busts++
	}
	if result.DealerBust {
		s.DealerBusts++
	}

	s.NetChips += result.Net
	s.Wagered += result.Bet
	if result.Net > s.MaxWin {
		s.MaxWin = result.Net
	}
	if -result.Net > s.MaxLoss {
		s.MaxLoss = -result.Net
	}
}

// Merge folds another set of statistics into s
func (s *Statistics) Merge(o *Statistics) {
	s.Rounds += o.Rounds
	s.SumNet += o.SumNet
	s.SumNet2 += o.SumNet2
	s.Values = append(s.Values, o.Values...)
	s.Wins += o.Wins
	s.Losses += o.Losses
	s.Pushes += o.Pushes
	s.Blackjacks += o.Blackjacks
	s.Busts += o.Busts
	s.DealerBusts += o.DealerBusts
	s.NetChips += o.NetChips
	s.Wagered += o.Wagered
	s.MaxWin = max(s.MaxWin, o.MaxWin)
	s.MaxLoss = max(s.MaxLoss, o.MaxLoss)
}

// Mean returns the average net chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the fraction of rounds won
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// ReturnPerUnit returns net chips per chip wagered (the player's edge)
func (s *Statistics) ReturnPerUnit() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return float64(s.NetChips) / float64(s.Wagered)
}

// Validate checks the tallies are internally consistent
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}
	if total := s.Wins + s.Losses + s.Pushes; total != s.Rounds {
		return fmt.Errorf("outcomes total (%d) does not match rounds (%d)", total, s.Rounds)
	}
	if s.Blackjacks > s.Wins {
		return fmt.Errorf("blackjacks (%d) exceed wins (%d)", s.Blackjacks, s.Wins)
	}
	if math.Abs(s.SumNet-float64(s.NetChips)) > 1e-6 {
		return fmt.Errorf("ledger mismatch: sum=%.2f net=%d", s.SumNet, s.NetChips)
	}
	return nil
}

// Summary renders a plain text report
func (s *Statistics) Summary() string {
	var b strings.Builder
	lo, hi := s.ConfidenceInterval95()
	pct := func(n int) float64 {
		if s.Rounds == 0 {
			return 0
		}
		return 100 * float64(n) / float64(s.Rounds)
	}

	fmt.Fprintf(&b, "Rounds:       %d\n", s.Rounds)
	fmt.Fprintf(&b, "Wins:         %d (%.1f%%)\n", s.Wins, pct(s.Wins))
	fmt.Fprintf(&b, "  Blackjacks: %d (%.1f%%)\n", s.Blackjacks, pct(s.Blackjacks))
	fmt.Fprintf(&b, "Losses:       %d (%.1f%%)\n", s.Losses, pct(s.Losses))
	fmt.Fprintf(&b, "  Busts:      %d (%.1f%%)\n", s.Busts, pct(s.Busts))
	fmt.Fprintf(&b, "Pushes:       %d (%.1f%%)\n", s.Pushes, pct(s.Pushes))
	fmt.Fprintf(&b, "Dealer busts: %d (%.1f%%)\n", s.DealerBusts, pct(s.DealerBusts))
	fmt.Fprintf(&b, "Net chips:    %+d over %d wagered (%.2f%%)\n", s.NetChips, s.Wagered, 100*s.ReturnPerUnit())
	fmt.Fprintf(&b, "Per round:    %.3f ± %.3f (95%% CI %.3f to %.3f)\n", s.Mean(), s.StdError(), lo, hi)
	fmt.Fprintf(&b, "Biggest win:  %d, biggest loss: %d\n", s.MaxWin, s.MaxLoss)
	return b.String()
}
