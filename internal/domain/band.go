package domain

import "github.com/shopspring/decimal"

// Band is an advisory classification of how favorable an offer's deviation is
// for the taker. Display only; trigger decisions use the configured thresholds.
type Band int

const (
	BandNeutral Band = iota
	BandGood
	BandSuper
	BandMega
	BandPoor
)

// String returns the display label of the band.
func (b Band) String() string {
	switch b {
	case BandMega:
		return "MEGA DEAL (3%+)"
	case BandSuper:
		return "SUPER DEAL (2%+)"
	case BandGood:
		return "Good deal (1%+)"
	case BandPoor:
		return "Bad deal (1%+ against)"
	default:
		return ""
	}
}

var (
	bandOne   = decimal.NewFromInt(1)
	bandTwo   = decimal.NewFromInt(2)
	bandThree = decimal.NewFromInt(3)
)

// ClassifyBand maps a deviation to its band. For sell-base offers a positive
// deviation is favorable, for buy-base a negative one.
func ClassifyBand(direction Direction, deviationPct decimal.Decimal) Band {
	favorable := deviationPct
	if direction == DirectionBuyBase {
		favorable = deviationPct.Neg()
	}

	switch {
	case favorable.GreaterThanOrEqual(bandThree):
		return BandMega
	case favorable.GreaterThanOrEqual(bandTwo):
		return BandSuper
	case favorable.GreaterThanOrEqual(bandOne):
		return BandGood
	case favorable.LessThanOrEqual(bandOne.Neg()):
		return BandPoor
	default:
		return BandNeutral
	}
}
