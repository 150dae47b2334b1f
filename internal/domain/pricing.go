package domain

import "github.com/shopspring/decimal"

var (
	BasePrice          = decimal.RequireFromString("29.99")
	MonthlySurcharge   = decimal.NewFromInt(10)
	ThreeTimeSurcharge = decimal.NewFromInt(5)
	LightSurcharge     = decimal.NewFromInt(3)
)

// Price returns the unit price of a configuration. It is evaluated once, when
// the configuration is added to a cart.
func Price(c Configuration) decimal.Decimal {
	price := BasePrice
	if c.PillboxType == Monthly {
		price = price.Add(MonthlySurcharge)
	}
	if c.DoseSchedule == ThreeTimes {
		price = price.Add(ThreeTimeSurcharge)
	}
	if c.LightOption == WithLight {
		price = price.Add(LightSurcharge)
	}
	return price
}
