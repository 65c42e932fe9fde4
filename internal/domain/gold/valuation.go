package gold

import "github.com/shopspring/decimal"

// Holding is the derived position of one purchase
type Holding struct {
	SoldGrams      decimal.Decimal
	RemainingGrams decimal.Decimal
	RemainingValue decimal.Decimal
	FullySold      bool
}

// Valuate computes how much of a purchase is left. Sales linked to other
// purchases are ignored.
func Valuate(p *Purchase, sales []Sale) Holding {
	sold := decimal.Zero
	for i := range sales {
		s := &sales[i]
		if s.PurchaseID == nil || *s.PurchaseID != p.ID {
			continue
		}
		sold = sold.Add(s.Grams())
	}
	remaining := decimal.Max(decimal.Zero, p.Grams.Sub(sold))
	return Holding{
		SoldGrams:      sold,
		RemainingGrams: remaining,
		RemainingValue: remaining.Mul(p.PricePerGram),
		FullySold:      !remaining.IsPositive(),
	}
}

// Summary totals a user's gold position
type Summary struct {
	TotalGrams     decimal.Decimal
	RemainingGrams decimal.Decimal
	InvestedAmount decimal.Decimal
	RemainingValue decimal.Decimal
	TotalSales     decimal.Decimal
	RealizedProfit decimal.Decimal
	PurchaseCount  int
	SaleCount      int
}

// Summarize totals every purchase and sale
func Summarize(purchases []Purchase, sales []Sale) Summary {
	s := Summary{
		TotalGrams:     decimal.Zero,
		RemainingGrams: decimal.Zero,
		InvestedAmount: decimal.Zero,
		RemainingValue: decimal.Zero,
		TotalSales:     decimal.Zero,
		RealizedProfit: decimal.Zero,
		PurchaseCount:  len(purchases),
		SaleCount:      len(sales),
	}
	for i := range purchases {
		p := &purchases[i]
		h := Valuate(p, sales)
		s.TotalGrams = s.TotalGrams.Add(p.Grams)
		s.RemainingGrams = s.RemainingGrams.Add(h.RemainingGrams)
		s.InvestedAmount = s.InvestedAmount.Add(p.InvoiceValue)
		s.RemainingValue = s.RemainingValue.Add(h.RemainingValue)
	}
	for i := range sales {
		s.TotalSales = s.TotalSales.Add(sales[i].SaleValue)
		s.RealizedProfit = s.RealizedProfit.Add(sales[i].ProfitLoss)
	}
	return s
}
