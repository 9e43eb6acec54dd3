package loyalty

import "github.com/shopspring/decimal"

// ClientStats is the client's order history as seen by the loyalty schedule:
// the number of delivered orders and the cumulative amount spent on them. A
// client with no history resolves to the zero value.
type ClientStats struct {
	TotalOrders  int
	TotalRevenue decimal.Decimal
}
