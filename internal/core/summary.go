package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// PayerAmount represents the amount paid by one participant.
type PayerAmount struct {
	Name   string
	Amount Money
}

// Report is the derived view shown next to the expense list.
type Report struct {
	Total      Money
	ByPayer    []PayerAmount
	ByCategory []CategoryAmount
}

// TotalOverall sums every amount.
func TotalOverall(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalByPayer sums amounts per configured payer. Every payer is present in the
// result, with zero when nothing matches. Expenses paid by someone outside the
// list are not counted.
func TotalByPayer(expenses []Expense, payers []string) map[string]Money {
	out := make(map[string]Money, len(payers))
	for _, p := range payers {
		out[p] = Money{}
	}
	for _, e := range expenses {
		if cur, ok := out[e.Payer]; ok {
			out[e.Payer] = cur.Add(e.Amount)
		}
	}
	return out
}

// TotalByCategory sums amounts per category name in first-appearance order.
func TotalByCategory(expenses []Expense) []CategoryAmount {
	var out []CategoryAmount
	index := map[string]int{}
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryAmount{Name: e.Category})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// Summarize computes the full report from a snapshot. Nothing is cached.
func Summarize(expenses []Expense, payers []string) Report {
	byPayer := TotalByPayer(expenses, payers)
	r := Report{
		Total:      TotalOverall(expenses),
		ByPayer:    make([]PayerAmount, 0, len(payers)),
		ByCategory: TotalByCategory(expenses),
	}
	for _, p := range payers {
		r.ByPayer = append(r.ByPayer, PayerAmount{Name: p, Amount: byPayer[p]})
	}
	return r
}
