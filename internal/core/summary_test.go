package core

import "testing"

func exp(id int64, payer string, cents int64, category string) Expense {
	return Expense{ID: id, Description: "d", Amount: Money{Cents: cents}, Payer: payer, Category: category}
}

func TestTotalsSingleExpense(t *testing.T) {
	list := []Expense{exp(1, "Luiz", 2550, "Alimentação")}

	if got := TotalOverall(list); got.Cents != 2550 {
		t.Fatalf("expected total 25.50, got %s", got)
	}
	by := TotalByPayer(list, DefaultPayers)
	if by["Luiz"].Cents != 2550 {
		t.Fatalf("expected Luiz 25.50, got %s", by["Luiz"])
	}
	m, ok := by["Michely"]
	if !ok || !m.IsZero() || m.String() != "0.00" {
		t.Fatalf("expected Michely 0.00, got %s (present=%v)", m, ok)
	}
}

func TestTotalByPayerSums(t *testing.T) {
	list := []Expense{
		exp(1, "Michely", 1000, "Lazer"),
		exp(2, "Michely", 1525, "Transporte"),
	}
	if got := TotalByPayer(list, DefaultPayers)["Michely"]; got.String() != "25.25" {
		t.Fatalf("expected 25.25, got %s", got)
	}
}

func TestPayerTotalsAddUpToOverall(t *testing.T) {
	list := []Expense{
		exp(1, "Luiz", 1, "a"),
		exp(2, "Michely", 99999, "b"),
		exp(3, "Luiz", 12345, "a"),
		exp(4, "Michely", 7, "c"),
	}
	var sum Money
	for _, v := range TotalByPayer(list, DefaultPayers) {
		sum = sum.Add(v)
	}
	if sum != TotalOverall(list) {
		t.Fatalf("payer totals %s differ from overall %s", sum, TotalOverall(list))
	}
}

func TestTotalsEmpty(t *testing.T) {
	if !TotalOverall(nil).IsZero() {
		t.Fatalf("expected zero total")
	}
	by := TotalByPayer(nil, DefaultPayers)
	if len(by) != len(DefaultPayers) {
		t.Fatalf("expected an entry per payer, got %v", by)
	}
}

func TestSummarize(t *testing.T) {
	list := []Expense{
		exp(1, "Luiz", 1000, "Lazer"),
		exp(2, "Michely", 500, "Transporte"),
		exp(3, "Luiz", 250, "Lazer"),
	}
	r := Summarize(list, DefaultPayers)
	if r.Total.Cents != 1750 {
		t.Fatalf("unexpected total %s", r.Total)
	}
	if len(r.ByPayer) != 2 || r.ByPayer[0].Name != "Luiz" || r.ByPayer[0].Amount.Cents != 1250 || r.ByPayer[1].Amount.Cents != 500 {
		t.Fatalf("unexpected payer breakdown %+v", r.ByPayer)
	}
	if len(r.ByCategory) != 2 || r.ByCategory[0].Name != "Lazer" || r.ByCategory[0].Amount.Cents != 1250 {
		t.Fatalf("unexpected category breakdown %+v", r.ByCategory)
	}
}
