package storage_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"despesas/internal/core"
	"despesas/internal/storage"
	"despesas/internal/storage/memory"
)

func sample() []core.Expense {
	return []core.Expense{
		{ID: 1718000000000, Description: "Lunch", Amount: core.Money{Cents: 2550}, Payer: "Luiz", Category: "Alimentação"},
		{ID: 1718000000001, Description: "Hotel", Amount: core.Money{Cents: 31999}, Payer: "Michely", Category: "Hospedagem"},
		{ID: 1718000000005, Description: "Bus", Amount: core.Money{Cents: 1}, Payer: "Luiz", Category: "Removed"},
		{ID: 1718000000009, Description: "House", Amount: core.Money{Cents: core.MaxAmountCents}, Payer: "Luiz", Category: "Hospedagem"},
		{ID: 1718000000010, Description: "Car", Amount: core.Money{Cents: 9999999999999}, Payer: "Michely", Category: "Transporte"},
	}
}

func TestExpenseAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := storage.NewExpenseAdapter(memory.New(), "")

	want := sample()
	if err := a.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := a.Load(ctx)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestExpenseAdapterSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	a := storage.NewExpenseAdapter(memory.New(), "")
	if err := a.Save(ctx, sample()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := a.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if got := a.Load(ctx); len(got) != 0 {
		t.Fatalf("expected empty collection, got %+v", got)
	}
}

func TestExpenseAdapterLoadDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	cases := map[string][]byte{
		"garbage":      []byte("not json"),
		"object":       []byte(`{"id":1}`),
		"wrong types":  []byte(`[{"id":"x"}]`),
		"null":         []byte("null"),
		"empty string": []byte(""),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			slot := memory.New()
			if err := slot.Put(ctx, storage.DefaultExpenseKey, raw); err != nil {
				t.Fatalf("put: %v", err)
			}
			got := storage.NewExpenseAdapter(slot, "").Load(ctx)
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil collection, got %#v", got)
			}
		})
	}

	if got := storage.NewExpenseAdapter(memory.New(), "").Load(ctx); got == nil || len(got) != 0 {
		t.Fatalf("missing key must load as empty, got %#v", got)
	}
}

func TestDecodeStoredFormat(t *testing.T) {
	raw := []byte(`[{"id":1718000000000,"descricao":"Almoço","valor":25.5,"quemPagou":"Luiz","categoria":"Alimentação"}]`)
	got, skipped, err := storage.DecodeExpenses(raw)
	if err != nil || skipped != 0 {
		t.Fatalf("decode: skipped=%d err=%v", skipped, err)
	}
	want := core.Expense{ID: 1718000000000, Description: "Almoço", Amount: core.Money{Cents: 2550}, Payer: "Luiz", Category: "Alimentação"}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("unexpected decode: %+v", got)
	}

	enc, err := storage.EncodeExpenses(got)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(enc) != string(raw) {
		t.Fatalf("expected %s, got %s", raw, enc)
	}
}

func TestDecodeSkipsInvalidRecords(t *testing.T) {
	raw := []byte(`[
		{"id":1,"descricao":"ok","valor":12.5,"quemPagou":"Luiz","categoria":"Lazer"},
		{"id":2,"descricao":"huge","valor":1e30,"quemPagou":"Luiz","categoria":"Lazer"},
		{"id":3,"descricao":"negative","valor":-3,"quemPagou":"Luiz","categoria":"Lazer"},
		{"id":4,"descricao":"zero","valor":0,"quemPagou":"Luiz","categoria":"Lazer"},
		{"id":5,"descricao":"no amount","quemPagou":"Luiz","categoria":"Lazer"},
		{"id":6,"descricao":"","valor":1,"quemPagou":"Luiz","categoria":"Lazer"},
		{"id":7,"descricao":"ok too","valor":1,"quemPagou":"Michely","categoria":"Lazer"}
	]`)
	got, skipped, err := storage.DecodeExpenses(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if skipped != 5 || len(got) != 2 || got[0].ID != 1 || got[1].ID != 7 {
		t.Fatalf("expected ids 1 and 7 with 5 skipped, got %+v skipped=%d", got, skipped)
	}
	if got[0].Amount.Cents != 1250 {
		t.Fatalf("unexpected amount %s", got[0].Amount)
	}
}

func TestExpenseAdapterSaveError(t *testing.T) {
	slot := memory.New()
	slot.FailPut = errors.New("quota exceeded")
	err := storage.NewExpenseAdapter(slot, "").Save(context.Background(), sample())
	if err == nil || !errors.Is(err, slot.FailPut) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

func TestCategoryAdapter(t *testing.T) {
	ctx := context.Background()
	slot := memory.New()
	a := storage.NewCategoryAdapter(slot, "")

	if _, ok := a.Load(ctx); ok {
		t.Fatalf("expected nothing stored")
	}
	if err := a.Save(ctx, []string{"Lazer", "Pets"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := a.Load(ctx)
	if !ok || !reflect.DeepEqual(got, []string{"Lazer", "Pets"}) {
		t.Fatalf("unexpected load: %v ok=%v", got, ok)
	}

	if err := slot.Put(ctx, storage.DefaultCategoryKey, []byte("{")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := a.Load(ctx); ok {
		t.Fatalf("malformed data must fall back to the seed list")
	}
}
