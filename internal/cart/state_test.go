package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/storefrontlabs/storefront-api/internal/catalog"
)

func product(id string, price string) catalog.Product {
	p, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return catalog.Product{ID: catalog.ProductID(id), Title: "Product " + id, Price: p}
}

func assertAggregates(t *testing.T, s State) {
	t.Helper()
	count := 0
	total := decimal.Zero
	for _, item := range s.Items {
		count += item.Quantity
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if s.ItemCount != count {
		t.Fatalf("item count drifted: state=%d recomputed=%d", s.ItemCount, count)
	}
	if !s.Total.Equal(total) {
		t.Fatalf("total drifted: state=%s recomputed=%s", s.Total, total)
	}
}

func TestAddDistinctProducts(t *testing.T) {
	t.Parallel()

	s := Empty()
	prices := []string{"10", "5.5", "0.01", "99.99"}
	for i, price := range prices {
		s = s.Add(product(string(rune('a'+i)), price))
		assertAggregates(t, s)
	}

	if s.ItemCount != len(prices) {
		t.Fatalf("expected %d items, got %d", len(prices), s.ItemCount)
	}
	want, _ := decimal.NewFromString("115.50")
	if !s.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, s.Total)
	}
}

func TestAddExistingIncrementsOnlyThatLine(t *testing.T) {
	t.Parallel()

	p1 := product("1", "10")
	p2 := product("2", "5")

	s := Empty().Add(p1).Add(p2).Add(p1)

	if len(s.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(s.Items))
	}
	if s.Items[0].Product.ID != "1" || s.Items[0].Quantity != 2 {
		t.Fatalf("expected line 1 qty 2, got %+v", s.Items[0])
	}
	if s.Items[1].Product.ID != "2" || s.Items[1].Quantity != 1 {
		t.Fatalf("expected line 2 untouched, got %+v", s.Items[1])
	}
	assertAggregates(t, s)
}

func TestInsertionOrderStableAcrossQuantityChanges(t *testing.T) {
	t.Parallel()

	s := Empty().Add(product("1", "1")).Add(product("2", "2")).Add(product("3", "3"))
	s = s.UpdateQuantity("1", 9)
	s = s.Add(product("2", "2"))

	ids := []catalog.ProductID{"1", "2", "3"}
	for i, want := range ids {
		if s.Items[i].Product.ID != want {
			t.Fatalf("expected order %v, got %+v", ids, s.Items)
		}
	}
}

func TestUpdateQuantity(t *testing.T) {
	t.Parallel()

	s := Empty().Add(product("1", "10")).Add(product("2", "5"))

	s = s.UpdateQuantity("1", 4)
	if s.Items[0].Quantity != 4 {
		t.Fatalf("expected qty 4, got %d", s.Items[0].Quantity)
	}
	assertAggregates(t, s)

	s = s.UpdateQuantity("1", 0)
	if len(s.Items) != 1 || s.Items[0].Product.ID != "2" {
		t.Fatalf("qty 0 should remove the line, got %+v", s.Items)
	}
	assertAggregates(t, s)

	s = s.UpdateQuantity("2", -3)
	if len(s.Items) != 0 {
		t.Fatalf("negative qty should remove the line, got %+v", s.Items)
	}
	assertAggregates(t, s)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	t.Parallel()

	s := Empty().Add(product("1", "10"))
	got := s.Remove("nope")

	if len(got.Items) != 1 || got.ItemCount != 1 {
		t.Fatalf("remove of absent id changed state: %+v", got)
	}
	assertAggregates(t, got)
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := Empty().Add(product("1", "10")).Add(product("2", "5")).Clear()
	if len(s.Items) != 0 || s.ItemCount != 0 || !s.Total.IsZero() {
		t.Fatalf("clear should zero everything, got %+v", s)
	}
}

func TestValueSemantics(t *testing.T) {
	t.Parallel()

	s1 := Empty().Add(product("1", "10"))
	s2 := s1.Add(product("1", "10"))

	if s1.Items[0].Quantity != 1 {
		t.Fatalf("transition mutated prior state: %+v", s1.Items[0])
	}
	if s2.Items[0].Quantity != 2 {
		t.Fatalf("expected new state qty 2, got %+v", s2.Items[0])
	}
}

func TestFromItemsDropsNonPositiveQuantities(t *testing.T) {
	t.Parallel()

	s := FromItems([]LineItem{
		{Product: product("1", "10"), Quantity: 2},
		{Product: product("2", "5"), Quantity: 0},
		{Product: product("3", "1"), Quantity: -1},
	})

	if len(s.Items) != 1 || s.Items[0].Product.ID != "1" {
		t.Fatalf("expected only positive-quantity lines, got %+v", s.Items)
	}
	assertAggregates(t, s)
}

// The worked example: P1 at 10, P2 at 5.
func TestShoppingScenario(t *testing.T) {
	t.Parallel()

	p1 := product("p1", "10")
	p2 := product("p2", "5")

	s := Empty()

	s = s.Add(p1)
	if s.ItemCount != 1 || !s.Total.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("after first add: %+v", s)
	}

	s = s.Add(p1)
	if s.ItemCount != 2 || !s.Total.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("after second add: %+v", s)
	}

	s = s.Add(p2)
	if s.ItemCount != 3 || !s.Total.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("after adding p2: %+v", s)
	}

	s = s.UpdateQuantity("p1", 0)
	if s.ItemCount != 1 || !s.Total.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("after zeroing p1: %+v", s)
	}
	if len(s.Items) != 1 || s.Items[0].Product.ID != "p2" {
		t.Fatalf("expected only p2 left, got %+v", s.Items)
	}

	s = s.Clear()
	if s.ItemCount != 0 || !s.Total.IsZero() || len(s.Items) != 0 {
		t.Fatalf("after clear: %+v", s)
	}
}
