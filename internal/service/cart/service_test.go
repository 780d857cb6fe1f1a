package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

type stubRepo struct {
	createCart     *domain.Cart
	createErr      error
	lastCreate     cartrepo.CreateCartInput
	getCart        *domain.Cart
	getErr         error
	applyCart      *domain.Cart
	applyErr       error
	lastApplyID    string
	lastApplyCode  domain.DiscountCode
	finalizeCart   *domain.Cart
	finalizeErr    error
	lastFinalizeID string
	lastAccountID  string
	orderedCarts   []domain.Cart
	orderedErr     error
}

func (s *stubRepo) CreateWithItem(_ context.Context, in cartrepo.CreateCartInput) (*domain.Cart, error) {
	s.lastCreate = in
	return s.createCart, s.createErr
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Cart, error) {
	return s.getCart, s.getErr
}

func (s *stubRepo) ApplyDiscount(_ context.Context, cartID string, code domain.DiscountCode) (*domain.Cart, error) {
	s.lastApplyID = cartID
	s.lastApplyCode = code
	return s.applyCart, s.applyErr
}

func (s *stubRepo) Finalize(_ context.Context, cartID, accountID string) (*domain.Cart, error) {
	s.lastFinalizeID = cartID
	s.lastAccountID = accountID
	return s.finalizeCart, s.finalizeErr
}

func (s *stubRepo) ListOrderedByAccount(_ context.Context, _ string) ([]domain.Cart, error) {
	return s.orderedCarts, s.orderedErr
}

type stubItemRepo struct {
	item   *domain.Item
	err    error
	lastID string
}

func (s *stubItemRepo) GetByID(_ context.Context, id string) (*domain.Item, error) {
	s.lastID = id
	return s.item, s.err
}

type stubDiscountRepo struct {
	code     *domain.DiscountCode
	err      error
	lastCode string
}

func (s *stubDiscountRepo) Lookup(_ context.Context, code string) (*domain.DiscountCode, error) {
	s.lastCode = code
	return s.code, s.err
}

func strPtr(v string) *string {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestOpenWithItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, items: &stubItemRepo{}}
	for _, qty := range []int{0, -3} {
		_, err := svc.OpenWithItem(context.Background(), OpenInput{ItemID: "item", Quantity: qty})
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestOpenWithItemUnknownItem(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, items: &stubItemRepo{err: domain.ErrNotFound}}
	_, err := svc.OpenWithItem(context.Background(), OpenInput{ItemID: "missing", Quantity: 1})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOpenWithItemCapturesCatalogPrice(t *testing.T) {
	expected := &domain.Cart{ID: "c1", TotalCents: 3000}
	repo := &stubRepo{createCart: expected}
	items := &stubItemRepo{item: &domain.Item{ID: "i1", Name: "Thing", PriceCents: 1000}}
	svc := &Service{repo: repo, items: items}

	got, err := svc.OpenWithItem(context.Background(), OpenInput{ItemID: "i1", Quantity: 3, AccountID: "a1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.lastCreate.UnitPriceCents != 1000 || repo.lastCreate.Quantity != 3 {
		t.Fatalf("unexpected create input %+v", repo.lastCreate)
	}
	if repo.lastCreate.AccountID != "a1" || repo.lastCreate.ItemID != "i1" {
		t.Fatalf("unexpected create input %+v", repo.lastCreate)
	}
}

func TestOpenWithItemUnitPriceOverride(t *testing.T) {
	repo := &stubRepo{createCart: &domain.Cart{ID: "c1"}}
	items := &stubItemRepo{item: &domain.Item{ID: "i1", PriceCents: 1000}}
	svc := &Service{repo: repo, items: items}

	_, err := svc.OpenWithItem(context.Background(), OpenInput{ItemID: "i1", Quantity: 2, UnitPriceCents: int64Ptr(750)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastCreate.UnitPriceCents != 750 {
		t.Fatalf("expected override 750, got %d", repo.lastCreate.UnitPriceCents)
	}

	_, err = svc.OpenWithItem(context.Background(), OpenInput{ItemID: "i1", Quantity: 2, UnitPriceCents: int64Ptr(-1)})
	if err == nil || err.Error() != "unit price must not be negative" {
		t.Fatalf("expected negative price error, got %v", err)
	}
}

func TestApplyDiscountUnknownCode(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, discounts: &stubDiscountRepo{err: domain.ErrNotFound}}
	_, err := svc.ApplyDiscount(context.Background(), "cart", "NOPE")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApplyDiscountBlankCode(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, discounts: &stubDiscountRepo{}}
	_, err := svc.ApplyDiscount(context.Background(), "cart", "   ")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApplyDiscountPassesRegistryValue(t *testing.T) {
	expected := &domain.Cart{ID: "cart", TotalCents: 2250, AppliedDiscount: strPtr("25")}
	repo := &stubRepo{applyCart: expected}
	discounts := &stubDiscountRepo{code: &domain.DiscountCode{Code: "25", Kind: domain.DiscountPercent, ValueOff: 25}}
	svc := &Service{repo: repo, discounts: discounts}

	got, err := svc.ApplyDiscount(context.Background(), "cart", "25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.lastApplyID != "cart" || repo.lastApplyCode.Code != "25" || repo.lastApplyCode.ValueOff != 25 {
		t.Fatalf("apply not called as expected: %s %+v", repo.lastApplyID, repo.lastApplyCode)
	}
}

func TestApplyDiscountIdempotentNoOp(t *testing.T) {
	unchanged := &domain.Cart{ID: "cart", TotalCents: 2250, AppliedDiscount: strPtr("25")}
	repo := &stubRepo{applyCart: unchanged, applyErr: domain.ErrDiscountApplied}
	discounts := &stubDiscountRepo{code: &domain.DiscountCode{Code: "HALF", Kind: domain.DiscountPercent, ValueOff: 50}}
	svc := &Service{repo: repo, discounts: discounts}

	got, err := svc.ApplyDiscount(context.Background(), "cart", "HALF")
	if !errors.Is(err, domain.ErrDiscountApplied) {
		t.Fatalf("expected ErrDiscountApplied, got %v", err)
	}
	if got != unchanged {
		t.Fatalf("expected unchanged cart back, got %+v", got)
	}
	if got.TotalCents != 2250 || got.AppliedDiscount == nil || *got.AppliedDiscount != "25" {
		t.Fatalf("cart mutated by repeated application: %+v", got)
	}
}

func TestFinalizePassesThroughErrors(t *testing.T) {
	for _, want := range []error{domain.ErrNotFound, domain.ErrAlreadyOrdered, domain.ErrInsufficientCredit} {
		svc := &Service{repo: &stubRepo{finalizeErr: want}}
		_, err := svc.Finalize(context.Background(), "cart", "acct")
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestFinalizeHappyPath(t *testing.T) {
	expected := &domain.Cart{ID: "cart", Ordered: true, AccountID: strPtr("acct")}
	repo := &stubRepo{finalizeCart: expected}
	svc := &Service{repo: repo}

	got, err := svc.Finalize(context.Background(), "cart", "acct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected cart: %+v", got)
	}
	if repo.lastFinalizeID != "cart" || repo.lastAccountID != "acct" {
		t.Fatalf("finalize not called as expected")
	}
}

func TestListOrdered(t *testing.T) {
	carts := []domain.Cart{{ID: "c1", Ordered: true}}
	svc := &Service{repo: &stubRepo{orderedCarts: carts}}
	got, err := svc.ListOrdered(context.Background(), "acct")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("unexpected carts: %+v", got)
	}
}
