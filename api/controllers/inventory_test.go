package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/dvillegas/pricepilot-backend/internal/inventory"
	pkgAuth "github.com/dvillegas/pricepilot-backend/pkg/auth"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	pkgerrors "github.com/dvillegas/pricepilot-backend/pkg/errors"
	"github.com/dvillegas/pricepilot-backend/pkg/types"
)

type stubInventoryService struct {
	entry        *inventory.EntryDTO
	entries      []inventory.EntryDTO
	offer        *inventory.OfferDTO
	offers       []inventory.CategoryOfferDTO
	confirmation *inventory.DeleteConfirmation
	err          error

	lastUpsert   inventory.UpsertEntryInput
	lastCity     string
	lastCategory enums.ProductCategory
}

func (s *stubInventoryService) UpsertEntry(_ context.Context, _ pkgAuth.Identity, input inventory.UpsertEntryInput) (*inventory.EntryDTO, error) {
	s.lastUpsert = input
	return s.entry, s.err
}

func (s *stubInventoryService) ListAll(context.Context) ([]inventory.EntryDTO, error) {
	return s.entries, s.err
}

func (s *stubInventoryService) ListBySupermarket(context.Context, uuid.UUID) ([]inventory.EntryDTO, error) {
	return s.entries, s.err
}

func (s *stubInventoryService) FindCheapest(_ context.Context, _ uuid.UUID, city string) (*inventory.OfferDTO, error) {
	s.lastCity = city
	return s.offer, s.err
}

func (s *stubInventoryService) ListCheapestByCategory(_ context.Context, city string, category enums.ProductCategory) ([]inventory.CategoryOfferDTO, error) {
	s.lastCity = city
	s.lastCategory = category
	return s.offers, s.err
}

func (s *stubInventoryService) UpdateEntry(_ context.Context, _ pkgAuth.Identity, _, _ uuid.UUID, _ inventory.UpdateEntryInput) (*inventory.EntryDTO, error) {
	return s.entry, s.err
}

func (s *stubInventoryService) DeleteEntry(_ context.Context, supermarketID, productID uuid.UUID) (*inventory.DeleteConfirmation, error) {
	if s.confirmation == nil && s.err == nil {
		return &inventory.DeleteConfirmation{SupermarketID: supermarketID, ProductID: productID, Deleted: true}, nil
	}
	return s.confirmation, s.err
}

func TestUpsertInventoryEntrySuccess(t *testing.T) {
	supermarketID := uuid.New()
	productID := uuid.New()
	svc := &stubInventoryService{entry: &inventory.EntryDTO{
		SupermarketID: supermarketID,
		ProductID:     productID,
		Price:         types.MoneyFromCents(350),
		InStock:       true,
	}}
	handler := UpsertInventoryEntry(svc, nil)

	payload := []byte(`{"supermarketId":"` + supermarketID.String() + `","productId":"` + productID.String() + `","price":3.50}`)
	req := httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withActor(req, enums.UserRoleVerified)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastUpsert.PriceCents != 350 {
		t.Fatalf("price cents = %d, want 350", svc.lastUpsert.PriceCents)
	}
	if !svc.lastUpsert.InStock {
		t.Fatal("inStock should default to true")
	}
}

func TestUpsertInventoryEntryMissingPrice(t *testing.T) {
	svc := &stubInventoryService{}
	handler := UpsertInventoryEntry(svc, nil)

	payload := []byte(`{"supermarketId":"` + uuid.NewString() + `","productId":"` + uuid.NewString() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withActor(req, enums.UserRoleVerified)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastUpsert.SupermarketID != uuid.Nil {
		t.Fatal("service must not be called when price is missing")
	}
}

func TestUpsertInventoryEntryAllowsExplicitZeroPrice(t *testing.T) {
	supermarketID := uuid.New()
	productID := uuid.New()
	svc := &stubInventoryService{entry: &inventory.EntryDTO{
		SupermarketID: supermarketID,
		ProductID:     productID,
		Price:         types.MoneyFromCents(0),
		InStock:       true,
	}}
	handler := UpsertInventoryEntry(svc, nil)

	payload := []byte(`{"supermarketId":"` + supermarketID.String() + `","productId":"` + productID.String() + `","price":0}`)
	req := httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withActor(req, enums.UserRoleVerified)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastUpsert.PriceCents != 0 {
		t.Fatalf("price cents = %d, want 0", svc.lastUpsert.PriceCents)
	}
}

func TestUpsertInventoryEntryRejectsSubCentPrice(t *testing.T) {
	handler := UpsertInventoryEntry(&stubInventoryService{}, nil)

	payload := []byte(`{"supermarketId":"` + uuid.NewString() + `","productId":"` + uuid.NewString() + `","price":3.509}`)
	req := httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withActor(req, enums.UserRoleVerified)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestUpsertInventoryEntryMissingForeignKey(t *testing.T) {
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := UpsertInventoryEntry(svc, nil)

	payload := []byte(`{"supermarketId":"` + uuid.NewString() + `","productId":"` + uuid.NewString() + `","price":1.00}`)
	req := httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withActor(req, enums.UserRoleVerified)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestListInventoryBySupermarketEmptyIsNotFound(t *testing.T) {
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "supermarket has no ledger entries")}
	handler := ListInventoryBySupermarket(svc, nil)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/inventory/supermarket/"+id.String(), nil)
	req = withRouteParams(req, map[string]string{"supermarketId": id.String()})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestFindCheapestOfferDecodesCity(t *testing.T) {
	productID := uuid.New()
	svc := &stubInventoryService{offer: &inventory.OfferDTO{
		ProductID:       productID,
		ProductName:     "Whole Milk 1L",
		SupermarketID:   uuid.New(),
		SupermarketName: "FreshMart Centro",
		Price:           types.MoneyFromCents(199),
	}}
	handler := FindCheapestOffer(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/inventory/cheapest/"+productID.String()+"/Stara%20Zagora", nil)
	req = withRouteParams(req, map[string]string{
		"productId": productID.String(),
		"city":      "Stara%20Zagora",
	})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastCity != "Stara Zagora" {
		t.Fatalf("city = %q, want %q", svc.lastCity, "Stara Zagora")
	}

	var envelope struct {
		Data inventory.OfferDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SupermarketName != "FreshMart Centro" {
		t.Fatalf("supermarket name = %q", envelope.Data.SupermarketName)
	}
}

func TestListCheapestByCategoryParsesParams(t *testing.T) {
	svc := &stubInventoryService{offers: []inventory.CategoryOfferDTO{}}
	handler := ListCheapestByCategory(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/inventory/category/Sofia/dairy", nil)
	req = withRouteParams(req, map[string]string{"city": "Sofia", "productCategory": "dairy"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if svc.lastCategory != enums.ProductCategoryDairy {
		t.Fatalf("category = %s", svc.lastCategory)
	}
}

func TestListCheapestByCategoryInvalidCategory(t *testing.T) {
	handler := ListCheapestByCategory(&stubInventoryService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/inventory/category/Sofia/gadgets", nil)
	req = withRouteParams(req, map[string]string{"city": "Sofia", "productCategory": "gadgets"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestDeleteInventoryEntryConfirmation(t *testing.T) {
	supermarketID := uuid.New()
	productID := uuid.New()
	handler := DeleteInventoryEntry(&stubInventoryService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/inventory/"+supermarketID.String()+"/"+productID.String(), nil)
	req = withActor(req, enums.UserRoleAdmin)
	req = withRouteParams(req, map[string]string{
		"supermarketId": supermarketID.String(),
		"productId":     productID.String(),
	})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data inventory.DeleteConfirmation `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Deleted || envelope.Data.ProductID != productID {
		t.Fatalf("unexpected confirmation %+v", envelope.Data)
	}
}
