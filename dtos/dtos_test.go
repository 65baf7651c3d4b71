package dtos

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"luxreplica-backend/models"
)

func TestAddToCartRequestDefaultsQuantity(t *testing.T) {
	item := AddToCartRequest{ProductID: 3}.CartItem("s1")
	if item.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", item.Quantity)
	}
	if item.SessionID != "s1" || item.ProductID != 3 {
		t.Errorf("unexpected item %+v", item)
	}

	q := 4
	size := "M"
	item = AddToCartRequest{ProductID: 3, Quantity: &q, Size: &size}.CartItem("s1")
	if item.Quantity != 4 || item.Size == nil || *item.Size != "M" || item.Color != nil {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestNewCartSnapshotEmpty(t *testing.T) {
	raw, err := json.Marshal(NewCartSnapshot(nil))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"items":[],"subtotal":0,"total":0,"count":0}` {
		t.Errorf("unexpected empty snapshot %s", raw)
	}
}

func TestNewCartSnapshotTotals(t *testing.T) {
	items := []models.CartItemWithProduct{
		{CartItem: models.CartItem{Quantity: 2}, Product: models.Product{Price: 100}},
		{CartItem: models.CartItem{Quantity: 3}, Product: models.Product{Price: 0.1}},
	}
	snapshot := NewCartSnapshot(items)
	if snapshot.Subtotal != 200.3 || snapshot.Total != 200.3 {
		t.Errorf("expected subtotal 200.3, got %v / %v", snapshot.Subtotal, snapshot.Total)
	}
	if snapshot.Count != 5 {
		t.Errorf("expected count 5, got %d", snapshot.Count)
	}
}

func TestNewProductListingWithoutImages(t *testing.T) {
	listing := NewProductListing(models.Product{ID: 1, Slug: "hoodie"}, nil, nil)
	raw, _ := json.Marshal(listing)
	if strings.Contains(string(raw), `"image"`) {
		t.Errorf("expected image to be omitted, got %s", raw)
	}
	if listing.Rating != 0 || listing.ReviewCount != 0 {
		t.Errorf("unexpected rating %+v", listing)
	}
}

func TestNewProductListingPicksPrimary(t *testing.T) {
	images := []models.ProductImage{
		{ID: 1, ImageURL: "/a.png"},
		{ID: 2, ImageURL: "/b.png", IsPrimary: true},
	}
	reviews := []models.Review{{Rating: 5}, {Rating: 4}}
	listing := NewProductListing(models.Product{ID: 1}, images, reviews)

	if listing.Image == nil || listing.Image.ID != 2 {
		t.Errorf("expected primary image 2, got %+v", listing.Image)
	}
	if listing.ReviewCount != 2 || listing.Rating != 4.5 {
		t.Errorf("unexpected rating %+v", listing)
	}
}

func TestNewProductDetailShape(t *testing.T) {
	details := models.ProductWithDetails{
		Product: models.Product{ID: 1, Slug: "hoodie"},
		Reviews: []models.Review{{Rating: 5}, {Rating: 3}},
	}
	detail := NewProductDetail(details, nil)

	raw, err := json.Marshal(detail)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if got["slug"] != "hoodie" || got["rating"] != 4.0 {
		t.Errorf("unexpected detail %v", got)
	}
	if related, ok := got["relatedProducts"].([]any); !ok || len(related) != 0 {
		t.Errorf("expected empty relatedProducts array, got %v", got["relatedProducts"])
	}
	breakdown := got["ratingBreakdown"].([]any)
	if len(breakdown) != 5 || breakdown[0].(map[string]any)["stars"] != 5.0 {
		t.Errorf("unexpected breakdown %v", breakdown)
	}
}

func TestQuantityBindingsMatchCartCeiling(t *testing.T) {
	want := "max=" + strconv.Itoa(models.MaxCartQuantity)
	for _, typ := range []reflect.Type{reflect.TypeOf(AddToCartRequest{}), reflect.TypeOf(UpdateCartItemRequest{})} {
		field, _ := typ.FieldByName("Quantity")
		if !strings.Contains(field.Tag.Get("binding"), want) {
			t.Errorf("%s.Quantity binding %q lacks %s", typ.Name(), field.Tag.Get("binding"), want)
		}
	}
}
