package catalog_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"WatchWorks/internal/catalog"
)

func newTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &catalog.Server{Store: catalog.NewStore(catalog.DefaultProducts()), Log: zap.NewNop()}
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getProducts(t *testing.T, url string) []catalog.Product {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return products
}

func TestListProducts(t *testing.T) {
	ts := newTS(t)

	if got := len(getProducts(t, ts.URL+"/")); got != 6 {
		t.Fatalf("got %d products, want 6", got)
	}
}

func TestSearchParam(t *testing.T) {
	ts := newTS(t)

	products := getProducts(t, ts.URL+"/?search=diver")
	if len(products) != 1 || products[0].Name != "Diver Pro" {
		t.Fatalf("unexpected search result: %+v", products)
	}
}

func TestGetProductNotFound(t *testing.T) {
	ts := newTS(t)

	resp, err := http.Get(ts.URL + "/42")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.StatusCode)
	}
}

func TestCreateProduct(t *testing.T) {
	ts := newTS(t)

	body, _ := json.Marshal(map[string]any{
		"name":        "Regatta Timer",
		"brand":       "AquaTime",
		"price":       "1549.99",
		"description": "countdown bezel for race starts",
		"features":    []string{"Countdown bezel"},
		"image_url":   "https://example.com/regatta.jpg",
		"in_stock":    true,
		"category":    "sport",
	})

	resp, err := http.Post(ts.URL+"/", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d, want 201", resp.StatusCode)
	}

	var created catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != "7" {
		t.Fatalf("got id %q, want 7", created.ID)
	}

	fetched := getProducts(t, ts.URL+"/?search=regatta")
	if len(fetched) != 1 || fetched[0].ID != created.ID {
		t.Fatalf("created product not searchable: %+v", fetched)
	}
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	ts := newTS(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"brand": "X", "price": "10", "category": "sport"}},
		{"empty price", map[string]any{"name": "A", "brand": "X", "price": "", "category": "sport"}},
		{"negative price", map[string]any{"name": "A", "brand": "X", "price": "-5", "category": "sport"}},
		{"too precise", map[string]any{"name": "A", "brand": "X", "price": "9.999", "category": "sport"}},
		{"absurd price", map[string]any{"name": "A", "brand": "X", "price": "99999999", "category": "sport"}},
		{"unknown field", map[string]any{"name": "A", "brand": "X", "price": "10", "category": "sport", "bogus": 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			resp, err := http.Post(ts.URL+"/", "application/json", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", resp.StatusCode)
			}
		})
	}

	// Nothing above should have grown the catalog.
	if got := len(getProducts(t, ts.URL+"/")); got != 6 {
		t.Fatalf("catalog grew to %d", got)
	}
}

func TestCreateProductTrailingData(t *testing.T) {
	ts := newTS(t)

	raw := fmt.Sprintf(`{"name":"A","brand":"B","price":"10","category":"sport"}%s`, `{"x":1}`)
	resp, err := http.Post(ts.URL+"/", "application/json", bytes.NewReader([]byte(raw)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}
