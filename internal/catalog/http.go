package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"WatchWorks/pkg/kit"
)

const maxCreateBody = 1 << 20

type Server struct {
	Store *Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Get("/{id}", s.get)
	r.Post("/", s.create)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	kit.WriteJSON(w, http.StatusOK, s.Store.Search(query))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.Store.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type createReq struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	ImageURL    string   `json:"image_url"`
	InStock     bool     `json:"in_stock"`
	Category    string   `json:"category"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Brand) == "" ||
		strings.TrimSpace(req.Category) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name, brand and category required", nil)
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	p := s.Store.Add(Product{
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Price:       price,
		Description: req.Description,
		Features:    req.Features,
		ImageURL:    req.ImageURL,
		InStock:     req.InStock,
		Category:    strings.TrimSpace(req.Category),
	})

	if s.Log != nil {
		s.Log.Info("product added", zap.String("id", p.ID), zap.String("name", p.Name))
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (createReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req createReq
	if err := dec.Decode(&req); err != nil {
		return createReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return createReq{}, errors.New("extra data after json object")
	}

	return req, nil
}

// maxPrice guards against nonsense input; nothing in the shop costs a
// million, let alone more.
var maxPrice = decimal.NewFromInt(1_000_000)

func parsePrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Decimal{}, errors.New("price required")
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, errors.New("invalid price")
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errors.New("price must not be negative")
	}
	if d.GreaterThan(maxPrice) {
		return decimal.Decimal{}, errors.New("price too large")
	}
	if d.Exponent() < -2 {
		return decimal.Decimal{}, errors.New("price must have at most 2 decimal places")
	}

	return d, nil
}
