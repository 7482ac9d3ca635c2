package ledger

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"WatchWorks/internal/catalog"
	"WatchWorks/internal/payment"
	"WatchWorks/pkg/kit"
)

const maxBody = 1 << 20

type Server struct {
	Ledger   *Ledger
	Catalog  *catalog.Store
	Payments payment.Provider
	Log      *zap.Logger
}

func (s *Server) CartHandler() http.HandlerFunc       { return s.cart }
func (s *Server) AddItemHandler() http.HandlerFunc    { return s.addItem }
func (s *Server) UpdateItemHandler() http.HandlerFunc { return s.updateItem }
func (s *Server) RemoveItemHandler() http.HandlerFunc { return s.removeItem }
func (s *Server) ClearCartHandler() http.HandlerFunc  { return s.clearCart }
func (s *Server) OrdersHandler() http.HandlerFunc     { return s.orders }
func (s *Server) CheckoutHandler() http.HandlerFunc   { return s.checkout }

type cartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (s *Server) currentCart() cartView {
	return cartView{Items: s.Ledger.Items(), Total: s.Ledger.CartTotal()}
}

func (s *Server) cart(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.currentCart())
}

type addItemReq struct {
	ProductID string `json:"product_id"`
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := decodeStrict(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	id := strings.TrimSpace(req.ProductID)
	if id == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
		return
	}

	p, ok := s.Catalog.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}

	s.Ledger.AddToCart(r.Context(), p)
	kit.WriteJSON(w, http.StatusOK, s.currentCart())
}

type updateItemReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemReq
	if err := decodeStrict(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.Quantity < 1 {
		kit.WriteError(w, r, http.StatusBadRequest, "quantity must be at least 1", nil)
		return
	}

	s.Ledger.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	kit.WriteJSON(w, http.StatusOK, s.currentCart())
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	s.Ledger.RemoveFromCart(r.Context(), chi.URLParam(r, "id"))
	kit.WriteJSON(w, http.StatusOK, s.currentCart())
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.Ledger.ClearCart(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) orders(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Ledger.Orders())
}

type checkoutReq struct {
	PaymentMethod string        `json:"payment_method"`
	CustomerInfo  *CustomerInfo `json:"customer_info"`
}

type checkoutResp struct {
	Order   Order          `json:"order"`
	Payment payment.Result `json:"payment"`
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := decodeStrict(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "payment_method required", nil)
		return
	}
	if s.Ledger.Empty() {
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
		return
	}

	res, err := s.Payments.Initiate(r.Context(), s.Ledger.CartTotal())
	if err != nil {
		s.writePaymentError(w, r, err)
		return
	}

	o, err := s.Ledger.Checkout(r.Context(), req.PaymentMethod, req.CustomerInfo)
	if err != nil {
		// The cart emptied between the payment and the ledger call;
		// single-writer deployments never hit this.
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, checkoutResp{Order: o, Payment: res})
}

func (s *Server) writePaymentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payment.ErrDeclined):
		kit.WriteError(w, r, http.StatusPaymentRequired, "payment declined", nil)
	case errors.Is(err, payment.ErrCancelled):
		kit.WriteError(w, r, http.StatusGatewayTimeout, "payment cancelled", nil)
	default:
		if s.Log != nil {
			s.Log.Error("payment failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "payment error", nil)
	}
}

func decodeStrict(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
