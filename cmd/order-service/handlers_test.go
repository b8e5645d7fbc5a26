package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecomlab/micro-orders/internal/catalog"
	"github.com/ecomlab/micro-orders/internal/notify"
	"github.com/ecomlab/micro-orders/internal/order"
)

//
// ---------- STUBS & FAKES ----------
//

// stubRepo implementa order.Repository en memoria, asignando ids
// incrementales como lo haría la base.
type stubRepo struct {
	orders []order.Order
}

func (s *stubRepo) Create(ctx context.Context, o *order.Order) error {
	o.ID = len(s.orders) + 1
	s.orders = append(s.orders, *o)
	return nil
}

func (s *stubRepo) List(ctx context.Context) ([]order.Order, error) {
	return append([]order.Order(nil), s.orders...), nil
}

func strptr(s string) *string { return &s }

// fakeCatalog sirve POST /get-token y GET /products como el catalog-service
// real. El token emitido es fijo; /products exige verlo como Bearer.
type fakeCatalog struct {
	products []catalog.Product
	authDown bool
}

const fakeToken = "fake-signed-token"

func newCatalogServer(t *testing.T, fc fakeCatalog) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/get-token", func(w http.ResponseWriter, r *http.Request) {
		if fc.authDown {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"token": fakeToken, "expires_in": 3600})
	})

	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+fakeToken {
			http.Error(w, `{"error":"Token is invalid"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fc.products)
	})

	return httptest.NewServer(mux)
}

// fakeNotify registra cada POST /notify recibido.
type notifyRecorder struct {
	calls []notify.CreateRequest
}

func newNotifyServer(t *testing.T) (*httptest.Server, *notifyRecorder) {
	t.Helper()
	rec := &notifyRecorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("/notify", func(w http.ResponseWriter, r *http.Request) {
		var req notify.CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		rec.calls = append(rec.calls, req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Notification created successfully"})
	})
	return httptest.NewServer(mux), rec
}

func newExt(authURL, catalogURL, notifyURL string) *order.Ext {
	return order.NewExt(authURL, catalogURL, notifyURL, 2*time.Second)
}

func newOrderRouter(repo order.Repository, ext *order.Ext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := order.NewService(repo, ext)
	r.POST("/create-order", createOrderHandler(svc))
	r.GET("/orders", listOrdersHandler(repo))
	return r
}

func postOrder(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-order", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

//
// ---------- TESTS ----------
//

func TestCreateOrder_HappyPath(t *testing.T) {
	csrv := newCatalogServer(t, fakeCatalog{products: []catalog.Product{
		{ID: 1, Name: "Widget", Price: strptr("10"), Category: "tools"},
	}})
	defer csrv.Close()
	nsrv, rec := newNotifyServer(t)
	defer nsrv.Close()

	repo := &stubRepo{}
	r := newOrderRouter(repo, newExt(csrv.URL, csrv.URL, nsrv.URL))

	w := postOrder(r, `{"product_id":1,"quantity":3,"customer_name":"Ada"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var got struct {
		Message string          `json:"message"`
		Order   order.OrderView `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if got.Message != "Order created successfully" {
		t.Fatalf("message=%q", got.Message)
	}
	if got.Order.Product != "Widget" || got.Order.Quantity != 3 ||
		got.Order.TotalPrice != "30" || got.Order.Customer != "Ada" {
		t.Fatalf("order inesperada: %+v", got.Order)
	}

	// exactamente una orden persistida
	if len(repo.orders) != 1 {
		t.Fatalf("ordenes persistidas=%d, esperaba 1", len(repo.orders))
	}
	o := repo.orders[0]
	if o.ProductID != 1 || o.Quantity != 3 || o.TotalPrice != "30" || o.CustomerName != "Ada" {
		t.Fatalf("orden persistida inesperada: %+v", o)
	}

	// la notificación referencia la orden nueva
	if len(rec.calls) != 1 {
		t.Fatalf("notificaciones=%d, esperaba 1", len(rec.calls))
	}
	n := rec.calls[0]
	if n.RelatedID == nil || *n.RelatedID != got.Order.ID {
		t.Fatalf("related_id=%v, esperaba %d", n.RelatedID, got.Order.ID)
	}
	if n.EventType == nil || *n.EventType != "order_created" {
		t.Fatalf("event_type=%v", n.EventType)
	}
	if n.Message == nil || !strings.Contains(*n.Message, "Ada") || !strings.Contains(*n.Message, "Widget") {
		t.Fatalf("message=%v", n.Message)
	}
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	csrv := newCatalogServer(t, fakeCatalog{products: []catalog.Product{
		{ID: 1, Name: "Widget", Price: strptr("10"), Category: "tools"},
	}})
	defer csrv.Close()
	nsrv, rec := newNotifyServer(t)
	defer nsrv.Close()

	repo := &stubRepo{}
	r := newOrderRouter(repo, newExt(csrv.URL, csrv.URL, nsrv.URL))

	w := postOrder(r, `{"product_id":999,"quantity":1,"customer_name":"Bob"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Product not found") {
		t.Fatalf("body=%s", w.Body.String())
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no debía persistir ordenes: %d", len(repo.orders))
	}
	if len(rec.calls) != 0 {
		t.Fatalf("no debía notificar: %d", len(rec.calls))
	}
}

func TestCreateOrder_CatalogUnavailable(t *testing.T) {
	// el emisor de tokens responde, el catálogo no
	asrv := newCatalogServer(t, fakeCatalog{})
	defer asrv.Close()
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	repo := &stubRepo{}
	r := newOrderRouter(repo, newExt(asrv.URL, deadURL, "http://unused"))

	w := postOrder(r, `{"product_id":1,"quantity":1,"customer_name":"Ada"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no debía persistir ordenes: %d", len(repo.orders))
	}
}

func TestCreateOrder_AuthUnavailable(t *testing.T) {
	csrv := newCatalogServer(t, fakeCatalog{authDown: true, products: []catalog.Product{
		{ID: 1, Name: "Widget", Price: strptr("10"), Category: "tools"},
	}})
	defer csrv.Close()

	repo := &stubRepo{}
	r := newOrderRouter(repo, newExt(csrv.URL, csrv.URL, "http://unused"))

	w := postOrder(r, `{"product_id":1,"quantity":1,"customer_name":"Ada"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Unable to authenticate") {
		t.Fatalf("body=%s", w.Body.String())
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no debía persistir ordenes: %d", len(repo.orders))
	}
}

// Propiedad de desacople: si notificaciones está caído, la orden igual se
// crea y el cliente recibe éxito.
func TestCreateOrder_NotifyDown_StillSucceeds(t *testing.T) {
	csrv := newCatalogServer(t, fakeCatalog{products: []catalog.Product{
		{ID: 1, Name: "Widget", Price: strptr("10"), Category: "tools"},
	}})
	defer csrv.Close()
	nsrv, _ := newNotifyServer(t)
	deadNotify := nsrv.URL
	nsrv.Close()

	repo := &stubRepo{}
	r := newOrderRouter(repo, newExt(csrv.URL, csrv.URL, deadNotify))

	w := postOrder(r, `{"product_id":1,"quantity":2,"customer_name":"Ada"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(repo.orders) != 1 {
		t.Fatalf("ordenes persistidas=%d, esperaba 1", len(repo.orders))
	}
}

func TestCreateOrder_InvalidPrice(t *testing.T) {
	cases := []struct {
		name  string
		price *string
	}{
		{"precio nulo", nil},
		{"precio decimal", strptr("10.50")},
		{"precio no numérico", strptr("abc")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			csrv := newCatalogServer(t, fakeCatalog{products: []catalog.Product{
				{ID: 1, Name: "Widget", Price: tc.price, Category: "tools"},
			}})
			defer csrv.Close()
			nsrv, rec := newNotifyServer(t)
			defer nsrv.Close()

			repo := &stubRepo{}
			r := newOrderRouter(repo, newExt(csrv.URL, csrv.URL, nsrv.URL))

			w := postOrder(r, `{"product_id":1,"quantity":1,"customer_name":"Ada"}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if len(repo.orders) != 0 || len(rec.calls) != 0 {
				t.Fatalf("no debía persistir ni notificar")
			}
		})
	}
}

// Cantidades cero o negativas se aceptan y producen el total calculado; el
// flujo no las valida.
func TestCreateOrder_NonPositiveQuantity(t *testing.T) {
	csrv := newCatalogServer(t, fakeCatalog{products: []catalog.Product{
		{ID: 1, Name: "Widget", Price: strptr("10"), Category: "tools"},
	}})
	defer csrv.Close()
	nsrv, _ := newNotifyServer(t)
	defer nsrv.Close()

	repo := &stubRepo{}
	r := newOrderRouter(repo, newExt(csrv.URL, csrv.URL, nsrv.URL))

	w := postOrder(r, `{"product_id":1,"quantity":0,"customer_name":"Ada"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	w = postOrder(r, `{"product_id":1,"quantity":-2,"customer_name":"Ada"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	if len(repo.orders) != 2 {
		t.Fatalf("ordenes=%d, esperaba 2", len(repo.orders))
	}
	if repo.orders[0].TotalPrice != "0" || repo.orders[1].TotalPrice != "-20" {
		t.Fatalf("totales inesperados: %+v", repo.orders)
	}
}

func TestCreateOrder_MissingFields(t *testing.T) {
	repo := &stubRepo{}
	r := newOrderRouter(repo, newExt("http://unused", "http://unused", "http://unused"))

	cases := []struct{ body, want string }{
		{`{"quantity":1,"customer_name":"Ada"}`, "product_id is required"},
		{`{"product_id":1,"customer_name":"A"}`, "quantity is required"},
		{`{"product_id":1,"quantity":1}`, "customer_name is required"},
	}
	for _, tc := range cases {
		body, want := tc.body, tc.want
		w := postOrder(r, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body=%s status=%d, esperaba 400", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), want) {
			t.Fatalf("respuesta=%s, esperaba %q", w.Body.String(), want)
		}
	}
	if len(repo.orders) != 0 {
		t.Fatalf("no debía persistir ordenes")
	}
}

func TestListOrders(t *testing.T) {
	repo := &stubRepo{orders: []order.Order{
		{ID: 1, ProductID: 1, Quantity: 3, TotalPrice: "30", CustomerName: "Ada"},
	}}
	r := newOrderRouter(repo, newExt("http://unused", "http://unused", "http://unused"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got []order.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(got) != 1 || got[0].TotalPrice != "30" {
		t.Fatalf("respuesta inesperada: %+v", got)
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
