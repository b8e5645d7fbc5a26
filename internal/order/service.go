package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ecomlab/micro-orders/internal/catalog"
	"github.com/ecomlab/micro-orders/internal/notify"
)

var (
	// ErrAuthUnavailable: the token issuer was unreachable or refused.
	ErrAuthUnavailable = errors.New("unable to authenticate")
	// ErrCatalogUnavailable: the catalog read failed; nothing was persisted.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrProductNotFound: the requested product id is not in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProductPrice: the product's price is null or not an integer.
	ErrInvalidProductPrice = errors.New("invalid product price")
)

// Service orchestrates order creation: authenticate, fetch catalog,
// resolve, price, persist, notify. Steps before persistence abort the whole
// operation; the notify step is best-effort.
type Service struct {
	repo Repository
	ext  *Ext
}

func NewService(repo Repository, ext *Ext) *Service {
	return &Service{repo: repo, ext: ext}
}

// Result is what a successful CreateOrder produces. NotifyErr is non-nil
// when the notification dispatch failed; the order is durable either way
// and callers may ignore it. There is no compensation or retry.
type Result struct {
	Order       Order
	ProductName string
	NotifyErr   error
}

// CreateOrder runs the workflow for one inbound request. All outbound
// calls are sequential and blocking; once started the call runs to
// completion regardless of the client.
func (s *Service) CreateOrder(ctx context.Context, productID, quantity int, customerName string) (*Result, error) {
	token, err := s.ext.FetchToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}

	products, err := s.ext.FetchProducts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	// First match wins; duplicate ids upstream are ignored.
	var product *catalog.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if product.Price == nil {
		return nil, fmt.Errorf("%w: price is null", ErrInvalidProductPrice)
	}
	unit, err := strconv.Atoi(*product.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProductPrice, *product.Price)
	}
	// Quantity is deliberately not range-checked; zero or negative totals
	// are computed and stored like any other.
	total := unit * quantity

	o := Order{
		ProductID:    productID,
		Quantity:     quantity,
		TotalPrice:   strconv.Itoa(total),
		CustomerName: customerName,
	}
	if err := s.repo.Create(ctx, &o); err != nil {
		return nil, err
	}

	// The order is durable from here on. Notification is fire-and-forget:
	// the dispatch error is surfaced on the result, never as a failure.
	msg := fmt.Sprintf("Order %d created: %s ordered %d x %s", o.ID, customerName, quantity, product.Name)
	notifyErr := s.ext.SendNotification(ctx, o.ID, notify.EventOrderCreated, msg)

	return &Result{Order: o, ProductName: product.Name, NotifyErr: notifyErr}, nil
}
