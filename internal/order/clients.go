package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ecomlab/micro-orders/internal/catalog"
)

// ServiceName is the identity this service claims when requesting tokens.
const ServiceName = "order_service"

// Ext holds the outbound dependencies of the order service. The token
// issuer is called remotely even when it is hosted by the catalog process,
// so the contract holds if the services are deployed separately.
type Ext struct {
	HTTP           *http.Client
	AuthBaseURL    string
	CatalogBaseURL string
	NotifyBaseURL  string
}

func NewExt(authBaseURL, catalogBaseURL, notifyBaseURL string, timeout time.Duration) *Ext {
	return &Ext{
		HTTP:           &http.Client{Timeout: timeout},
		AuthBaseURL:    authBaseURL,
		CatalogBaseURL: catalogBaseURL,
		NotifyBaseURL:  notifyBaseURL,
	}
}

// FetchToken asks the issuing authority for a bearer token under this
// service's claimed name.
func (e *Ext) FetchToken(ctx context.Context) (string, error) {
	body, _ := json.Marshal(map[string]string{"service_name": ServiceName})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost,
		e.AuthBaseURL+"/get-token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := e.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get-token status %s", res.Status)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("get-token returned empty token")
	}
	return out.Token, nil
}

// FetchProducts pulls the full catalog using the given bearer token. The
// list is fetched fresh on every call; nothing is cached.
func (e *Ext) FetchProducts(ctx context.Context, token string) ([]catalog.Product, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, e.CatalogBaseURL+"/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := e.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("products status %s", res.Status)
	}
	var products []catalog.Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, err
	}
	return products, nil
}

// SendNotification records an event on the notification service. The
// endpoint is unauthenticated; callers decide what to do with a failure.
func (e *Ext) SendNotification(ctx context.Context, relatedID int, eventType, message string) error {
	body, _ := json.Marshal(map[string]any{
		"related_id": relatedID,
		"event_type": eventType,
		"message":    message,
	})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost,
		e.NotifyBaseURL+"/notify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := e.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		return fmt.Errorf("notify status %s", res.Status)
	}
	return nil
}
