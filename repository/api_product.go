package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"store-service/model"
)

var errUnsupported = errors.New("operation not supported by the remote catalog")

// APIProductRepository keeps the catalog in a remote product API:
//
//	GET {endpoint}/products
//	GET {endpoint}/products/{id}
//	PUT {endpoint}/product/{id}
type APIProductRepository struct {
	endpoint string
	client   *http.Client
}

func NewAPIProductRepository(endpoint string, timeout time.Duration) *APIProductRepository {
	return &APIProductRepository{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

func (r *APIProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	body, err := r.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}

	// both a bare array and {"products": [...]} are accepted
	var products []model.Product
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &products)
	} else {
		var wrapped struct {
			Products []model.Product `json:"products"`
		}
		err = json.Unmarshal(body, &wrapped)
		products = wrapped.Products
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}
	return products, nil
}

func (r *APIProductRepository) Find(ctx context.Context, id uint) (*model.Product, error) {
	body, err := r.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errors.Wrap(err, "failed to decode product")
	}
	if inner, ok := fields["product"]; ok {
		body = inner
	}

	var p model.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, errors.Wrap(err, "failed to decode product")
	}
	if p.ID == 0 {
		p.ID = id
	}
	return &p, nil
}

// AdjustStock reads, checks and writes back. The remote API offers no
// conditional update, so two callers may race between the read and the PUT.
func (r *APIProductRepository) AdjustStock(ctx context.Context, id uint, delta int) (*model.Product, error) {
	p, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Stock+delta < 0 {
		return nil, model.ErrInsufficientStock
	}

	p.Stock += delta
	if err := r.update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *APIProductRepository) Create(context.Context, *model.Product) error {
	return errUnsupported
}

func (r *APIProductRepository) update(ctx context.Context, p *model.Product) error {
	payload, err := json.Marshal(struct {
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
		Stock int             `json:"stock"`
	}{p.Name, p.Price, p.Stock})
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = r.do(ctx, http.MethodPut, fmt.Sprintf("/product/%d", p.ID), payload)
	return err
}

func (r *APIProductRepository) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.endpoint+path, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "product api %s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "product api %s %s", method, path)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, model.ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.Errorf("product api %s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return data, nil
}
