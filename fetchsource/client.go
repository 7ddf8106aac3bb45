package fetchsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"klinik/model"
)

// Client talks to the clinic data-access API. Each report endpoint resolves
// to a (possibly empty) JSON array of records already flattened close to
// the canonical shape; the normalizer finishes the mapping downstream.
type Client struct {
	BaseURL    string
	Credential string
	HTTPClient *http.Client
}

func NewClient(baseURL, credential string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Credential: credential,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func fetchList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	if c.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.Credential)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("credential rejected by %s (status %d)", path, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path, string(body))
	}

	var records []T
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return records, nil
}

func (c *Client) FetchTreatments(ctx context.Context) ([]model.TreatmentRecord, error) {
	return fetchList[model.TreatmentRecord](ctx, c, "/reports/treatments")
}

func (c *Client) FetchSales(ctx context.Context) ([]model.SaleRecord, error) {
	return fetchList[model.SaleRecord](ctx, c, "/reports/sales")
}

func (c *Client) FetchFieldTripSales(ctx context.Context) ([]model.FieldTripSaleRecord, error) {
	return fetchList[model.FieldTripSaleRecord](ctx, c, "/reports/field-trip-sales")
}

func (c *Client) FetchSalaries(ctx context.Context) ([]model.SalaryRecord, error) {
	return fetchList[model.SalaryRecord](ctx, c, "/reports/salaries")
}

func (c *Client) FetchDoctorFees(ctx context.Context) ([]model.DoctorFeeRecord, error) {
	return fetchList[model.DoctorFeeRecord](ctx, c, "/reports/doctor-fees")
}

func (c *Client) FetchExpenses(ctx context.Context) ([]model.ExpenseRecord, error) {
	return fetchList[model.ExpenseRecord](ctx, c, "/reports/expenses")
}
