package powertrade

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"PowerPos/internal/domain/models"
	drepo "PowerPos/internal/domain/repository"
	xhttp "PowerPos/pkg/http"
)

const dateLayout = "2006-01-02"

// Client implements a TradeProvider backed by the power trading HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

// New creates a powertrade TradeProvider.
func New(baseURL, apiKey string, timeout time.Duration) drepo.TradeProvider {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type wirePeriod struct {
	Period int     `json:"period"`
	Volume float64 `json:"volume"`
}

type wireTrade struct {
	Date    string       `json:"date"`
	Periods []wirePeriod `json:"periods"`
}

type wireResponse struct {
	Trades []wireTrade `json:"trades"`
}

// GetTrades fetches all trades for a trading date.
func (c *Client) GetTrades(ctx context.Context, date time.Time) ([]*models.Trade, error) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/trades",
		Headers: map[string]string{
			"X-Api-Key": c.apiKey,
		},
		QueryParams: map[string][]string{
			"date": {date.Format(dateLayout)},
		},
	})
	if err != nil {
		return nil, models.NewProviderError("transport", "trade request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, models.NewProviderError("provider", "unexpected status %d: %s", resp.StatusCode, body)
	}

	var wr wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, models.NewProviderError("decode", "trade payload: %v", err)
	}

	trades := make([]*models.Trade, 0, len(wr.Trades))
	for _, wt := range wr.Trades {
		t := &models.Trade{}
		if d, err := time.Parse(dateLayout, wt.Date); err == nil {
			t.Date = d
		}
		for _, wp := range wt.Periods {
			t.Periods = append(t.Periods, models.Period{Index: wp.Period, Volume: wp.Volume})
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// Health probes the provider's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/healthz",
	})
	if err != nil {
		return fmt.Errorf("provider health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider health: status %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op; the underlying client has no persistent connections to
// tear down.
func (c *Client) Close() error { return nil }
