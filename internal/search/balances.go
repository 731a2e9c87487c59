package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Balance is the remaining credit of one configured key.
type Balance struct {
	KeyIndex  int     `json:"key_index"`
	Credit    float64 `json:"credit"`
	Exhausted bool    `json:"exhausted"`
	Error     string  `json:"error,omitempty"`
}

type accountResponse struct {
	Credit  *float64 `json:"credit"`
	Balance *float64 `json:"balance"`
}

// Balances queries the account endpoint for every key. Keys whose lookup
// fails are reported exhausted with the error.
func (c *Client) Balances(ctx context.Context) []Balance {
	if c.keys == nil {
		return nil
	}

	keys, exhausted := c.keys.snapshot()
	balances := make([]Balance, 0, len(keys))

	for i, key := range keys {
		b := Balance{KeyIndex: i + 1, Exhausted: exhausted[i]}

		credit, err := c.account(ctx, key)
		if err != nil {
			b.Exhausted = true
			b.Error = err.Error()
		} else {
			b.Credit = credit
		}
		balances = append(balances, b)
	}

	return balances
}

// TotalCredit sums the credit across balances.
func TotalCredit(balances []Balance) float64 {
	var total float64
	for _, b := range balances {
		total += b.Credit
	}
	return total
}

func (c *Client) account(ctx context.Context, key string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+accountPath, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create account request: %w", err)
	}
	req.Header.Set(apiKeyHeader, key)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("account request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, fmt.Errorf("account returned status %d", resp.StatusCode)
	}

	var out accountResponse
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodyBytes)).Decode(&out); decodeErr != nil {
		return 0, fmt.Errorf("decode account response: %w", decodeErr)
	}

	switch {
	case out.Credit != nil:
		return *out.Credit, nil
	case out.Balance != nil:
		return *out.Balance, nil
	default:
		return 0, nil
	}
}
