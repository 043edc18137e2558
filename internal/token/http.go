package token

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient talks to a deployed token service over its JSON API.
type HTTPClient struct {
	baseURL string
	spender string
	client  *http.Client
}

func NewHTTPClient(baseURL, spender string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		spender: spender,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) TransferFrom(ctx context.Context, owner, recipient string, amount uint64) error {
	if c.baseURL == "" {
		return errors.New("missing token service URL")
	}

	payload := map[string]any{
		"owner":     owner,
		"spender":   c.spender,
		"recipient": recipient,
		"amount":    amount,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/transfer-from",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &apiErr); err == nil {
		switch apiErr.Error {
		case "not enough funds":
			return ErrInsufficientFunds
		case "no allowance":
			return ErrNoAllowance
		}
	}

	return fmt.Errorf("token service: status %d: %s", resp.StatusCode, raw)
}

func (c *HTTPClient) BalanceOf(ctx context.Context, addr string) (uint64, error) {
	if c.baseURL == "" {
		return 0, errors.New("missing token service URL")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/balances/"+addr,
		nil,
	)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("token service: status %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		Balance uint64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}
