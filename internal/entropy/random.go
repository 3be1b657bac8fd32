// Package entropy picks world seeds from random.org, falling back to
// crypto/rand when no API key is configured or the service is unreachable.
package entropy

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"
)

const (
	defaultEndpoint = "https://api.random.org/json-rpc/4/invoke"
	batchSize       = 99  // Fractions per request; a multiple of seedParts
	seedParts       = 3   // Fractions combined into one seed
	partRange       = 1e6 // Distinct values per fraction at six decimal places
)

// Client draws seed material from random.org and keeps the unused rest of
// each batch for later seeds.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client

	mu   sync.Mutex
	pool []float64
}

// NewClient creates a random.org client. Returns nil if apiKey is empty;
// a nil client is valid and seeds from crypto/rand.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether seeds come from random.org.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Seed returns a non-negative world seed made of three six-digit groups,
// so up to 10^18 distinct seeds.
func (c *Client) Seed() int64 {
	if !c.Enabled() {
		return cryptoSeed()
	}

	parts, err := c.take(context.Background(), seedParts)
	if err != nil {
		slog.Warn("random.org unavailable, seeding from crypto/rand", "error", err)
		return cryptoSeed()
	}
	var seed int64
	for _, f := range parts {
		seed = seed*partRange + min(int64(math.Round(f*partRange)), partRange-1)
	}
	return seed
}

// take removes n fractions from the pool, fetching a new batch if it runs short.
func (c *Client) take(ctx context.Context, n int) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) < n {
		batch, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.pool = append(c.pool, batch...)
		slog.Debug("random.org pool refilled", "count", len(c.pool))
	}
	if len(c.pool) < n {
		return nil, fmt.Errorf("random.org returned %d usable values, need %d", len(c.pool), n)
	}
	out := c.pool[:n:n]
	c.pool = c.pool[n:]
	return out, nil
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int       `json:"id"`
}

type rpcParams struct {
	APIKey        string `json:"apiKey"`
	N             int    `json:"n"`
	DecimalPlaces int    `json:"decimalPlaces"`
}

type rpcResponse struct {
	Result struct {
		Random struct {
			Data []float64 `json:"data"`
		} `json:"random"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) fetch(ctx context.Context) ([]float64, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "generateDecimalFractions",
		Params:  rpcParams{APIKey: c.apiKey, N: batchSize, DecimalPlaces: 6},
		ID:      1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("random.org request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("random.org status %d", resp.StatusCode)
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("random.org response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("random.org error %d: %s", out.Error.Code, out.Error.Message)
	}

	data := out.Result.Random.Data[:0]
	for _, v := range out.Result.Random.Data {
		if v >= 0 && v < 1 {
			data = append(data, v)
		}
	}
	return data, nil
}

// cryptoSeed draws 63 bits from crypto/rand, or the clock if that fails.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		slog.Debug("crypto/rand failed, seeding from clock", "error", err)
		return time.Now().UnixNano() & (1<<63 - 1)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
