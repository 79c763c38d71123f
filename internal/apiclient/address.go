package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultIPLookupURL публичный сервис определения адреса
const DefaultIPLookupURL = "https://api.ipify.org?format=json"

// IPLookup best-effort запрос внешнего адреса клиента ({"ip": "..."})
type IPLookup struct {
	url  string
	http *http.Client
}

func NewIPLookup(url string, timeout time.Duration) *IPLookup {
	if url == "" {
		url = DefaultIPLookupURL
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &IPLookup{url: url, http: &http.Client{Timeout: timeout}}
}

func (l *IPLookup) LookupIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup: status %d", resp.StatusCode)
	}
	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("ip lookup: decode: %w", err)
	}
	return body.IP, nil
}
