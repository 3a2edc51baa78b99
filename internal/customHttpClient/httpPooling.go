package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akurra/studybuddy/internal/config"
)

var (
	once   sync.Once
	client *http.Client
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// GetPooledClient returns the shared outbound client used for web-page
// extraction so repeated fetches reuse connections.
func GetPooledClient() *http.Client {
	once.Do(func() {
		client = &http.Client{
			Transport: customTransport,
			Timeout:   config.ExtractFetchTimeout,
		}
	})
	return client
}
