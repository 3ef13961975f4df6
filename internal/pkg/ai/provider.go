// Package ai turns repository context into a commit message suggestion using a hosted language model.
package ai

import (
	"context"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single provider request.
	DefaultTimeout = 60 * time.Second
)

// GenerateRequest is a single prompt sent to a provider.
type GenerateRequest struct {
	Prompt string
	Model  string
	APIKey string
}

// GenerateResponse contains the raw text returned by a provider.
type GenerateResponse struct {
	Text string
}

// Provider defines the interface for language model backends.
type Provider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	Name() string
}

// newHTTPClient creates an HTTP client with timeout and connection pooling.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}
}
