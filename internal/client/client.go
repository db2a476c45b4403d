// Package client is the HTTP client the storefront and admin screens use to
// talk to the product catalog API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog/internal/apperr"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "http://localhost:5000/api"

// Config holds the API location. A zero Timeout leaves requests to the
// transport's own limits and the caller's context deadline.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the catalog API. Every failure it returns is an
// *apperr.Error of kind Validation, NotFound, Forbidden, Storage (other
// server errors) or Transport (no response, or the request could not be
// built). It never retries.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New creates a Client, using DefaultBaseURL when none is set.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
	}
}

// GetProducts lists every product.
func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, fiber.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID fetches one product.
func (c *Client) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, fiber.MethodGet, productPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, input services.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, fiber.MethodPost, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces every editable field of a product.
func (c *Client) UpdateProduct(ctx context.Context, id string, input services.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, fiber.MethodPut, productPath(id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product and returns the server's confirmation.
func (c *Client) DeleteProduct(ctx context.Context, id string) (string, error) {
	var confirmation struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, fiber.MethodDelete, productPath(id), nil, &confirmation); err != nil {
		return "", err
	}
	return confirmation.Message, nil
}

func productPath(id string) string {
	return "/products/" + url.PathEscape(id)
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return apperr.Transport(err.Error(), err)
	}
	target := c.baseURL + path
	if err := checkURL(target); err != nil {
		return apperr.Transport(err.Error(), err)
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(target)

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			fiber.ReleaseAgent(agent)
			return apperr.Transport(err.Error(), err)
		}
		agent.Body(payload)
		agent.ContentType(fiber.MIMEApplicationJSON)
	}
	if timeout := c.requestTimeout(ctx); timeout > 0 {
		agent.Timeout(timeout)
	}

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return apperr.Transport(err.Error(), err)
	}

	// Bytes releases the agent.
	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		log.Ctx(ctx).Debug().Err(err).Str("component", "CatalogClient").
			Str("method", method).Str("path", path).Msg("request got no response")
		return apperr.Transport(apperr.MsgNoResponse, err)
	}

	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return responseError(status, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperr.Transport("Invalid response from server", err)
	}
	return nil
}

// requestTimeout is the smaller of the configured timeout and the time left
// before ctx's deadline. Zero means no limit.
func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			remaining = time.Nanosecond
		}
		if timeout == 0 || remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

// checkURL rejects targets the transport could never connect to.
func checkURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API URL %q: scheme and host are required", target)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("invalid API URL %q: missing host name", target)
	}
	if port := u.Port(); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("invalid API URL %q: bad port %q", target, port)
		}
	}
	return nil
}

// responseError turns a non-2xx answer into an error carrying the server's
// message when the body has one.
func responseError(status int, body []byte) *apperr.Error {
	var parsed errorResponse
	message := fmt.Sprintf("HTTP error! Status: %d", status)
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		message = parsed.Message
	}

	return &apperr.Error{
		Kind:    apperr.KindForStatus(status),
		Message: message,
		Status:  status,
		Fields:  parsed.Errors,
	}
}
