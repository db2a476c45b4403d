// Command catalogctl talks to the catalog API from a terminal.
//
//	catalogctl list
//	catalogctl get ID
//	catalogctl delete ID
//	catalogctl cart ID [ID...]
//
// The API location comes from CATALOG_API_URL.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"catalog/internal/client"
	"catalog/internal/config"
	"catalog/internal/logging"
	"catalog/internal/models"
	"catalog/internal/storefront"

	"github.com/rs/zerolog/log"
)

var errUsage = errors.New("usage: catalogctl list | get ID | delete ID | cart ID [ID...]")

func main() {
	timeout := flag.Duration("timeout", 0, "per-request timeout, 0 for none")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.Environment, cfg.LogLevel)

	api := client.New(client.Config{BaseURL: cfg.APIBaseURL, Timeout: *timeout})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, api, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, api storefront.CatalogAPI, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch command, rest := args[0], args[1:]; {
	case command == "list" && len(rest) == 0:
		products, err := api.GetProducts(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, products)

	case command == "get" && len(rest) == 1:
		product, err := lookup(ctx, api, rest[0])
		if err != nil {
			return err
		}
		return printJSON(out, product)

	case command == "delete" && len(rest) == 1:
		message, err := api.DeleteProduct(ctx, rest[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, message)
		return err

	case command == "cart" && len(rest) > 0:
		return fillCart(ctx, api, rest, out)

	default:
		return errUsage
	}
}

// lookup uses GetProductByID when the API offers it.
func lookup(ctx context.Context, api storefront.CatalogAPI, id string) (*models.Product, error) {
	if getter, ok := api.(interface {
		GetProductByID(ctx context.Context, id string) (*models.Product, error)
	}); ok {
		return getter.GetProductByID(ctx, id)
	}
	products, err := api.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %s not found", id)
}

// fillCart loads the storefront listing, adds each ID to a cart and prints
// the notifications the storefront would show.
func fillCart(ctx context.Context, api storefront.ProductLister, ids []string, out io.Writer) error {
	products, note := storefront.LoadCatalog(ctx, api)
	if note != nil {
		printNotification(out, *note)
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var cart storefront.Cart
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			return fmt.Errorf("product %s is not in the catalog", id)
		}
		printNotification(out, cart.Add(product))
	}
	printNotification(out, cart.Summary())
	return nil
}

func printNotification(out io.Writer, note storefront.Notification) {
	fmt.Fprintf(out, "[%s] %s\n", note.Severity, note.Message)
}

func printJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
