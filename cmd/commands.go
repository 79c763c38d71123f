package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"techmart/internal/apiclient"
	"techmart/internal/builder"
	"techmart/internal/config"
	"techmart/internal/csvexport"
	"techmart/internal/domain"
	"techmart/internal/listing"
	"techmart/internal/navigation"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newClient(cfg *config.Config, logger *zap.Logger) *apiclient.Client {
	return apiclient.New(cfg.API.BaseURL,
		apiclient.WithLogger(logger),
		apiclient.WithUserAgent(cfg.Client.UserAgent),
	)
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "price a transaction locally",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "quantity", Value: 1},
			&cli.Float64Flag{Name: "price", Required: true},
			&cli.Float64Flag{Name: "discount", Usage: "percent, 0-100"},
			&cli.Float64Flag{Name: "shipping", Value: 10},
		},
		Action: func(c *cli.Context) error {
			b := builder.ComputePricing(builder.PricingInput{
				Quantity:        c.Int64("quantity"),
				UnitPrice:       c.Float64("price"),
				DiscountPercent: c.Float64("discount"),
				ShippingCost:    c.Float64("shipping"),
			})
			fmt.Printf("Subtotal:  %s\n", builder.FormatAmount(b.Subtotal))
			fmt.Printf("Discount: -%s\n", builder.FormatAmount(b.DiscountAmount))
			fmt.Printf("Tax (12%%): %s\n", builder.FormatAmount(b.TaxAmount))
			fmt.Printf("Shipping:  %s\n", builder.FormatAmount(b.ShippingCost))
			fmt.Printf("Total:     %s\n", builder.FormatAmount(b.TotalAmount))
			return nil
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "build and submit a transaction against the API",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "customer", Required: true},
			&cli.Int64Flag{Name: "product", Required: true},
			&cli.Int64Flag{Name: "quantity", Value: 1},
			&cli.StringFlag{Name: "payment", Value: string(domain.PaymentCreditCard)},
			&cli.Float64Flag{Name: "discount"},
			&cli.Float64Flag{Name: "shipping", Value: 10},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client := newClient(cfg, logger)
			b := builder.New(
				builder.NewProductResolver(client),
				builder.NewSubmissionCoordinator(client, logger),
				builder.WithLogger(logger),
				builder.WithUserAgent(cfg.Client.UserAgent),
			)
			b.Mount(c.Context, apiclient.NewIPLookup(cfg.IPLookup.URL, cfg.IPLookup.Timeout))

			b.SetCustomerID(c.Int64("customer"))
			b.SetQuantity(c.Int64("quantity"))
			b.SetPaymentMethod(domain.PaymentMethod(c.String("payment")))
			b.SetDiscountPercent(c.Float64("discount"))
			b.SetShippingCost(c.Float64("shipping"))
			select {
			case <-b.SetProductID(c.Context, c.Int64("product")):
			case <-c.Context.Done():
				return c.Context.Err()
			}

			snap := b.Snapshot()
			if !snap.Validation.IsSubmittable {
				_ = printJSON(snap.Validation.FieldErrors)
				return cli.Exit("transaction is not valid", 2)
			}
			payload, err := b.Submit(c.Context)
			if err != nil {
				return err
			}
			return printJSON(struct {
				Status  string                     `json:"status"`
				Pricing builder.PricingBreakdown   `json:"pricing"`
				Payload *domain.TransactionPayload `json:"payload"`
			}{builder.DisplayedStatus, snap.Pricing.Rounded(), payload})
		},
	}
}

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "show one page of the products or transactions table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tab", Value: string(navigation.TabProducts)},
			&cli.StringFlag{Name: "search"},
			&cli.IntFlag{Name: "page", Value: 1},
			&cli.BoolFlag{Name: "low-stock", Usage: "products tab: only items at or below --threshold"},
			&cli.Int64Flag{Name: "threshold", Usage: "low-stock threshold, server default when unset"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			tab, err := navigation.ParseTab(c.String("tab"))
			if err != nil {
				return err
			}
			nav := navigation.New()
			nav.Select(tab)

			client := newClient(cfg, logger)
			lc := listing.Config{Limit: cfg.Listing.PageSize, SearchDelay: cfg.Listing.SearchDebounce, Logger: logger}
			search, page := c.String("search"), c.Int("page")

			switch nav.State().Tab {
			case navigation.TabProducts:
				fetch := func(ctx context.Context, q listing.Query) (domain.Page[domain.Product], error) {
					return client.ListProducts(ctx, apiclient.ListQuery{Page: q.Page, Limit: q.Limit, Search: q.Search})
				}
				if c.Bool("low-stock") {
					threshold := c.Int64("threshold")
					fetch = func(ctx context.Context, q listing.Query) (domain.Page[domain.Product], error) {
						out, err := client.LowStock(ctx, threshold, apiclient.ListQuery{Page: q.Page, Limit: q.Limit, Search: q.Search})
						return out.ProductPage(), err
					}
				}
				st, err := browse(c.Context, fetch, lc, search, page)
				if err != nil {
					return err
				}
				return printJSON(map[string]any{"navigation": nav.State(), "table": st})
			case navigation.TabTransactions, navigation.TabOrders:
				st, err := browse(c.Context, func(ctx context.Context, q listing.Query) (domain.Page[domain.Transaction], error) {
					return client.ListTransactions(ctx, apiclient.ListQuery{Page: q.Page, Limit: q.Limit, Search: q.Search})
				}, lc, search, page)
				if err != nil {
					return err
				}
				return printJSON(map[string]any{"navigation": nav.State(), "table": st})
			default:
				return cli.Exit(fmt.Sprintf("tab %q has no table", tab), 2)
			}
		},
	}
}

// browse drives a Browser the way the dashboard does: debounced search
// first, then the requested page.
func browse[T any](ctx context.Context, fetch listing.Fetcher[T], cfg listing.Config, search string, page int) (listing.State[T], error) {
	br := listing.New(ctx, fetch, cfg)
	defer br.Close()

	if search != "" {
		ready := make(chan struct{})
		var once sync.Once
		cancel := br.Subscribe(func(st listing.State[T]) {
			if st.Query.Search == search && !st.Loading {
				once.Do(func() { close(ready) })
			}
		})
		br.SetSearch(search)
		select {
		case <-ready:
		case <-ctx.Done():
			cancel()
			return listing.State[T]{}, ctx.Err()
		}
		cancel()
	}

	var done <-chan struct{}
	switch {
	case page > 1:
		done = br.SetPage(page)
	case search == "":
		done = br.Load()
	}
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return listing.State[T]{}, ctx.Err()
		}
	}

	st := br.State()
	if st.Err != "" {
		return st, errors.New(st.Err)
	}
	return st, nil
}

func overviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "overview",
		Usage: "print dashboard KPIs, category and hourly breakdowns and top products",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "start date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "end date, YYYY-MM-DD, inclusive"},
			&cli.StringFlag{Name: "date", Usage: "day for the hourly breakdown, defaults to today"},
			&cli.IntFlag{Name: "top", Value: 5, Usage: "best performing products to show"},
			&cli.BoolFlag{Name: "score", Usage: "recalculate fraud scores first"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client := newClient(cfg, logger)
			from, to := c.String("from"), c.String("to")

			if c.Bool("score") {
				fs, err := client.CalculateFraudScores(c.Context)
				if err != nil {
					return err
				}
				logger.Info("fraud scores recalculated",
					zap.Int("processed", fs.Processed),
					zap.Int("updated", fs.Updated),
				)
			}

			ov, err := client.Overview(c.Context, from, to)
			if err != nil {
				return err
			}
			cats, err := client.CompletedByCategory(c.Context, from, to)
			if err != nil {
				return err
			}
			hourly, err := client.HourlySales(c.Context, c.String("date"))
			if err != nil {
				return err
			}
			best, err := client.BestPerforming(c.Context, c.Int("top"))
			if err != nil {
				return err
			}
			return printJSON(struct {
				Overview            domain.Overview                `json:"overview"`
				CompletedByCategory []domain.CategoryCount         `json:"completedByCategory"`
				HourlySales         domain.HourlySales             `json:"hourlySales"`
				BestPerforming      []domain.BestPerformingProduct `json:"bestPerforming"`
			}{ov, cats, hourly, best})
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write products or transactions to a dated CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Value: "transactions", Usage: "products or transactions"},
			&cli.StringFlag{Name: "search"},
			&cli.StringFlag{Name: "dir", Value: "."},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client := newClient(cfg, logger)
			q := apiclient.ListQuery{Limit: 100, Search: c.String("search")}

			var (
				data    any
				columns []csvexport.Column
				base    string
			)
			switch c.String("kind") {
			case "products":
				rows, err := fetchAll(c.Context, q, client.ListProducts)
				if err != nil {
					return err
				}
				data, columns, base = rows, csvexport.ProductColumns, "products"
			case "transactions":
				rows, err := fetchAll(c.Context, q, client.ListTransactions)
				if err != nil {
					return err
				}
				data, columns, base = rows, csvexport.TransactionColumns, "transactions"
			default:
				return cli.Exit(fmt.Sprintf("unknown kind %q", c.String("kind")), 2)
			}

			records, err := csvexport.Records(data)
			if err != nil {
				return err
			}
			path, err := csvexport.WriteFile(c.String("dir"), base, records, columns, time.Now())
			if errors.Is(err, csvexport.ErrNoData) {
				logger.Warn("No data to export", zap.String("kind", base))
				return nil
			}
			if err != nil {
				return err
			}
			logger.Info("export written", zap.String("path", path), zap.Int("rows", len(records)))
			fmt.Println(path)
			return nil
		},
	}
}

func fetchAll[T any](ctx context.Context, q apiclient.ListQuery, list func(context.Context, apiclient.ListQuery) (domain.Page[T], error)) ([]T, error) {
	var out []T
	for q.Page = 1; ; q.Page++ {
		page, err := list(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Data...)
		if q.Page >= page.TotalPages {
			return out, nil
		}
	}
}
