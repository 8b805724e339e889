package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/quillbooks/quillbooks/internal/catalog"
	catalogStore "github.com/quillbooks/quillbooks/internal/catalog/store"
	"github.com/quillbooks/quillbooks/internal/config"
	"github.com/quillbooks/quillbooks/internal/customer"
	customerStore "github.com/quillbooks/quillbooks/internal/customer/store"
	"github.com/quillbooks/quillbooks/internal/database"
	"github.com/quillbooks/quillbooks/internal/expense"
	expenseStore "github.com/quillbooks/quillbooks/internal/expense/store"
	quillHttp "github.com/quillbooks/quillbooks/internal/http"
	"github.com/quillbooks/quillbooks/internal/http/auth"
	"github.com/quillbooks/quillbooks/internal/http/customers"
	"github.com/quillbooks/quillbooks/internal/http/expenses"
	"github.com/quillbooks/quillbooks/internal/http/invoices"
	"github.com/quillbooks/quillbooks/internal/http/items"
	"github.com/quillbooks/quillbooks/internal/http/payments"
	"github.com/quillbooks/quillbooks/internal/http/quotes"
	"github.com/quillbooks/quillbooks/internal/http/reports"
	"github.com/quillbooks/quillbooks/internal/http/taxes"
	"github.com/quillbooks/quillbooks/internal/identity"
	identityStore "github.com/quillbooks/quillbooks/internal/identity/store"
	"github.com/quillbooks/quillbooks/internal/invoice"
	invoiceStore "github.com/quillbooks/quillbooks/internal/invoice/store"
	"github.com/quillbooks/quillbooks/internal/item"
	itemStore "github.com/quillbooks/quillbooks/internal/item/store"
	"github.com/quillbooks/quillbooks/internal/payment"
	paymentStore "github.com/quillbooks/quillbooks/internal/payment/store"
	"github.com/quillbooks/quillbooks/internal/quote"
	quoteStore "github.com/quillbooks/quillbooks/internal/quote/store"
	"github.com/quillbooks/quillbooks/internal/report"
	reportStore "github.com/quillbooks/quillbooks/internal/report/store"
	"github.com/quillbooks/quillbooks/internal/tax"
	taxStore "github.com/quillbooks/quillbooks/internal/tax/store"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if level, err := zerolog.ParseLevel(cfg.App.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.DB.Migrations {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}

	var cat catalog.Reader = catalogStore.New(db)

	var (
		identityService = identity.NewService(identityStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		customerService = customer.NewService(customerStore.New(db))
		itemService     = item.NewService(itemStore.New(db), cat)
		taxService      = tax.NewService(taxStore.New(db))
		quoteService    = quote.NewService(quoteStore.New(db), cat)
		invoiceService  = invoice.NewService(invoiceStore.New(db), cat)
		paymentService  = payment.NewService(paymentStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db), cat)
		reportService   = report.NewService(reportStore.New(db))
	)

	router := quillHttp.New(quillHttp.Config{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Identity:       identityService,

		Auth:      auth.NewHandler(identityService),
		Customers: customers.NewHandler(customerService),
		Items:     items.NewHandler(itemService),
		Taxes:     taxes.NewHandler(taxService),
		Quotes:    quotes.NewHandler(quoteService),
		Invoices:  invoices.NewHandler(invoiceService),
		Payments:  payments.NewHandler(paymentService),
		Expenses:  expenses.NewHandler(expenseService),
		Reports:   reports.NewHandler(reportService),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	logger.Info().Str("addr", server.Addr).Msg("starting server")

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
