// Package bootstrap assembles the bounded context services over one database handle.
package bootstrap

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"gorm.io/gorm"

	analyticsobs "github.com/Apurer/erpflow/internal/domains/analytics/adapters/observability"
	analyticspg "github.com/Apurer/erpflow/internal/domains/analytics/adapters/persistence/postgres"
	analyticsapp "github.com/Apurer/erpflow/internal/domains/analytics/application"
	analyticsports "github.com/Apurer/erpflow/internal/domains/analytics/ports"
	customerpg "github.com/Apurer/erpflow/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/Apurer/erpflow/internal/domains/customers/application"
	customerports "github.com/Apurer/erpflow/internal/domains/customers/ports"
	invoicepg "github.com/Apurer/erpflow/internal/domains/invoices/adapters/persistence/postgres"
	invoiceapp "github.com/Apurer/erpflow/internal/domains/invoices/application"
	invoiceports "github.com/Apurer/erpflow/internal/domains/invoices/ports"
	leadpg "github.com/Apurer/erpflow/internal/domains/leads/adapters/persistence/postgres"
	leadapp "github.com/Apurer/erpflow/internal/domains/leads/application"
	leadports "github.com/Apurer/erpflow/internal/domains/leads/ports"
	productpg "github.com/Apurer/erpflow/internal/domains/products/adapters/persistence/postgres"
	productapp "github.com/Apurer/erpflow/internal/domains/products/application"
	productports "github.com/Apurer/erpflow/internal/domains/products/ports"
	seedingapp "github.com/Apurer/erpflow/internal/domains/seeding/application"
	usercrypto "github.com/Apurer/erpflow/internal/domains/users/adapters/crypto"
	userobs "github.com/Apurer/erpflow/internal/domains/users/adapters/observability"
	userpg "github.com/Apurer/erpflow/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/erpflow/internal/domains/users/application"
	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
	platformobservability "github.com/Apurer/erpflow/internal/platform/observability"
)

// Options tune how services are assembled.
type Options struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	// Sessions defaults to the database session store.
	Sessions    userports.SessionStore
	Instruments *platformobservability.Instruments
	Logger      *slog.Logger
}

// Services is the set of use case ports handed to the transports.
type Services struct {
	Users     userports.Service
	UserRepo  *userpg.Repository
	Sessions  userports.SessionStore
	Customers customerports.Service
	Products  productports.Service
	Invoices  invoiceports.Service
	Leads     leadports.Service
	Analytics analyticsports.Service
	Seeder    *seedingapp.Service
}

// Build wires every service over db. The schema must already be migrated.
func Build(db *gorm.DB, opts Options) (*Services, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tokens, err := usercrypto.NewJWTIssuer(opts.JWTSecret, opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = userpg.NewSessionStore(db)
	}

	userRepo := userpg.NewRepository(db)
	users := userobs.New(
		userapp.NewService(userRepo, usercrypto.NewBcryptHasher(opts.BcryptCost), tokens, userapp.WithSessionStore(sessions)),
		userobs.WithLogger(logger),
		userobs.WithTracer(opts.Instruments.Tracer("erpflow.users.service")),
		userobs.WithMeter(opts.Instruments.Meter("erpflow.users.service")),
	)
	customers := customerapp.NewService(customerpg.NewRepository(db))
	products := productapp.NewService(productpg.NewRepository(db), productpg.NewCategoryRepository(db))
	invoices := invoiceapp.NewService(invoicepg.NewRepository(db))
	leads := leadapp.NewService(leadpg.NewRepository(db))
	analytics := analyticsobs.New(
		analyticsapp.NewService(analyticspg.NewStore(db)),
		analyticsobs.WithLogger(logger),
		analyticsobs.WithTracer(opts.Instruments.Tracer("erpflow.analytics.service")),
		analyticsobs.WithMeter(opts.Instruments.Meter("erpflow.analytics.service")),
	)
	seeder := seedingapp.NewService(seedingapp.Dependencies{
		UserCount: userRepo,
		Users:     users,
		Customers: customers,
		Products:  products,
		Invoices:  invoices,
		Leads:     leads,
	}, seedingapp.WithLogger(logger))

	return &Services{
		Users:     users,
		UserRepo:  userRepo,
		Sessions:  sessions,
		Customers: customers,
		Products:  products,
		Invoices:  invoices,
		Leads:     leads,
		Analytics: analytics,
		Seeder:    seeder,
	}, nil
}
