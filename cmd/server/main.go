package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/shop-gateway/internal/adapter/courier"
	"github.com/example/shop-gateway/internal/adapter/httpapi"
	"github.com/example/shop-gateway/internal/adapter/natsstan"
	"github.com/example/shop-gateway/internal/adapter/repo"
	"github.com/example/shop-gateway/internal/adapter/xendit"
	"github.com/example/shop-gateway/internal/config"
	"github.com/example/shop-gateway/internal/domain"
	"github.com/example/shop-gateway/internal/usecase"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	payments := repo.NewPostgresPaymentRepo(pool)
	shipments := repo.NewPostgresShipmentRepo(pool)
	orders := repo.NewPostgresOrderRepo(pool)

	origin := domain.Address{
		Name:    cfg.Origin.Name,
		Email:   cfg.Origin.Email,
		Phone:   cfg.Origin.Phone,
		Street:  cfg.Origin.Address,
		Zipcode: cfg.Origin.Zipcode,
		AreaID:  cfg.Origin.AreaID,
	}

	gateway := courier.New(courier.Client{
		BaseURL:      cfg.ShippingBaseURL,
		Mock:         cfg.ShippingMode == config.ModeMock,
		APIToken:     cfg.ShippingAPIToken,
		ClientID:     cfg.ShippingClientID,
		ClientSecret: cfg.ShippingClientSecret,
		Username:     cfg.ShippingUsername,
		Password:     cfg.ShippingPassword,
		Origin:       origin,
		CategoryID:   cfg.ShippingCategoryID,
	})
	invoices := xendit.New(xendit.Client{
		BaseURL:   cfg.PaymentBaseURL,
		SecretKey: cfg.PaymentSecretKey,
	})

	var publisher domain.StatusPublisher
	var stanPub *natsstan.Publisher
	if cfg.StanClusterID != "" {
		stanPub = &natsstan.Publisher{
			ClusterID: cfg.StanClusterID,
			ClientID:  cfg.StanClientID,
			URL:       cfg.NatsURL,
			Subject:   cfg.StatusSubject,
		}
		defer stanPub.Close()
		publisher = stanPub
	}

	resolver := usecase.ResolveCourier{Gateway: gateway}
	server := httpapi.NewServer(httpapi.Deps{
		Cfg:            cfg,
		Gateway:        gateway,
		PaymentHook:    usecase.ReconcilePaymentWebhook{Payments: payments, Orders: orders, Events: publisher},
		ShipmentHook:   usecase.ReconcileShipmentWebhook{Shipments: shipments, Orders: orders, Events: publisher},
		Rates:          usecase.QuoteRates{Gateway: gateway, Origin: origin},
		CreateShipment: usecase.CreateShipment{Resolver: resolver, Gateway: gateway, Shipments: shipments, Origin: origin},
		CreateInvoice:  usecase.CreateInvoice{Gateway: invoices, Payments: payments},
		GetInvoice:     usecase.GetInvoice{Gateway: invoices},
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: server.Router}
	go func() {
		log.Printf("http listening on %s (shipping mode: %s)", srv.Addr, cfg.ShippingMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}
