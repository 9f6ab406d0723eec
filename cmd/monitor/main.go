package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	stan "github.com/nats-io/stan.go"

	"github.com/example/shop-gateway/internal/config"
	"github.com/example/shop-gateway/internal/domain"
)

// Operator tool: tails order status change events published by the server
// so support can watch reconciliation in real time.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	if cfg.StanClusterID == "" {
		log.Fatal("STAN_CLUSTER_ID is required")
	}
	clientID := cfg.StanClientID
	if clientID == "" {
		clientID = fmt.Sprintf("shop-monitor-%d", time.Now().UnixNano())
	}

	sc, err := stan.Connect(cfg.StanClusterID, clientID, stan.NatsURL(cfg.NatsURL))
	if err != nil {
		log.Fatalf("stan connect: %v", err)
	}
	defer sc.Close()

	sub, err := sc.QueueSubscribe(cfg.StatusSubject, "shop-monitors", func(m *stan.Msg) {
		var ev domain.OrderStatusEvent
		if err := json.Unmarshal(m.Data, &ev); err != nil {
			log.Printf("invalid message: %v", err)
			// Don't ACK, let it timeout and redeliver
			return
		}
		log.Printf("order %s -> %s (source %s, at %s)", ev.OrderID, ev.Status, ev.Source, ev.At.Format(time.RFC3339))
		if err := m.Ack(); err != nil {
			log.Printf("ack failed: %v", err)
		}
	}, stan.DurableName("shop-monitor"), stan.SetManualAckMode(), stan.AckWait(10*time.Second), stan.DeliverAllAvailable())
	if err != nil {
		log.Fatalf("stan subscribe: %v", err)
	}
	defer sub.Close()

	log.Printf("monitoring %s on %s", cfg.StatusSubject, cfg.NatsURL)
	<-ctx.Done()
}
