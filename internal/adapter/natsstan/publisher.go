package natsstan

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/example/shop-gateway/internal/domain"
	stan "github.com/nats-io/stan.go"
)

// Publisher — best-effort публикация смен статуса заказа в NATS Streaming.
// Соединение ленивое, под мьютексом: первый успешный Publish его открывает.
type Publisher struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string

	mu sync.Mutex
	sc stan.Conn
}

func (p *Publisher) PublishOrderStatus(_ context.Context, ev domain.OrderStatusEvent) error {
	sc, err := p.conn()
	if err != nil {
		return err
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return sc.Publish(p.Subject, b)
}

func (p *Publisher) conn() (stan.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sc != nil {
		return p.sc, nil
	}
	clientID := p.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("shop-gateway-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(p.ClusterID, clientID, stan.NatsURL(p.URL))
	if err != nil {
		return nil, err
	}
	p.sc = sc
	return sc, nil
}

// Close — закрыть соединение при останове сервиса.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sc != nil {
		_ = p.sc.Close()
		p.sc = nil
	}
}

var _ domain.StatusPublisher = (*Publisher)(nil)
