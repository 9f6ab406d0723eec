package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/shop-gateway/internal/domain"
)

type fakePaymentRepo struct {
	mu        sync.Mutex
	seq       int
	rows      map[string]domain.Payment // by id
	events    []domain.PaymentEvent
	eventKeys map[string]bool
	upsertErr error
	eventErr  error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{rows: map[string]domain.Payment{}, eventKeys: map[string]bool{}}
}

func (f *fakePaymentRepo) FindByExternalID(_ context.Context, externalID string) (domain.Payment, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.SessionID == externalID || p.ID == externalID {
			return p, true, nil
		}
	}
	return domain.Payment{}, false, nil
}

func (f *fakePaymentRepo) Upsert(_ context.Context, p domain.Payment) (domain.Payment, error) {
	if f.upsertErr != nil {
		return domain.Payment{}, f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		for _, row := range f.rows {
			if row.SessionID == p.SessionID {
				p.ID = row.ID
				break
			}
		}
	}
	if p.ID == "" {
		f.seq++
		p.ID = fmt.Sprintf("pay-%d", f.seq)
	}
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakePaymentRepo) AppendEvent(_ context.Context, ev domain.PaymentEvent) (bool, error) {
	if f.eventErr != nil {
		return false, f.eventErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ev.PaymentID + "|" + ev.ExternalID + "|" + ev.EventType
	if f.eventKeys[key] {
		return false, nil
	}
	f.eventKeys[key] = true
	f.events = append(f.events, ev)
	return true, nil
}

func (f *fakePaymentRepo) bySession(sessionID string) (domain.Payment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.SessionID == sessionID {
			return p, true
		}
	}
	return domain.Payment{}, false
}

type fakeShipmentRepo struct {
	mu        sync.Mutex
	seq       int
	rows      map[string]domain.Shipment
	events    []domain.ShipmentEvent
	eventKeys map[string]bool
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{rows: map[string]domain.Shipment{}, eventKeys: map[string]bool{}}
}

func (f *fakeShipmentRepo) FindByExternalID(_ context.Context, awb, externalID string) (domain.Shipment, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.rows {
		if (awb != "" && s.AWB == awb) || s.ID == externalID {
			return s, true, nil
		}
	}
	return domain.Shipment{}, false, nil
}

func (f *fakeShipmentRepo) Upsert(_ context.Context, s domain.Shipment) (domain.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" && s.AWB != "" {
		for _, row := range f.rows {
			if row.AWB == s.AWB {
				s.ID = row.ID
				break
			}
		}
	}
	if s.ID == "" {
		f.seq++
		s.ID = fmt.Sprintf("shp-%d", f.seq)
	}
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeShipmentRepo) AppendEvent(_ context.Context, ev domain.ShipmentEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ev.ShipmentID + "|" + ev.ExternalID + "|" + ev.Status
	if f.eventKeys[key] {
		return false, nil
	}
	f.eventKeys[key] = true
	f.events = append(f.events, ev)
	return true, nil
}

func (f *fakeShipmentRepo) byAWB(awb string) (domain.Shipment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.rows {
		if s.AWB == awb {
			return s, true
		}
	}
	return domain.Shipment{}, false
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	statuses map[string]domain.OrderStatus
	courier  map[string]string
	tracking map[string]string
}

func newFakeOrderRepo(orders map[string]domain.OrderStatus) *fakeOrderRepo {
	if orders == nil {
		orders = map[string]domain.OrderStatus{}
	}
	return &fakeOrderRepo{statuses: orders, courier: map[string]string{}, tracking: map[string]string{}}
}

func (f *fakeOrderRepo) Status(_ context.Context, orderID string) (domain.OrderStatus, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.statuses[orderID]
	return st, ok, nil
}

func (f *fakeOrderRepo) CompareAndSetStatus(_ context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses[orderID] != from {
		return false, nil
	}
	f.statuses[orderID] = to
	return true, nil
}

func (f *fakeOrderRepo) SetShippingInfo(_ context.Context, orderID, courier, awb string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if courier != "" {
		f.courier[orderID] = courier
	}
	if awb != "" {
		f.tracking[orderID] = awb
	}
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.OrderStatusEvent
	err    error
}

func (f *fakePublisher) PublishOrderStatus(_ context.Context, ev domain.OrderStatusEvent) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	return nil
}

type fakeShipGateway struct {
	quotes      []domain.RateQuote
	ratesErr    error
	created     domain.CreatedShipment
	createErr   error
	areas       []domain.Area
	lastSel     domain.CourierSelection
	rateCalls   int
	createCalls int
}

func (f *fakeShipGateway) GetRates(context.Context, domain.RateRequest) ([]domain.RateQuote, error) {
	f.rateCalls++
	if f.ratesErr != nil {
		return nil, f.ratesErr
	}
	return f.quotes, nil
}

func (f *fakeShipGateway) CreateShipment(_ context.Context, sel domain.CourierSelection, _ domain.CreateShipmentRequest) (domain.CreatedShipment, error) {
	f.createCalls++
	f.lastSel = sel
	if f.createErr != nil {
		return domain.CreatedShipment{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeShipGateway) SearchAreas(context.Context, string) ([]domain.Area, error) {
	return f.areas, nil
}

type fakeInvoiceGateway struct {
	invoice domain.Invoice
	err     error
}

func (f *fakeInvoiceGateway) CreateInvoice(context.Context, domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if f.err != nil {
		return domain.Invoice{}, f.err
	}
	return f.invoice, nil
}

func (f *fakeInvoiceGateway) GetInvoice(context.Context, string) (domain.Invoice, error) {
	if f.err != nil {
		return domain.Invoice{}, f.err
	}
	return f.invoice, nil
}
