// Package events publica en NATS las reubicaciones confirmadas.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/jhoicas/stock-relocation/pkg/config"
	"github.com/nats-io/nats.go"
)

var _ relocation.EventPublisher = (*NATSPublisher)(nil)

// Conn subconjunto de *nats.Conn usado por el publicador.
type Conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
}

// Connect abre la conexión NATS con reconexión automática.
func Connect(cfg config.NATSConfig, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}

// NATSPublisher publica un mensaje JSON por reubicación confirmada en Subject.
type NATSPublisher struct {
	conn    Conn
	subject string
}

// NewNATSPublisher construye el publicador.
func NewNATSPublisher(conn Conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subject}
}

// PublishConfirmed publica todos los eventos y espera el flush; devuelve los errores acumulados.
func (p *NATSPublisher) PublishConfirmed(ctx context.Context, events []relocation.ConfirmedEvent) error {
	var errs []error
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("evento %s: %w", e.RelocationID, err))
			continue
		}
		if err := p.conn.Publish(p.subject, data); err != nil {
			errs = append(errs, fmt.Errorf("publicar %s: %w", e.RelocationID, err))
		}
	}
	if len(events) > len(errs) {
		if err := p.conn.FlushWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush: %w", err))
		}
	}
	return errors.Join(errs...)
}
