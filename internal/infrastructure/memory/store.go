// Package memory implementa los repositorios sobre go-memdb. Es el almacén de
// datos simulado: no es durable y añade una latencia configurable a cada
// operación para reproducir el comportamiento de un backend remoto.
package memory

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-memdb"
)

// Tablas.
const (
	TableEnterprise   = "enterprise"
	TableBusinessType = "business_type"
	TablePackage      = "subscription_package"
	TableSubscription = "subscription"
	TableCurrency     = "currency_rate"
	TableNotification = "notification"
	TableUser         = "user"
)

const (
	indexID    = "id"
	indexCode  = "code"
	indexEmail = "email"

	indexEnterprise = "enterprise_id"
)

// Store base de datos en memoria compartida por todos los repositorios.
// Las transacciones de escritura de memdb se serializan por base de datos.
type Store struct {
	db      *memdb.MemDB
	latency atomic.Int64
}

// NewStore crea el almacén. latency se espera antes de cada operación.
func NewStore(latency time.Duration) (*Store, error) {
	db, err := memdb.NewMemDB(Schema())
	if err != nil {
		return nil, fmt.Errorf("memory: crear memdb: %w", err)
	}
	s := &Store{db: db}
	s.SetLatency(latency)
	return s, nil
}

// SetLatency cambia la latencia simulada (la carga inicial se hace sin latencia).
func (s *Store) SetLatency(d time.Duration) {
	s.latency.Store(int64(d))
}

// Schema esquema de tablas e índices. Los índices code y email se comprueban
// explícitamente al escribir: memdb no impone unicidad en índices secundarios.
func Schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			TableEnterprise:   codeTable(TableEnterprise),
			TableBusinessType: codeTable(TableBusinessType),
			TablePackage:      codeTable(TablePackage),
			TableCurrency:     codeTable(TableCurrency),
			TableSubscription: {
				Name: TableSubscription,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: idIndex(),
					indexEnterprise: {
						Name:    indexEnterprise,
						Indexer: &memdb.StringFieldIndex{Field: "EnterpriseID"},
					},
				},
			},
			TableNotification: idTable(TableNotification),
			TableUser: {
				Name: TableUser,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: idIndex(),
					indexEmail: {
						Name:    indexEmail,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Email", Lowercase: true},
					},
				},
			},
		},
	}
}

func idIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:    indexID,
		Unique:  true,
		Indexer: &memdb.StringFieldIndex{Field: "ID"},
	}
}

func idTable(name string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name:    name,
		Indexes: map[string]*memdb.IndexSchema{indexID: idIndex()},
	}
}

func codeTable(name string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: name,
		Indexes: map[string]*memdb.IndexSchema{
			indexID: idIndex(),
			indexCode: {
				Name:    indexCode,
				Unique:  true,
				Indexer: &memdb.StringFieldIndex{Field: "Code"},
			},
		},
	}
}

// wait simula la latencia de red; respeta la cancelación del contexto.
func (s *Store) wait(ctx context.Context) error {
	d := time.Duration(s.latency.Load())
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
