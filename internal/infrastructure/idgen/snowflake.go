// Package idgen genera IDs de recursos con prefijo a partir de un nodo snowflake.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Snowflake IDs crecientes y sin colisiones dentro de un nodo.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake crea el generador para el nodo indicado (0..1023).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("idgen: nodo %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

// NewID devuelve prefix seguido del ID snowflake en base 10.
func (g *Snowflake) NewID(prefix string) string {
	return prefix + g.node.Generate().String()
}
