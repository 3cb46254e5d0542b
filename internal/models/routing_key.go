package models

import (
	"strconv"
	"strings"
)

// RoutingKey scopes a statistics partition. ID is usually a tenant or profile and Params
// an application-defined discriminator (currency, payment method, ...). Both are opaque.
type RoutingKey struct {
	ID     string
	Params string
}

// WindowKey identifies the window of one label inside a RoutingKey.
type WindowKey struct {
	RoutingKey
	Label string
}

func NewWindowKey(id, params, label string) WindowKey {
	return WindowKey{RoutingKey: RoutingKey{ID: id, Params: params}, Label: label}
}

// String returns the canonical storage form "<len>:<id>|<len>:<params>|<label>".
// The length prefixes keep distinct triples from colliding whatever bytes they contain.
func (k WindowKey) String() string {
	var b strings.Builder
	b.Grow(len(k.ID) + len(k.Params) + len(k.Label) + 24)
	b.WriteString(strconv.Itoa(len(k.ID)))
	b.WriteByte(':')
	b.WriteString(k.ID)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(len(k.Params)))
	b.WriteByte(':')
	b.WriteString(k.Params)
	b.WriteByte('|')
	b.WriteString(k.Label)
	return b.String()
}
