// Package requesttype enumerates the kinds of gateway request the client can
// build. Each kind carries a distinct bit so kinds compose into masks.
package requesttype

import (
	"fmt"
	"strings"
)

// RequestType is one kind of gateway operation.
type RequestType uint8

const (
	None              RequestType = 0
	TransactionQuery  RequestType = 1 << 0
	Auth              RequestType = 1 << 1
	Refund            RequestType = 1 << 2
	TransactionUpdate RequestType = 1 << 3
	AccountCheck      RequestType = 1 << 4
	Custom            RequestType = 1 << 5
)

// All lists every concrete request type in declaration order.
var All = []RequestType{TransactionQuery, Auth, Refund, TransactionUpdate, AccountCheck, Custom}

var names = map[RequestType]string{
	None:              "NONE",
	TransactionQuery:  "TRANSACTIONQUERY",
	Auth:              "AUTH",
	Refund:            "REFUND",
	TransactionUpdate: "TRANSACTIONUPDATE",
	AccountCheck:      "ACCOUNTCHECK",
	Custom:            "CUSTOM",
}

// String returns the gateway wire name of the request type, e.g. "AUTH".
func (rt RequestType) String() string {
	if name, ok := names[rt]; ok {
		return name
	}
	return fmt.Sprintf("RequestType(%d)", uint8(rt))
}

// Parse maps a wire name (case-insensitive) back to its request type.
func Parse(name string) (RequestType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for rt, n := range names {
		if n == upper {
			return rt, nil
		}
	}
	return None, fmt.Errorf("unknown request type %q", name)
}

// Mask is a set of request types, combined with bitwise OR.
type Mask uint8

// MaskOf builds a mask from the given request types.
func MaskOf(types ...RequestType) Mask {
	var m Mask
	for _, rt := range types {
		m |= Mask(rt)
	}
	return m
}

// Has reports whether rt is a member of the mask.
func (m Mask) Has(rt RequestType) bool {
	return m&Mask(rt) != 0
}

// Union returns the combination of both masks.
func (m Mask) Union(other Mask) Mask {
	return m | other
}

// Subset reports whether every member of m is also in other.
func (m Mask) Subset(other Mask) bool {
	return m&^other == 0
}

// Types expands the mask into its member request types in declaration order.
func (m Mask) Types() []RequestType {
	var out []RequestType
	for _, rt := range All {
		if m.Has(rt) {
			out = append(out, rt)
		}
	}
	return out
}

// String renders the mask as a pipe-joined list of member names.
func (m Mask) String() string {
	types := m.Types()
	if len(types) == 0 {
		return "NONE"
	}
	parts := make([]string, len(types))
	for i, rt := range types {
		parts[i] = rt.String()
	}
	return strings.Join(parts, "|")
}
