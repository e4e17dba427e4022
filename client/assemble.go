package client

import (
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"github.com/fetidd/webservices-frontend/internal/requesttype"
	"github.com/fetidd/webservices-frontend/schema"
)

// timestampFormat is the gateway's filter timestamp layout.
const timestampFormat = "2006-01-02 15:04:05"

// Assembler turns user-entered field values into gateway request payloads,
// gated by the field schema: values are validated, required fields are
// checked by set difference, and fields the request type does not include
// are dropped with a warning instead of being sent.
type Assembler struct {
	schema *schema.Schema
	logger *slog.Logger
}

func NewAssembler(s *schema.Schema, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		schema: s,
		logger: logger.With(slog.String("component", "assembler")),
	}
}

// BuildPayload assembles the payload for an AUTH, REFUND,
// TRANSACTIONUPDATE, ACCOUNTCHECK or CUSTOM request. The
// requesttypedescriptions list is injected from the request type itself;
// only CUSTOM takes it from the user, as a comma-separated value.
func (a *Assembler) BuildPayload(rt requesttype.RequestType, values map[string]string) (map[string]any, error) {
	if missing := a.schema.MissingRequired(rt, values); len(missing) > 0 {
		return nil, &MissingFieldsError{RequestType: rt, Fields: missing}
	}

	payload := map[string]any{}
	for field, value := range values {
		if value == "" {
			continue
		}
		if !a.schema.Validate(field, value) {
			return nil, &ValidationError{Field: field, Label: a.schema.Label(field), Value: value}
		}
		def, ok := a.schema.Get(field)
		if !ok {
			a.logger.Warn("dropping unknown field from payload",
				slog.String("field", field), slog.String("requesttype", rt.String()))
			continue
		}
		if !def.Include.Has(rt) {
			a.logger.Warn("dropping field not included for request type",
				slog.String("field", field), slog.String("requesttype", rt.String()))
			continue
		}
		if field == "requesttypedescriptions" {
			continue // handled below
		}
		payload[field] = value
	}

	if rt == requesttype.Custom {
		payload["requesttypedescriptions"] = splitList(values["requesttypedescriptions"])
	} else {
		payload["requesttypedescriptions"] = []string{rt.String()}
	}
	return payload, nil
}

// BuildQueryPayload assembles a TRANSACTIONQUERY payload for the period
// [start, end]. Each filter value may hold several comma-separated
// alternatives; every alternative is validated against the field's schema
// entry before it is sent.
func (a *Assembler) BuildQueryPayload(start, end time.Time, filters map[string]string) (map[string]any, error) {
	filter := map[string]any{}
	for field, raw := range filters {
		if raw == "" {
			continue
		}
		def, ok := a.schema.Get(field)
		if !ok {
			a.logger.Warn("dropping unknown filter field", slog.String("field", field))
			continue
		}
		if !def.Include.Has(requesttype.TransactionQuery) {
			a.logger.Warn("dropping filter field not included for queries",
				slog.String("field", field))
			continue
		}
		var alternatives []map[string]string
		for _, value := range splitList(raw) {
			if !a.schema.Validate(field, value) {
				return nil, &ValidationError{Field: field, Label: a.schema.Label(field), Value: value}
			}
			alternatives = append(alternatives, map[string]string{"value": value})
		}
		if len(alternatives) > 0 {
			filter[field] = alternatives
		}
	}
	filter["starttimestamp"] = []map[string]string{{"value": start.Format(timestampFormat)}}
	filter["endtimestamp"] = []map[string]string{{"value": end.Format(timestampFormat)}}

	return map[string]any{
		"requesttypedescriptions": []string{requesttype.TransactionQuery.String()},
		"filter":                  filter,
	}, nil
}

// splitList breaks a comma-separated value into trimmed, non-empty parts.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
