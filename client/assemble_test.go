package client

import (
	"errors"
	"testing"
	"time"

	"github.com/fetidd/webservices-frontend/internal/requesttype"
	"github.com/fetidd/webservices-frontend/schema"
)

func authValues() map[string]string {
	return map[string]string{
		"accounttypedescription": "ECOM",
		"currencyiso3a":          "GBP",
		"pan":                    "4111111111111111",
		"sitereference":          "site123",
		"baseamount":             "1050",
		"expirydate":             "12/30",
		"securitycode":           "123",
	}
}

func TestBuildPayloadMissingRequired(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	values := authValues()
	delete(values, "pan")
	delete(values, "securitycode")

	_, err := a.BuildPayload(requesttype.Auth, values)
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if missing.RequestType != requesttype.Auth || len(missing.Fields) != 2 {
		t.Fatalf("unexpected error detail: %+v", missing)
	}
}

func TestBuildPayloadValidationFailure(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	values := authValues()
	values["accounttypedescription"] = "ecom"

	_, err := a.BuildPayload(requesttype.Auth, values)
	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if invalid.Field != "accounttypedescription" || invalid.Value != "ecom" {
		t.Fatalf("unexpected error detail: %+v", invalid)
	}
}

func TestBuildPayloadInjectsRequestTypes(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	payload, err := a.BuildPayload(requesttype.Auth, authValues())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	types, ok := payload["requesttypedescriptions"].([]string)
	if !ok || len(types) != 1 || types[0] != "AUTH" {
		t.Fatalf("requesttypedescriptions should be injected as [AUTH], got %v",
			payload["requesttypedescriptions"])
	}
	if payload["pan"] != "4111111111111111" {
		t.Fatalf("payload should carry the entered values, got %v", payload)
	}
}

func TestBuildPayloadDropsFieldsOutsideTheType(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	values := authValues()
	values["settlebaseamount"] = "500" // TRANSACTIONUPDATE/CUSTOM only
	values["madeupfield"] = "x"

	payload, err := a.BuildPayload(requesttype.Auth, values)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := payload["settlebaseamount"]; ok {
		t.Fatalf("field outside the inclusion mask must be dropped")
	}
	if _, ok := payload["madeupfield"]; ok {
		t.Fatalf("unknown field must be dropped")
	}
}

func TestBuildPayloadSkipsEmptyValues(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	values := authValues()
	values["operatorname"] = ""

	payload, err := a.BuildPayload(requesttype.Auth, values)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := payload["operatorname"]; ok {
		t.Fatalf("empty values must not be sent")
	}
}

func TestBuildPayloadCustomTakesUserRequestTypes(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	payload, err := a.BuildPayload(requesttype.Custom, map[string]string{
		"requesttypedescriptions": "ACCOUNTCHECK, AUTH",
		"sitereference":           "site123",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	types, _ := payload["requesttypedescriptions"].([]string)
	if len(types) != 2 || types[0] != "ACCOUNTCHECK" || types[1] != "AUTH" {
		t.Fatalf("comma-separated request types should split, got %v", types)
	}
}

func TestBuildPayloadCustomRequiresRequestTypes(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	_, err := a.BuildPayload(requesttype.Custom, map[string]string{"sitereference": "site123"})
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError for CUSTOM without request types, got %v", err)
	}
	if len(missing.Fields) != 1 || missing.Fields[0] != "requesttypedescriptions" {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}
}

func TestBuildQueryPayload(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 4, 30, 23, 59, 59, 0, time.UTC)

	payload, err := a.BuildQueryPayload(start, end, map[string]string{
		"sitereference": "site123, site456",
		"currencyiso3a": "GBP",
		"madeupfield":   "x",
		"pan":           "4111111111111111", // not a query field
		"operatorname":  "",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	filter, _ := payload["filter"].(map[string]any)
	if filter == nil {
		t.Fatalf("payload has no filter: %v", payload)
	}
	sites, _ := filter["sitereference"].([]map[string]string)
	if len(sites) != 2 || sites[0]["value"] != "site123" || sites[1]["value"] != "site456" {
		t.Fatalf("comma-separated filter should split, got %v", sites)
	}
	if _, ok := filter["madeupfield"]; ok {
		t.Fatalf("unknown filter field must be dropped")
	}
	if _, ok := filter["pan"]; ok {
		t.Fatalf("non-query field must be dropped from the filter")
	}
	starts, _ := filter["starttimestamp"].([]map[string]string)
	if len(starts) != 1 || starts[0]["value"] != "2023-04-01 00:00:00" {
		t.Fatalf("starttimestamp wrong: %v", starts)
	}
	ends, _ := filter["endtimestamp"].([]map[string]string)
	if len(ends) != 1 || ends[0]["value"] != "2023-04-30 23:59:59" {
		t.Fatalf("endtimestamp wrong: %v", ends)
	}
	types, _ := payload["requesttypedescriptions"].([]string)
	if len(types) != 1 || types[0] != "TRANSACTIONQUERY" {
		t.Fatalf("query payload should target TRANSACTIONQUERY, got %v", types)
	}
}

func TestBuildQueryPayloadValidatesFilterValues(t *testing.T) {
	a := NewAssembler(schema.Default(nil), nil)
	_, err := a.BuildQueryPayload(time.Now(), time.Now(), map[string]string{
		"billingemail": "good@mail.com, notanemail",
	})
	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if invalid.Value != "notanemail" {
		t.Fatalf("unexpected failing value: %+v", invalid)
	}
}
