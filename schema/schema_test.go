package schema

import (
	"testing"

	"github.com/fetidd/webservices-frontend/internal/requesttype"
)

func TestDefaultIsDeterministic(t *testing.T) {
	a, b := Default(nil), Default(nil)
	namesA, namesB := a.Names(), b.Names()
	if len(namesA) != len(namesB) {
		t.Fatalf("field counts differ: %d vs %d", len(namesA), len(namesB))
	}
	for i, name := range namesA {
		if namesB[i] != name {
			t.Fatalf("field order differs at %d: %s vs %s", i, name, namesB[i])
		}
		defA, _ := a.Get(name)
		defB, _ := b.Get(name)
		if defA != defB {
			t.Fatalf("definitions differ for %s: %+v vs %+v", name, defA, defB)
		}
	}
}

func TestRequireIsSubsetOfInclude(t *testing.T) {
	// requesttypedescriptions historically had requirement and inclusion
	// masks that did not mirror each other cleanly; it gets called out by
	// name so a regression is recognisable rather than excused.
	exceptions := map[string]bool{}
	s := Default(nil)
	for _, name := range s.Names() {
		def, _ := s.Get(name)
		if !def.Require.Subset(def.Include) && !exceptions[name] {
			t.Fatalf("%s: requirement mask %s is not a subset of inclusion mask %s",
				name, def.Require, def.Include)
		}
	}
	def, ok := s.Get("requesttypedescriptions")
	if !ok {
		t.Fatalf("requesttypedescriptions missing from default schema")
	}
	if !def.Require.Has(requesttype.Custom) {
		t.Fatalf("requesttypedescriptions must stay user-required for CUSTOM")
	}
}

func TestFieldsForAuth(t *testing.T) {
	s := Default(nil)
	got := map[string]bool{}
	for _, name := range s.FieldsFor(requesttype.Auth) {
		got[name] = true
	}
	for _, want := range []string{"pan", "securitycode", "baseamount"} {
		if !got[want] {
			t.Fatalf("FieldsFor(AUTH) should include %s, got %v", want, s.FieldsFor(requesttype.Auth))
		}
	}
	if got["settlebaseamount"] {
		t.Fatalf("FieldsFor(AUTH) must not include settlebaseamount")
	}
}

func TestDefaultActiveColumnOrdering(t *testing.T) {
	s := Default(nil)
	cols := s.ActiveColumns()
	want := []string{
		"transactionstartedtimestamp",
		"settlestatus",
		"accounttypedescription",
		"maskedpan",
		"paymenttypedescription",
		"requesttypedescription",
		"sitereference",
		"transactionreference",
		"baseamount",
		"operatorname",
	}
	if len(cols) != len(want) {
		t.Fatalf("active columns got %v want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("column %d got %s want %s (all: %v)", i, cols[i], want[i], cols)
		}
	}
	assertContiguousPositions(t, s)
}

func TestValidateUnknownFieldIsPermissive(t *testing.T) {
	s := Default(nil)
	for _, value := range []string{"", "anything", "@@@"} {
		if !s.Validate("unknownField", value) {
			t.Fatalf("unknown field must pass validation for %q", value)
		}
	}
	s.Strict = true
	if s.Validate("unknownField", "anything") {
		t.Fatalf("strict schema must fail validation for unknown fields")
	}
	// Known, constrained fields validate the same either way.
	if !s.Validate("accounttypedescription", "ECOM") {
		t.Fatalf("strictness must not affect known fields")
	}
}

func TestValidateFieldWithoutValidator(t *testing.T) {
	s := Default(nil)
	if !s.Validate("sitereference", "") || !s.Validate("sitereference", "site123") {
		t.Fatalf("fields without a validator accept anything")
	}
}

func TestMissingRequired(t *testing.T) {
	s := Default(nil)
	values := map[string]string{
		"pan":           "4111111111111111",
		"expirydate":    "12/30",
		"securitycode":  "123",
		"currencyiso3a": "GBP",
		"sitereference": "",
	}
	missing := s.MissingRequired(requesttype.Auth, values)
	want := map[string]bool{"accounttypedescription": true, "sitereference": true, "baseamount": true}
	if len(missing) != len(want) {
		t.Fatalf("missing got %v want keys %v", missing, want)
	}
	for _, name := range missing {
		if !want[name] {
			t.Fatalf("unexpected missing field %s in %v", name, missing)
		}
	}

	for _, name := range s.RequiredFieldsFor(requesttype.Auth) {
		values[name] = "x"
	}
	if missing := s.MissingRequired(requesttype.Auth, values); len(missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", missing)
	}
}

func TestLabelFallsBackToFieldName(t *testing.T) {
	s := Default(nil)
	if got := s.Label("pan"); got != "Card number" {
		t.Fatalf("Label(pan) got %s", got)
	}
	if got := s.Label("nosuchfield"); got != "nosuchfield" {
		t.Fatalf("unknown label should fall back to the name, got %s", got)
	}
}

func TestNormalizeRepairsCorruptPositions(t *testing.T) {
	s := Default(nil)
	// Fake a gap the way a bad external snapshot could.
	s.fields["settlestatus"].Position = 42
	s.normalizePositions()
	assertContiguousPositions(t, s)
	cols := s.ActiveColumns()
	if cols[len(cols)-1] != "settlestatus" {
		t.Fatalf("repaired ordering should push the stray column last, got %v", cols)
	}
}

// assertContiguousPositions checks that active positions are exactly 0..k-1
// with no gaps or duplicates and that inactive fields carry the sentinel.
func assertContiguousPositions(t *testing.T, s *Schema) {
	t.Helper()
	seen := map[int]string{}
	k := 0
	for _, name := range s.Names() {
		def, _ := s.Get(name)
		if !def.Active {
			if def.Position != PositionNone {
				t.Fatalf("inactive field %s has position %d", name, def.Position)
			}
			continue
		}
		if prev, dup := seen[def.Position]; dup {
			t.Fatalf("position %d held by both %s and %s", def.Position, prev, name)
		}
		seen[def.Position] = name
		k++
	}
	for i := 0; i < k; i++ {
		if _, ok := seen[i]; !ok {
			t.Fatalf("gap at position %d (active=%d, held=%v)", i, k, seen)
		}
	}
}
