package schema

import (
	"golang.org/x/exp/slog"

	"github.com/fetidd/webservices-frontend/internal/requesttype"
)

// Short mask aliases keep the default table readable.
var (
	none   = requesttype.MaskOf()
	query  = requesttype.MaskOf(requesttype.TransactionQuery)
	auth   = requesttype.MaskOf(requesttype.Auth)
	refund = requesttype.MaskOf(requesttype.Refund)
	update = requesttype.MaskOf(requesttype.TransactionUpdate)
	check  = requesttype.MaskOf(requesttype.AccountCheck)
	custom = requesttype.MaskOf(requesttype.Custom)
)

// defaultTail is the provisional position for default-active columns without
// an explicit slot; normalizePositions folds them in after the pinned ones,
// in insertion order.
const defaultTail = 99

// Default builds the hardcoded field table. It is pure and deterministic:
// same fields, same order, same attributes on every call. Active column
// positions are normalized to a contiguous run before returning.
func Default(logger *slog.Logger) *Schema {
	s := New(logger)
	for _, f := range []struct {
		name string
		def  FieldDef
	}{
		{"accounttypedescription", FieldDef{
			Validator: ValidatorAccountType,
			Include:   query | auth | custom,
			Require:   auth | check,
			Label:     "Account",
			Active:    true,
			Position:  defaultTail,
		}},
		{"billingemail", FieldDef{
			Validator: ValidatorEmail,
			Include:   query | custom,
			Label:     "E-mail",
			Position:  PositionNone,
		}},
		{"billingfirstname", FieldDef{
			Include:  query | custom,
			Label:    "First name",
			Position: PositionNone,
		}},
		{"billinglastname", FieldDef{
			Include:  query | custom,
			Label:    "Last name",
			Position: PositionNone,
		}},
		{"billingpostcode", FieldDef{
			Include:  query | custom,
			Label:    "Postcode",
			Position: PositionNone,
		}},
		{"billingpremise", FieldDef{
			Include:  query | custom,
			Label:    "Premise",
			Position: PositionNone,
		}},
		{"billingstreet", FieldDef{
			Include:  query | custom,
			Label:    "Street",
			Position: PositionNone,
		}},
		{"currencyiso3a", FieldDef{
			Include:  query | auth | custom,
			Require:  auth | check,
			Label:    "Currency",
			Position: PositionNone,
		}},
		{"customerip", FieldDef{
			Validator: ValidatorIP,
			Include:   query | auth | custom,
			Label:     "Customer IP",
			Position:  PositionNone,
		}},
		{"orderreference", FieldDef{
			Include:  query | auth | refund | update | custom,
			Label:    "Order ref.",
			Position: PositionNone,
		}},
		{"pan", FieldDef{
			Include:  auth | check | custom,
			Require:  auth | check,
			Label:    "Card number",
			Position: PositionNone,
		}},
		{"maskedpan", FieldDef{
			Include:  query | custom,
			Label:    "Card number",
			Active:   true,
			Position: defaultTail,
		}},
		{"parenttransactionreference", FieldDef{
			Include:  query | auth | refund | custom,
			Require:  refund,
			Label:    "Parent ref.",
			Position: PositionNone,
		}},
		{"paymenttypedescriptions", FieldDef{
			Include:  query | auth | custom,
			Label:    "Payment type",
			Position: PositionNone,
		}},
		{"paymenttypedescription", FieldDef{
			Include:  query | custom,
			Label:    "Payment type",
			Active:   true,
			Position: defaultTail,
		}},
		{"requesttypedescriptions", FieldDef{
			// Every request type needs this field on the wire, but payload
			// assembly injects it for the non-custom types, so only CUSTOM
			// requires the user to supply it.
			Include:  auth | refund | update | check | custom,
			Require:  custom,
			Label:    "Request types",
			Position: PositionNone,
		}},
		{"requesttypedescription", FieldDef{
			Include:  query | custom,
			Label:    "Request type",
			Active:   true,
			Position: defaultTail,
		}},
		{"sitereference", FieldDef{
			Include:  query | auth | refund | update | custom,
			Require:  auth | refund | update | check,
			Label:    "Site ref.",
			Active:   true,
			Position: defaultTail,
		}},
		{"transactionreference", FieldDef{
			Include:  query | update | custom,
			Require:  update,
			Label:    "Reference",
			Active:   true,
			Position: defaultTail,
		}},
		{"authmethod", FieldDef{
			Include:  auth | custom,
			Label:    "Auth method",
			Position: PositionNone,
		}},
		{"credentialsonfile", FieldDef{
			Include:  auth | check | custom,
			Label:    "Tokenised?",
			Position: PositionNone,
		}},
		{"initiationreason", FieldDef{
			Include:  auth | custom,
			Label:    "Init. reason",
			Position: PositionNone,
		}},
		{"baseamount", FieldDef{
			Include:  auth | refund | custom,
			Require:  auth | check,
			Label:    "Amount",
			Active:   true,
			Position: defaultTail,
		}},
		{"expirydate", FieldDef{
			Include:  auth | refund | custom,
			Require:  auth | check,
			Label:    "Expiry",
			Position: PositionNone,
		}},
		{"securitycode", FieldDef{
			Include:  auth | custom,
			Require:  auth | check,
			Label:    "CVV",
			Position: PositionNone,
		}},
		{"chargedescription", FieldDef{
			Include:  auth | refund | custom,
			Label:    "Charge desc.",
			Position: PositionNone,
		}},
		{"merchantemail", FieldDef{
			Include:  auth | custom,
			Label:    "Merchant email",
			Position: PositionNone,
		}},
		{"operatorname", FieldDef{
			Include:  auth | custom,
			Label:    "Operator name",
			Active:   true,
			Position: defaultTail,
		}},
		{"customerstreet", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. street",
			Position: PositionNone,
		}},
		{"customertown", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. town",
			Position: PositionNone,
		}},
		{"customercounty", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. county",
			Position: PositionNone,
		}},
		{"customercountryiso2a", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. country",
			Position: PositionNone,
		}},
		{"customerpostcode", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. postcode",
			Position: PositionNone,
		}},
		{"customeremail", FieldDef{
			Validator: ValidatorEmail,
			Include:   auth | custom,
			Label:     "Cust. email",
			Position:  PositionNone,
		}},
		{"customertelephonetype", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. tel. type",
			Position: PositionNone,
		}},
		{"customertelephone", FieldDef{
			Include:  auth | custom,
			Label:    "Cust telephone no.",
			Position: PositionNone,
		}},
		{"customerprefixname", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. prefix",
			Position: PositionNone,
		}},
		{"customerfirstname", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. first name",
			Position: PositionNone,
		}},
		{"customermiddlename", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. middle name",
			Position: PositionNone,
		}},
		{"customerlastname", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. last name",
			Position: PositionNone,
		}},
		{"customersuffixname", FieldDef{
			Include:  auth | custom,
			Label:    "Cust. suffix",
			Position: PositionNone,
		}},
		{"customerforwardedip", FieldDef{
			Validator: ValidatorIP,
			Include:   auth | custom,
			Label:     "Cust. forwarded IP",
			Position:  PositionNone,
		}},
		{"settleduedate", FieldDef{
			Include:  auth | update | custom,
			Label:    "Settle due date",
			Position: PositionNone,
		}},
		{"settlestatus", FieldDef{
			Include:  auth | update | custom,
			Label:    "Settle status",
			Active:   true,
			Position: 1,
		}},
		{"settlebaseamount", FieldDef{
			Include:  update | custom,
			Label:    "Settle base amount",
			Position: PositionNone,
		}},
		{"transactionstartedtimestamp", FieldDef{
			Include:  none,
			Label:    "Transaction started",
			Active:   true,
			Position: 0,
		}},
		{"errorurlredirect", FieldDef{
			Include:  custom,
			Label:    "ERROR_URL",
			Position: PositionNone,
		}},
		{"successfulurlredirect", FieldDef{
			Include:  custom,
			Label:    "SUCCESS_URL",
			Position: PositionNone,
		}},
		{"billingcountryiso2a", FieldDef{
			Include:  custom,
			Label:    "BILLING_COUNTRY",
			Position: PositionNone,
		}},
	} {
		s.Put(f.name, f.def)
	}
	s.normalizePositions()
	return s
}
