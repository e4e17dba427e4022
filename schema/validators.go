package schema

import "regexp"

// Validators are full-string shape checks, not semantic ones: the IP pattern
// accepts 999.999.999.999 and the timestamp pattern accepts Feb 30. They are
// total over any input string, including empty.
var (
	emailPattern       = regexp.MustCompile(`^[^@]+@[a-z]+\.[a-z]+$`)
	ipPattern          = regexp.MustCompile(`^([0-9]{1,3}\.){3}[0-9]{1,3}$`)
	accountTypePattern = regexp.MustCompile(`^(ECOM|MOTO|RECUR)$`)
	baseAmountPattern  = regexp.MustCompile(`^[1-9][0-9]*$`)
	dateTimePattern    = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01]) ([01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)
)

// Registry names so that a persisted schema can re-attach validators by name
// at load time. "baseamount" and "datetime" are kept registered for payloads
// that still reference them even though no default field does.
const (
	ValidatorEmail       = "email"
	ValidatorIP          = "ip"
	ValidatorAccountType = "accounttype"
	ValidatorBaseAmount  = "baseamount"
	ValidatorDateTime    = "datetime"
)

var validators = map[string]func(string) bool{
	ValidatorEmail:       emailPattern.MatchString,
	ValidatorIP:          ipPattern.MatchString,
	ValidatorAccountType: accountTypePattern.MatchString,
	ValidatorBaseAmount:  baseAmountPattern.MatchString,
	ValidatorDateTime:    dateTimePattern.MatchString,
}

// Validator looks up a registered validator by name.
func Validator(name string) (func(string) bool, bool) {
	fn, ok := validators[name]
	return fn, ok
}

// KnownValidator reports whether name is a registered validator name.
func KnownValidator(name string) bool {
	_, ok := validators[name]
	return ok
}
