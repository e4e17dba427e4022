package schema

import "github.com/fetidd/webservices-frontend/internal/requesttype"

var instructions = map[requesttype.RequestType]string{
	requesttype.TransactionQuery: "Select a start and end date for the period you wish to query. " +
		"Add filter fields to narrow the results; to filter on multiple values for the same field, " +
		"separate the values with commas.",
	requesttype.Refund: "Enter the details of the transaction you wish to refund. " +
		"Only AUTHs that have settled (settlestatus=100) can be refunded.",
	requesttype.Auth: "All the initial fields are required and cannot be empty, unless using a saved card. " +
		"Extra fields can be added to the request.",
	requesttype.AccountCheck: "The card entered below will not be charged, but will be saved on the gateway " +
		"for future use, requiring only the securitycode and the transactionreference of this check as parent. " +
		"All the initial fields are required and cannot be empty.",
	requesttype.Custom: "Add a field and a value for each entry in the request. " +
		"The fields and values must follow the gateway specification for the chosen requesttype. " +
		"To send multiple values for the same field, separate the values with commas.",
}

// Instructions returns the static help text for a request type, empty when
// none is defined.
func Instructions(rt requesttype.RequestType) string {
	return instructions[rt]
}
