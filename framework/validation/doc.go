// Package validation checks flat string maps against pipe-separated rules.
//
// Definition sources use it to reject malformed bean entries before a
// context ever sees them; config and the admin API use it for enumerated
// settings and query parameters.
//
//	v := validation.Make(map[string]string{
//	    "id":   "paymentService",
//	    "type": "services.PaymentService",
//	}, validation.Rules{
//	    "id":   "required|identifier|max:128",
//	    "type": "required|type_name",
//	})
//
//	if err := v.Err(); err != nil {
//	    // v.Errors().Bag holds field → messages
//	}
//
// # Available Rules
//
//   - required     field must be present and non-empty
//   - identifier   letter or underscore, then letters, digits, '.', '-', '_'
//   - type_name    dot-separated Go-style identifiers (services.MailService)
//   - max:n        maximum n UTF-8 characters
//   - in:a,b       value must be one of the list
//   - sometimes    skip remaining rules when the value is empty
package validation
