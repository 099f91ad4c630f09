// Package validator provides small declarative validation rules.
//
// A Rule couples a Check function with translation-friendly error metadata.
// Rules are evaluated with Apply, which aggregates every failure into a
// ValidationErrors value that satisfies the error interface, so several
// field problems surface from a single call.
//
//	err := validator.Apply(
//	    validator.RequiredString("subject", opts.Subject),
//	    validator.ValidAddress("from", opts.From),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // report field
//	    }
//	}
//
// Rules for address lists return one Rule per element so failures name the
// exact index ("to[1]").
//
// The package is stateless and goroutine-safe.
package validator
