// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Planning failures are classified with dedicated codes so callers can tell
// them apart without string matching:
//
//   - ErrCodeUnknownProduct: a requested input or output is not produced or
//     consumed by any recipe in the catalog
//   - ErrCodeInfeasible: no assignment of recipe scales satisfies the balance constraints
//   - ErrCodeUnbounded: the objective can grow without limit
//   - ErrCodeSolverUnavailable: the requested solver backend is not registered
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInfeasible,
//	    "no feasible production plan",
//	    cause,
//	    map[string]interface{}{
//	        "recipes":  len(catalog.Recipes),
//	        "products": idx.Len(),
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeInfeasible) {
//	    // report distinctly from an empty plan
//	}
package errors
