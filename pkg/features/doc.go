// Package features derives new columns from a dataset.
//
// Operations are registered by name at init and looked up case-insensitively:
//
//	fn, err := features.Lookup("calculate_total_days", frame, log, features.Options{})
//	if err != nil {
//		return err
//	}
//	frame, err = fn()
//
// Lookup never touches the dataset; the returned function may be invoked any
// number of times and recomputes its columns on every call.
package features
