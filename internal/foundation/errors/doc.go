// Package errors provides the classified error primitives used across sitenav.
//
// Every failure that reaches the CLI or the preview server is a ClassifiedError
// carrying a category, a severity and optional structured context. Adapters map
// categories to process exit codes and HTTP status codes.
//
// Example usage:
//
//	err := errors.ValidationError("navigation item has no link").
//		WithContext("group", group.Text).
//		WithContext("index", i).
//		Build()
package errors
