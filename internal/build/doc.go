// Package build runs the sitenav pipeline: build the navigation, resolve the edit link,
// index content, validate, render every output format and write the results together
// with a build report.
package build
