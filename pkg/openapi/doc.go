// Package openapi describes a form definition as an OpenAPI 3 document so
// other services can validate registration payloads with the same constraints
// the form engine enforces.
package openapi
