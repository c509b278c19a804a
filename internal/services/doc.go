// Package services defines the shared error taxonomy used across the
// converter components.
//
// Failures carry one of the exported sentinel markers (external tool,
// validation, configuration, not found) so callers can classify an error with
// errors.Is without parsing message text. The Wrap helper attaches component
// and operation context while preserving both the marker and the underlying
// cause in the error chain.
package services
