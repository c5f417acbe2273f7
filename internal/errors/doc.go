// Package errors provides typed error handling for pantry-mcp operations.
//
// Codes fall into two categories: configuration errors, raised before any
// request reaches Pantry, and remote-service errors, raised from the HTTP
// exchange itself.
//
// Example usage:
//
//	// Creating errors
//	err := errors.ConfigMissing("pantryId")
//	err := errors.RemoteStatus(502, "bad gateway")
//
//	// Wrapping errors
//	err := errors.RemoteUnavailable(netErr)
//
//	// Checking error codes
//	if errors.Is(err, errors.CodeBasketNotFound) {
//	    // basket does not exist yet
//	}
//
//	// Categories
//	if errors.IsRemote(err) {
//	    fmt.Println("pantry answered", errors.Status(err))
//	}
//
//	// Stdlib compatibility
//	var pErr *errors.Error
//	if errors.As(err, &pErr) {
//	    fmt.Println(pErr.Code, pErr.Message)
//	}
package errors
