package errors_test

import (
	"fmt"
	"io"

	"github.com/pantrymcp/pantry-mcp/internal/errors"
)

// Example_basic demonstrates basic error creation and checking.
func Example_basic() {
	err := errors.BasketNotFound("orders")
	fmt.Println(err)

	if errors.Is(err, errors.CodeBasketNotFound) {
		fmt.Println("Basket not found")
	}

	// Output:
	// BASKET_NOT_FOUND: basket "orders" not found
	// Basket not found
}

// Example_wrapping demonstrates wrapping a network failure.
func Example_wrapping() {
	err := errors.RemoteUnavailable(io.ErrUnexpectedEOF)
	fmt.Println(err)
	fmt.Println("remote:", errors.IsRemote(err), "status:", errors.Status(err))

	// Output:
	// REMOTE_ERROR: request to pantry failed: unexpected EOF
	// remote: true status: 0
}
