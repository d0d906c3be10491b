// Package errors provides coded, actionable errors for the reconciler and its tools.
//
// The reconciliation layer itself is non-fallible: a structural mismatch is
// resolved by replacing the bundle. The few conditions that cannot be
// reconciled (a component suspending with no Suspense boundary above it, a
// View failing with something other than a Suspension, a portal without a
// host) are configuration errors. They are asserted with a panic carrying
// an *Error from this package so the cause is easy to identify.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E101") that maps to a short message,
// a detailed explanation, an optional hint and a documentation URL.
//
// # Usage
//
//	err := errors.New("E101").WithComponent("Profile")
//	errors.PrintError(os.Stderr, err)
//	// ERROR E101: Component suspended without a Suspense boundary
//	//
//	//   component Profile
//	//   ...
package errors
