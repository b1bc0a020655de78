// Package sentinel provides a string-backed error type so that casstest can
// declare its sentinel errors as constants.
//
// Values of Error compare by content, so errors.Is matches them through any
// number of fmt.Errorf("%w") wrappers.
package sentinel
