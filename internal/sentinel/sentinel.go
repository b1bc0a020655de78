package sentinel

var _ error = Error("")

// Error is an error whose identity is its message. Declare values as const.
type Error string

func (e Error) Error() string {
	return string(e)
}
