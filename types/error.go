package types

// Error represents an error in the rudp error space. Using a special type
// ensures that errors outside of this space are not accidentally introduced
type Error struct {
	string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.string
}

// Errors that can be returned by the reliability engine. Construction-time
// errors (MtuTooSmall, RecvBufTooLarge) mean the endpoint was never built;
// EmptyBody and BufferTooSmall indicate a bug in the caller rather than a
// network condition
var (
	ErrMtuTooSmall     = &Error{"mtu too small"}
	ErrRecvBufTooLarge = &Error{"receive buffer length does not fit in uint16"}
	ErrEmptyBody       = &Error{"push fragment body must not be empty"}
	ErrBufferTooSmall  = &Error{"output buffer too small for even one fragment"}
	ErrNothingToOutput = &Error{"nothing to output"}
	ErrInvalidState    = &Error{"sequence claimed both acked and equal to nack"}
	ErrToSendFull      = &Error{"to-send queue is full"}
	ErrToSendEmpty     = &Error{"slice is empty, nothing to enqueue"}
	ErrFragTooLarge    = &Error{"fragment does not fit in a single bundle"}
	ErrIndexOutOfRange = &Error{"slice index out of range"}
	ErrNotEnoughSpace  = &Error{"not enough space in writer"}
	ErrDecoding        = &Error{"malformed packet"}
)
