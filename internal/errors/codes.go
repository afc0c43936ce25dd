package errors

// Error codes for the Redline toolchain. Codes are stable and appear in
// diagnostics and editor output.
//
// Error code ranges:
// L0001-L0099: Lexical errors
// L0900-L0999: Reserved for tooling errors

const (
	// L0001: Character outside every token class
	ErrorUnknownCharacter = "L0001"

	// L0002: Numeric literal with more than one '.'
	ErrorMultipleDecimalPoints = "L0002"

	// L0003: Float literal that does not fit in 64 bits
	ErrorInvalidFloat = "L0003"

	// L0004: Integer literal that does not fit in a signed 64-bit integer
	ErrorInvalidInteger = "L0004"

	// L0900: Source could not be read
	ErrorUnreadableSource = "L0900"
)
