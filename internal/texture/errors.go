package texture

import "errors"

// Sentinel error kinds (spec §7). No type information beyond the sentinel
// itself crosses the pipeline boundary; callers use errors.Is and wrap with
// %w for context.
var (
	// ErrInvalidInput: bytes don't decode, or declared color space
	// disagrees with what the decoder reports.
	ErrInvalidInput = errors.New("ktxbake: invalid input")
	// ErrOutOfMemory: an allocator failure.
	ErrOutOfMemory = errors.New("ktxbake: out of memory")
	// ErrInvalidOption: a numeric encoder parameter is outside its
	// validated range, or zero threads were requested.
	ErrInvalidOption = errors.New("ktxbake: invalid option")
	// ErrEncoderFailed: the BC7 encoder returned failure from init or encode.
	ErrEncoderFailed = errors.New("ktxbake: encoder failed")
	// ErrCompressorFailed: deflate reported an underlying I/O or framing error.
	ErrCompressorFailed = errors.New("ktxbake: compressor failed")
	// ErrWriterFailed: the output sink reported an I/O error.
	ErrWriterFailed = errors.New("ktxbake: writer failed")
)
