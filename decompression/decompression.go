// Package decompression holds the two compression schemes the image decoders
// lean on: the GIF flavour of LZW, and zlib/deflate for PNG.
package decompression

// Method is the compression method byte declared in a PNG header.
type Method uint8

// Inflater decompresses src into dst and returns the number of bytes written.
type Inflater = func(src []byte, dst []byte) (int, error)

type LUT map[Method]Inflater

const MethodDeflate Method = 0

// Inflaters lists the PNG compression methods this module can decode.
var Inflaters = LUT{
	MethodDeflate: Inflate,
}
