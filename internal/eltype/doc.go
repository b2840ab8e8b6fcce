// Package eltype defines the closed element-type table for matrix buffers.
//
// A matrix header packs its element type into a small flag word: the low
// three bits select the scalar depth, the next six bits hold the channel
// count minus one. This package decodes and encodes that packing and maps
// depth codes to the table of known scalar types:
//
//	Code | Name      | Native type    | Size
//	-----|-----------|----------------|-----
//	0    | CV_8U     | unsigned char  | 1
//	1    | CV_8S     | char           | 1
//	2    | CV_16U    | unsigned short | 2
//	3    | CV_16S    | short          | 2
//	4    | CV_32S    | int            | 4
//	5    | CV_32F    | float          | 4
//	6    | CV_64F    | double         | 8
//	7    | undefined | void           | 1
//
// Codes at or above the undefined entry clamp to it; its byte size is the
// unsigned 8-bit fallback so grid math never divides by zero.
//
// # Key Functions
//
//   - [Unpack]: Splits a flag word into depth code and channel count
//   - [Pack]: Builds a flag word from depth code and channel count
//   - [Lookup]: Returns the [Info] table entry for a depth code
//   - [TypeName]: Produces a combined name such as "CV_8UC3"
//   - [Info.Format]: Renders one raw little-endian scalar as text
package eltype
