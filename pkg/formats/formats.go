// Package formats decodes the binary lumps that make up a Doom-engine map.
//
// Every map lump is an array of fixed-size little-endian records. Decoders
// return one value per whole record, widening coordinates to fixed point;
// a trailing partial record is ignored. BLOCKMAP is the exception and is
// parsed as a word table by ParseBlockmap.
package formats
