// Package scel reads Sogou SCEL cell dictionaries into a format-independent
// word list model.
//
// A SCEL file has three parts:
//  1. A fixed 0x1540-byte header: a 12-byte magic signature, the declared
//     word count and four UTF-16LE metadata strings (name, category,
//     description and example).
//  2. A pinyin index table of (index, length, UTF-16LE text) records, ended
//     by a record with index zero.
//  3. A dictionary section of homophone groups. Each group lists pinyin
//     table indices followed by one or more words sharing that reading.
//     The section start is not stored and has to be located.
//
// Decoding is best effort. A truncated pinyin table is kept as far as it
// goes, and a malformed homophone group is skipped one byte at a time until
// decoding resynchronises. Only a bad header (ErrFormatMismatch) or a
// missing dictionary section (ErrBinaryParse) fails the whole decode.
package scel
