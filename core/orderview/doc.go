// Package orderview maintains a derived projection over the fetched order
// list: status, ownership, acceptance, and same-day filters recomputed
// synchronously on every criteria or source change.
//
// Like the product projection, the source list is replaced wholesale and
// the filtered list is always an exact function of (source, criteria),
// never updated by independent add or remove. The today filter uses an
// injectable clock so day boundaries are testable.
package orderview
