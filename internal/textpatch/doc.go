// Package textpatch rewrites text files in place with ordered literal
// substitutions.
//
// Substitutions are applied one after another to the running result, so a
// later pair sees the output of the earlier ones. The rewritten content goes
// to a sibling temporary file which is then renamed over the original.
package textpatch
