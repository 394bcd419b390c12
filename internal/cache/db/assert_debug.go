//go:build lfudebug

package db

// invariantsEnabled turns on structural checks after every store mutation.
// Build with -tags lfudebug to enable.
const invariantsEnabled = true
