//go:build !lfudebug

package db

const invariantsEnabled = false
