//go:build !unix

package manifest

import "os"

// Advisory locking is unix only; elsewhere the caller serialises writers.
func lock(*os.File) error   { return nil }
func unlock(*os.File) error { return nil }
