//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard is not supported on this platform")

func writeImage([]byte) error    { return errUnsupported }
func readImage() ([]byte, error) { return nil, errUnsupported }
func writeText(string) error     { return errUnsupported }
func readText() (string, error)  { return "", errUnsupported }
