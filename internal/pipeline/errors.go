package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying fatal pipeline failures. Every terminal error
// returned by Run wraps exactly one of these, so callers can classify with
// errors.Is while the message carries the stage that failed.
var (
	ErrDirectory   = errors.New("directory failure")
	ErrMetadata    = errors.New("metadata failure")
	ErrManifestKey = errors.New("manifest key missing")
	ErrTransport   = errors.New("transport failure")
	ErrWrite       = errors.New("write failure")
	ErrIntegrity   = errors.New("integrity mismatch")
	ErrUnpack      = errors.New("unpack failure")
	ErrRemap       = errors.New("remap failure")
	ErrDecompile   = errors.New("decompile failure")
)

// wrap tags err with the given marker and a stage detail message.
func wrap(marker error, detail string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}

	return fmt.Errorf("%w: %s", marker, detail)
}
