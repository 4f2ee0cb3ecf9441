package signal

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// The pipeline's two fatal error kinds map onto base/errors kinds so callers
// can classify failures without string matching:
//
//	malformed input (duplicate read, unparseable value) -> errors.Integrity
//	acid type mismatch (without -force-acid)            -> errors.Invalid

// MalformedInputErrorf reports corrupt or internally inconsistent input
// data.  Always fatal; recovery would silently drop reads.
func MalformedInputErrorf(format string, args ...interface{}) error {
	return errors.E(errors.Integrity, fmt.Sprintf(format, args...))
}

// TypeMismatchErrorf reports an observed acid type that disagrees with a
// requested, non-forced acid filter.
func TypeMismatchErrorf(format string, args ...interface{}) error {
	return errors.E(errors.Invalid, fmt.Sprintf(format, args...))
}

// IsMalformedInput returns whether err was produced by MalformedInputErrorf.
func IsMalformedInput(err error) bool { return errors.Is(errors.Integrity, err) }

// IsTypeMismatch returns whether err was produced by TypeMismatchErrorf.
func IsTypeMismatch(err error) bool { return errors.Is(errors.Invalid, err) }
