package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors remain, nil is returned. A single remaining error is returned
// as it is. Otherwise a collection is returned that is of every kind one of
// its members is of.
func Append(errs ...error) error {
	var all []error
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(*multiErr); ok {
			all = append(all, m.errs...)
			continue
		}
		all = append(all, err)
	}

	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return &multiErr{errs: all}
}

type multiErr struct {
	errs []error
}

func (e *multiErr) Error() string {
	points := make([]string, len(e.errs))
	for i, err := range e.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(e.errs), strings.Join(points, "\n\t"))
}

// Unpack implements unpacker interface.
func (e *multiErr) Unpack() []error {
	return e.errs
}

// Cause returns the first error so that the code of a collection is the
// code of its first member.
func (e *multiErr) Cause() error {
	return e.errs[0]
}
