// Package assert wraps the gotest.tools and testify assertion helpers used in
// this repo's tests, rendering wrapped errors with their full eris trace so a
// failing assertion shows where the error came from.
package assert

import (
	gocmp "github.com/google/go-cmp/cmp"
	"github.com/rotisserie/eris"
	testify "github.com/stretchr/testify/assert"
	gotest "gotest.tools/v3/assert"
)

type helperT interface {
	Helper()
}

func Assert(t gotest.TestingT, comparison gotest.BoolOrComparison, msgAndArgs ...interface{}) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	gotest.Assert(t, comparison, msgAndArgs...)
}

func Check(t gotest.TestingT, comparison gotest.BoolOrComparison, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return gotest.Check(t, comparison, msgAndArgs...)
}

func NilError(t gotest.TestingT, err error, msgAndArgs ...interface{}) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	msgAndArgs = append([]interface{}{eris.ToString(err, true)}, msgAndArgs...)
	gotest.NilError(t, err, msgAndArgs...)
}

func Equal(t gotest.TestingT, x, y interface{}, msgAndArgs ...interface{}) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	gotest.Equal(t, x, y, msgAndArgs...)
}

func DeepEqual(t gotest.TestingT, x, y interface{}, opts ...gocmp.Option) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	gotest.DeepEqual(t, x, y, opts...)
}

func Error(t gotest.TestingT, err error, expected string, msgAndArgs ...interface{}) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	msgAndArgs = append([]interface{}{eris.ToString(err, true)}, msgAndArgs...)
	gotest.Error(t, eris.Cause(err), expected, msgAndArgs...)
}

func ErrorContains(t gotest.TestingT, err error, substring string, msgAndArgs ...interface{}) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	msgAndArgs = append([]interface{}{eris.ToString(err, true)}, msgAndArgs...)
	gotest.ErrorContains(t, eris.Cause(err), substring, msgAndArgs...)
}

func ErrorIs(t gotest.TestingT, err error, expected error, msgAndArgs ...interface{}) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	msgAndArgs = append([]interface{}{eris.ToString(err, true)}, msgAndArgs...)
	gotest.ErrorIs(t, eris.Cause(err), eris.Cause(expected), msgAndArgs...)
}

// testify assert wrappers

func True(t testify.TestingT, value bool, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.True(t, value, msgAndArgs...)
}

func False(t testify.TestingT, value bool, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.False(t, value, msgAndArgs...)
}

func Len(t testify.TestingT, object interface{}, length int, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Len(t, object, length, msgAndArgs...)
}

func Nil(t testify.TestingT, object interface{}, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Nil(t, object, msgAndArgs...)
}

func NotNil(t testify.TestingT, object interface{}, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.NotNil(t, object, msgAndArgs...)
}

func Empty(t testify.TestingT, object interface{}, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Empty(t, object, msgAndArgs...)
}

func Zero(t testify.TestingT, i interface{}, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Zero(t, i, msgAndArgs...)
}

func Contains(t testify.TestingT, s, contains interface{}, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Contains(t, s, contains, msgAndArgs...)
}

func ElementsMatch(t testify.TestingT, listA, listB interface{}, msgAndArgs ...interface{}) (ok bool) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.ElementsMatch(t, listA, listB, msgAndArgs...)
}

func IsType(t testify.TestingT, expectedType interface{}, object interface{}, msgAndArgs ...interface{}) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.IsType(t, expectedType, object, msgAndArgs...)
}

func IsError(t testify.TestingT, err error, msgAndArgs ...interface{}) bool {
	msgAndArgs = append([]interface{}{eris.ToString(err, true)}, msgAndArgs...)
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Error(t, err, msgAndArgs...)
}
