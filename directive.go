/*******************************************************************************
The MIT License (MIT)

Copyright (c) 2025 Hajime Nakagami

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
the Software, and to permit persons to whom the Software is furnished to do so,
subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*******************************************************************************/

package fbgenkeys

import (
	"fmt"
	"strings"
)

type directiveKind int

const (
	directiveInvalid directiveKind = iota
	directiveNone
	directiveAll
	directiveByIndex
	directiveByName
)

// Directive tells BuildQuery which generated keys the caller wants back.
// The zero value is not a valid directive.
type Directive struct {
	kind    directiveKind
	option  int
	indexes []int
	names   []string
}

func NoGeneratedKeys() Directive {
	return Directive{kind: directiveNone, option: NO_GENERATED_KEYS}
}

func ReturnGeneratedKeys() Directive {
	return Directive{kind: directiveAll, option: RETURN_GENERATED_KEYS}
}

// AutoGeneratedKeys maps RETURN_GENERATED_KEYS and NO_GENERATED_KEYS to a
// Directive. Any other value is rejected.
func AutoGeneratedKeys(option int) (Directive, error) {
	switch option {
	case RETURN_GENERATED_KEYS:
		return ReturnGeneratedKeys(), nil
	case NO_GENERATED_KEYS:
		return NoGeneratedKeys(), nil
	}
	return Directive{option: option}, errInvalidGeneratedKeysOption(option)
}

// ColumnIndexes requests the columns at the given 1-based ordinal positions,
// in the order given.
func ColumnIndexes(indexes ...int) (Directive, error) {
	if len(indexes) == 0 {
		return Directive{}, errEmptyOrNullColumnSpecification("columnIndexes")
	}
	return Directive{kind: directiveByIndex, indexes: append([]int(nil), indexes...)}, nil
}

// ColumnNames requests the named columns. Names are used as given, so
// case-sensitive names must be quoted by the caller.
func ColumnNames(names ...string) (Directive, error) {
	if len(names) == 0 {
		return Directive{}, errEmptyOrNullColumnSpecification("columnNames")
	}
	return Directive{kind: directiveByName, names: append([]string(nil), names...)}, nil
}

func (d Directive) requestsKeys() bool {
	return d.kind == directiveAll || d.kind == directiveByIndex || d.kind == directiveByName
}

func (d Directive) validate() error {
	switch d.kind {
	case directiveNone, directiveAll:
		return nil
	case directiveByIndex:
		if len(d.indexes) == 0 {
			return errEmptyOrNullColumnSpecification("columnIndexes")
		}
		return nil
	case directiveByName:
		if len(d.names) == 0 {
			return errEmptyOrNullColumnSpecification("columnNames")
		}
		return nil
	}
	return errInvalidGeneratedKeysOption(d.option)
}

func (d Directive) String() string {
	switch d.kind {
	case directiveNone:
		return "NO_GENERATED_KEYS"
	case directiveAll:
		return "RETURN_GENERATED_KEYS"
	case directiveByIndex:
		s := make([]string, len(d.indexes))
		for i, n := range d.indexes {
			s[i] = fmt.Sprint(n)
		}
		return "columnIndexes[" + strings.Join(s, ",") + "]"
	case directiveByName:
		return "columnNames[" + strings.Join(d.names, ",") + "]"
	}
	return fmt.Sprintf("invalid(%d)", d.option)
}
