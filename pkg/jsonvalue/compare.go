package jsonvalue

import (
	"math/big"
	"strconv"
	"strings"
)

// Equal reports whether a and b are structurally equal. Object member order is
// irrelevant, array element order is significant, and values of different kinds
// are never equal. Integer literals compare exactly at any magnitude. Between
// two numbers parsed from JSON text an integer never equals a float (1 != 1.0);
// numbers decoded from YAML compare by value, so YAML 1 matches JSON 1.0.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case Number:
		return numbersEqual(a, b)
	case String:
		return a.s == b.s
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b Value) bool {
	if a.num == b.num {
		return true
	}
	aInt, bInt := isIntegerLiteral(a.num), isIntegerLiteral(b.num)
	if aInt && bInt {
		ai, aok := new(big.Int).SetString(a.num, 10)
		bi, bok := new(big.Int).SetString(b.num, 10)
		return aok && bok && ai.Cmp(bi) == 0
	}
	if aInt != bInt && !a.native && !b.native {
		return false
	}
	af, aerr := strconv.ParseFloat(a.num, 64)
	bf, berr := strconv.ParseFloat(b.num, 64)
	return aerr == nil && berr == nil && af == bf
}

func isIntegerLiteral(num string) bool {
	return !strings.ContainsAny(num, ".eE")
}

// Normalize unwraps a string that itself holds serialized JSON. Any other
// value, or a string that does not parse, is returned unchanged.
func Normalize(v Value) Value {
	s, ok := v.AsString()
	if !ok {
		return v
	}
	parsed, err := Parse([]byte(s))
	if err != nil {
		return v
	}
	return parsed
}

// KeyDiff is one differing member between an expected and an actual object.
// A nil Expected marks a key the expectation did not mention; a nil Actual
// marks a key missing from the actual object.
type KeyDiff struct {
	Key      string
	Expected *Value
	Actual   *Value
}

// Diff lists member-level differences between two objects: first every
// expected key whose actual value differs or is missing, then every actual
// key absent from the expectation, each group in sorted key order.
// It returns nil unless both values are objects.
func Diff(expected, actual Value) []KeyDiff {
	if !expected.IsObject() || !actual.IsObject() {
		return nil
	}

	var diffs []KeyDiff
	for _, key := range expected.Keys() {
		ev := expected.obj[key]
		av, ok := actual.obj[key]
		switch {
		case !ok:
			diffs = append(diffs, KeyDiff{Key: key, Expected: &ev})
		case !Equal(ev, av):
			diffs = append(diffs, KeyDiff{Key: key, Expected: &ev, Actual: &av})
		}
	}
	for _, key := range actual.Keys() {
		if _, ok := expected.obj[key]; ok {
			continue
		}
		av := actual.obj[key]
		diffs = append(diffs, KeyDiff{Key: key, Actual: &av})
	}
	return diffs
}
