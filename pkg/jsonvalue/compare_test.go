package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "object key order is irrelevant", a: `{"a":1,"b":2}`, b: `{"b":2,"a":1}`, want: true},
		{name: "array order matters", a: `[1,2]`, b: `[2,1]`, want: false},
		{name: "array length differs", a: `[1,2]`, b: `[1,2,3]`, want: false},
		{name: "integer is not float", a: `1`, b: `1.0`, want: false},
		{name: "integer is not exponent form", a: `1000`, b: `1e3`, want: false},
		{name: "floats compare by value", a: `1.50`, b: `1.5e0`, want: true},
		{name: "large integers differ", a: `12345678901234567891`, b: `12345678901234567890`, want: false},
		{name: "large integers equal", a: `12345678901234567890`, b: `12345678901234567890`, want: true},
		{name: "integers beyond uint64", a: `-123456789012345678901234567890`, b: `-123456789012345678901234567891`, want: false},
		{name: "negative zero integer", a: `-0`, b: `0`, want: true},
		{name: "number is not string", a: `1`, b: `"1"`, want: false},
		{name: "null is not false", a: `null`, b: `false`, want: false},
		{name: "nulls are equal", a: `null`, b: `null`, want: true},
		{name: "nested difference", a: `{"a":{"b":[1,{"c":true}]}}`, b: `{"a":{"b":[1,{"c":false}]}}`, want: false},
		{name: "extra member", a: `{"a":1}`, b: `{"a":1,"c":3}`, want: false},
		{name: "same member count different keys", a: `{"a":1}`, b: `{"b":1}`, want: false},
		{name: "empty containers differ by kind", a: `{}`, b: `[]`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := mustParse(t, tt.a), mustParse(t, tt.b)
			require.Equal(t, tt.want, Equal(a, b))
			require.Equal(t, tt.want, Equal(b, a))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("string holding JSON is parsed", func(t *testing.T) {
		got := Normalize(StringValue(`{"a":1}`))
		require.True(t, got.IsObject())
		require.True(t, Equal(ObjectValue(map[string]Value{"a": IntValue(1)}), got))
	})

	t.Run("plain string is kept", func(t *testing.T) {
		got := Normalize(StringValue("hello"))
		require.True(t, Equal(StringValue("hello"), got))
	})

	t.Run("non-string values pass through", func(t *testing.T) {
		obj := mustParse(t, `{"s":"{\"x\":1}"}`)
		got := Normalize(obj)
		inner, _ := got.Get("s")
		require.Equal(t, String, inner.Kind())
	})
}

func TestDiffMissingKey(t *testing.T) {
	diffs := Diff(mustParse(t, `{"a":1,"b":2}`), mustParse(t, `{"a":1}`))
	require.Len(t, diffs, 1)
	require.Equal(t, "b", diffs[0].Key)
	require.NotNil(t, diffs[0].Expected)
	require.Equal(t, "2", diffs[0].Expected.String())
	require.Nil(t, diffs[0].Actual)
}

func TestDiffUnexpectedKey(t *testing.T) {
	diffs := Diff(mustParse(t, `{"a":1}`), mustParse(t, `{"a":1,"c":3}`))
	require.Len(t, diffs, 1)
	require.Equal(t, "c", diffs[0].Key)
	require.Nil(t, diffs[0].Expected)
	require.Equal(t, "3", diffs[0].Actual.String())
}

func TestDiffOrdering(t *testing.T) {
	expected := mustParse(t, `{"z":1,"ok":true,"same":"x","gone":0}`)
	actual := mustParse(t, `{"z":2,"ok":false,"same":"x","extra2":1,"extra1":1}`)

	var keys []string
	for _, d := range Diff(expected, actual) {
		keys = append(keys, d.Key)
	}
	require.Equal(t, []string{"gone", "ok", "z", "extra1", "extra2"}, keys)
}

func TestDiffRequiresObjects(t *testing.T) {
	require.Nil(t, Diff(mustParse(t, `[1]`), mustParse(t, `[2]`)))
	require.Nil(t, Diff(mustParse(t, `{"a":1}`), mustParse(t, `"a"`)))
	require.Len(t, Diff(mustParse(t, `{"a":1}`), mustParse(t, `{"a":1.0}`)), 1)
}

func TestEqualNativeNumbersCompareByValue(t *testing.T) {
	require.True(t, Equal(IntValue(1), mustParse(t, `1.0`)))
	require.True(t, Equal(mustParse(t, `1e3`), IntValue(1000)))
	require.True(t, Equal(NumberValue(2.5), mustParse(t, `2.50`)))
	require.False(t, Equal(IntValue(1), mustParse(t, `1.5`)))

	big, err := FromAny(uint64(12345678901234567891))
	require.NoError(t, err)
	require.False(t, Equal(big, mustParse(t, `12345678901234567890`)))
	require.True(t, Equal(big, mustParse(t, `12345678901234567891`)))
}
