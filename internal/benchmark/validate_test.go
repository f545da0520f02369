package benchmark

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	mustResolve := func(t *testing.T, bms ...Benchmark) Interface {
		t.Helper()
		unified, err := ResolveInterface(bms)
		require.NoError(t, err)
		return unified
	}

	t.Run("missing required parameter", func(t *testing.T) {
		unified := mustResolve(t, bmWithParams("a",
			Param{Name: "x", Type: TypeOf[int]()},
			Param{Name: "y", Type: TypeOf[int]()},
		))

		err := Validate(Params{"x": 1}, unified)
		var missing *MissingParameterError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "y", missing.Param)
		assert.Contains(t, err.Error(), `missing value for required parameter "y"`)
	})

	t.Run("optional parameter may be omitted", func(t *testing.T) {
		unified := mustResolve(t, bmWithParams("a",
			Param{Name: "x", Type: TypeOf[int](), Default: 3, HasDefault: true},
		))
		assert.NoError(t, Validate(Params{}, unified))
	})

	t.Run("type mismatch", func(t *testing.T) {
		unified := mustResolve(t, bmWithParams("a", Param{Name: "x", Type: TypeOf[int]()}))

		err := Validate(Params{"x": "1"}, unified)
		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "x", mismatch.Param)
		assert.Contains(t, err.Error(), `expected type int for parameter "x", got string`)
	})

	t.Run("exact and assignable types pass", func(t *testing.T) {
		unified := mustResolve(t, bmWithParams("a",
			Param{Name: "x", Type: TypeOf[int]()},
			Param{Name: "r", Type: TypeOf[io.Reader]()},
		))

		err := Validate(Params{"x": 1, "r": strings.NewReader("data")}, unified)
		assert.NoError(t, err)
	})

	t.Run("untyped entries are never type-checked", func(t *testing.T) {
		unified := mustResolve(t, bmWithParams("a", Param{Name: "x"}))

		assert.NoError(t, Validate(Params{"x": 1}, unified))
		assert.NoError(t, Validate(Params{"x": "anything"}, unified))
		assert.NoError(t, Validate(Params{"x": struct{}{}}, unified))
	})

	t.Run("untyped required still needs a value", func(t *testing.T) {
		unified := mustResolve(t, bmWithParams("a", Param{Name: "x"}))

		err := Validate(Params{}, unified)
		var missing *MissingParameterError
		require.ErrorAs(t, err, &missing)
	})

	t.Run("extraneous supplied values are ignored", func(t *testing.T) {
		unified := mustResolve(t, bmWithParams("a", Param{Name: "x", Type: TypeOf[int]()}))
		assert.NoError(t, Validate(Params{"x": 1, "unknown": "whatever"}, unified))
	})
}
