package benchmark

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopBody(ctx context.Context, params Params) (any, error) {
	return nil, nil
}

func bmWithParams(name string, params ...Param) Benchmark {
	return Benchmark{Name: name, Fn: noopBody, Params: params}
}

func TestResolveInterface(t *testing.T) {
	t.Run("single benchmark recorded as-is", func(t *testing.T) {
		bm := bmWithParams("a",
			Param{Name: "x", Type: TypeOf[int]()},
			Param{Name: "y", Type: TypeOf[string](), Default: "hello", HasDefault: true},
		)

		unified, err := ResolveInterface([]Benchmark{bm})
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y"}, unified.Names())

		x, ok := unified.Entry("x")
		require.True(t, ok)
		assert.Equal(t, TypeOf[int](), x.Type)
		assert.True(t, x.Required)

		y, ok := unified.Entry("y")
		require.True(t, ok)
		assert.False(t, y.Required)
		assert.Equal(t, "hello", y.Default)
	})

	t.Run("unrelated types conflict", func(t *testing.T) {
		a := bmWithParams("a", Param{Name: "p", Type: TypeOf[int]()})
		b := bmWithParams("b", Param{Name: "p", Type: TypeOf[string]()})

		_, err := ResolveInterface([]Benchmark{a, b})
		var conflict *InterfaceConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "p", conflict.Param)
		assert.Equal(t, TypeOf[int](), conflict.TypeA)
		assert.Equal(t, TypeOf[string](), conflict.TypeB)
		assert.Contains(t, err.Error(), `"p"`)
	})

	t.Run("narrower type wins regardless of order", func(t *testing.T) {
		wide := bmWithParams("wide", Param{Name: "r", Type: TypeOf[io.Reader]()})
		narrow := bmWithParams("narrow", Param{Name: "r", Type: TypeOf[*strings.Reader]()})

		for _, order := range [][]Benchmark{{wide, narrow}, {narrow, wide}} {
			unified, err := ResolveInterface(order)
			require.NoError(t, err)
			entry, ok := unified.Entry("r")
			require.True(t, ok)
			assert.Equal(t, TypeOf[*strings.Reader](), entry.Type)
		}
	})

	t.Run("untyped defers to typed", func(t *testing.T) {
		untyped := bmWithParams("untyped", Param{Name: "x"})
		typed := bmWithParams("typed", Param{Name: "x", Type: TypeOf[int]()})

		for _, order := range [][]Benchmark{{untyped, typed}, {typed, untyped}} {
			unified, err := ResolveInterface(order)
			require.NoError(t, err)
			entry, _ := unified.Entry("x")
			assert.Equal(t, TypeOf[int](), entry.Type)
		}
	})

	t.Run("any no-default occurrence forces required", func(t *testing.T) {
		optional := bmWithParams("optional", Param{Name: "x", Type: TypeOf[int](), Default: 1, HasDefault: true})
		required := bmWithParams("required", Param{Name: "x", Type: TypeOf[int]()})

		for _, order := range [][]Benchmark{{optional, required}, {required, optional}} {
			unified, err := ResolveInterface(order)
			require.NoError(t, err)
			entry, _ := unified.Entry("x")
			assert.True(t, entry.Required)
		}
	})

	t.Run("empty collection yields empty interface", func(t *testing.T) {
		unified, err := ResolveInterface(nil)
		require.NoError(t, err)
		assert.Zero(t, unified.Len())
	})
}

func TestAssignableTo(t *testing.T) {
	assert.True(t, AssignableTo(TypeOf[int](), TypeOf[int]()))
	assert.True(t, AssignableTo(TypeOf[*strings.Reader](), TypeOf[io.Reader]()))
	assert.False(t, AssignableTo(TypeOf[io.Reader](), TypeOf[*strings.Reader]()))
	assert.False(t, AssignableTo(TypeOf[int](), TypeOf[string]()))
	assert.False(t, AssignableTo(nil, TypeOf[int]()))
	assert.False(t, AssignableTo(TypeOf[int](), nil))
}
