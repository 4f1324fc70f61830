package parsec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/parsec/parsec"
)

func TestCursorNext(t *testing.T) {
	c := parsec.NewCursor("aé")

	r, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, c.Pos())

	r, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)
	assert.Equal(t, 2, c.Pos())
	assert.Equal(t, 0, c.Remaining())
	assert.False(t, c.Exhausted())

	_, err = c.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, parsec.ErrEndOfStream)
	assert.Equal(t, "[2] end of stream", err.Error())
	assert.Equal(t, 2, c.Pos(), "end of stream must not advance")
	assert.True(t, c.Exhausted())
}

func TestTransaction(t *testing.T) {
	c := parsec.NewCursor("abc")

	_, err := parsec.Transaction(c, func(c *parsec.Cursor) (rune, error) {
		_, _ = c.Next()
		_, _ = c.Next()

		return 0, c.Fail("boom")
	})
	require.Error(t, err)
	assert.Equal(t, "[2] boom", err.Error())
	assert.Equal(t, 0, c.Pos())

	r, err := parsec.Transaction(c, func(c *parsec.Cursor) (rune, error) {
		return c.Next()
	})
	require.NoError(t, err)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, c.Pos())
}

func TestError(t *testing.T) {
	t.Run("lazy message", func(t *testing.T) {
		calls := 0
		err := parsec.Fail[int](func() string {
			calls++
			return "computed"
		})

		_, got := parsec.Run("", err)
		require.Error(t, got)
		assert.Zero(t, calls)
		assert.Equal(t, "[0] computed", got.Error())
		assert.Equal(t, 1, calls)
	})

	t.Run("not end of stream", func(t *testing.T) {
		err := parsec.NewError(3, "expect digit")
		assert.NotErrorIs(t, err, parsec.ErrEndOfStream)
		assert.Equal(t, "expect digit", err.Message())
	})

	t.Run("foreign error", func(t *testing.T) {
		err := parsec.AsError(errors.New("bad"), 7)
		assert.Equal(t, 7, err.Pos)
		assert.Equal(t, "[7] bad", err.Error())
		assert.Nil(t, parsec.AsError(nil, 0))
	})

	t.Run("log value", func(t *testing.T) {
		v := parsec.Errorf(4, "expect %q", "if").LogValue()
		attrs := v.Group()
		require.Len(t, attrs, 2)
		assert.Equal(t, int64(4), attrs[0].Value.Int64())
		assert.Equal(t, `expect "if"`, attrs[1].Value.String())
	})
}

func TestTransaction_KeepsExhausted(t *testing.T) {
	c := parsec.NewCursor("a")

	_, err := parsec.Transaction(c, func(c *parsec.Cursor) (rune, error) {
		_, _ = c.Next()

		return c.Next()
	})
	require.ErrorIs(t, err, parsec.ErrEndOfStream)

	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, 1, c.Remaining())
	assert.True(t, c.Exhausted())
}
