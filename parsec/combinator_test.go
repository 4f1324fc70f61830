package parsec_test

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/parsec/parsec"
)

func TestMap(t *testing.T) {
	double := parsec.Map(parsec.Number(), func(n int64) int64 { return 2 * n })
	check(t, double, []outcome[int64]{
		{input: "21", want: 42, pos: 2},
		{input: "x", err: "[1] expect number"},
	})
}

func TestAndThen(t *testing.T) {
	small := parsec.AndThen(parsec.Number(), func(n int64) (int64, error) {
		if n > 10 {
			return 0, errors.New("too big")
		}

		return n, nil
	})
	check(t, small, []outcome[int64]{
		{input: "7", want: 7, pos: 1},
		{input: "42", err: "[2] too big"},
	})
}

func TestFlatMap(t *testing.T) {
	// A digit n followed by exactly n x's.
	counted := parsec.FlatMap(parsec.Digit(), func(r rune) parsec.Parser[string] {
		n, _ := strconv.Atoi(string(r))
		return parsec.String(strings.Repeat("x", n))
	})
	check(t, counted, []outcome[string]{
		{input: "3xxx", want: "xxx", pos: 4},
		{input: "0", want: "", pos: 1},
		{input: "3xx", err: `[1] expect "xxx"`},
	})
}

func TestPair(t *testing.T) {
	p := parsec.Pair(parsec.Identifier(), parsec.UseRight(parsec.Char('='), parsec.Number()))
	check(t, p, []outcome[parsec.Tuple[string, int64]]{
		{input: "x=1", want: parsec.Tuple[string, int64]{Left: "x", Right: 1}, pos: 3},
		{input: "x:1", err: "[2] expect '='"},
		{input: "=1", err: "[1] expect identifier"},
	})
}

func TestUseLeftRight(t *testing.T) {
	check(t, parsec.UseLeft(parsec.Number(), parsec.Char(';')), []outcome[int64]{
		{input: "5;", want: 5, pos: 2},
		{input: "5", err: "[1] expect ';'"},
	})
	check(t, parsec.UseRight(parsec.Char('-'), parsec.Number()), []outcome[int64]{
		{input: "-5", want: 5, pos: 2},
		{input: "+5", err: "[1] expect '-'"},
	})
}

func TestBetween(t *testing.T) {
	quoted := parsec.Between(parsec.Identifier(), parsec.Char('<'), parsec.Char('>'))
	check(t, quoted, []outcome[string]{
		{input: "<id>", want: "id", pos: 4},
		{input: "<id", err: "[3] expect '>'"},
	})
	check(t, parsec.Parens(parsec.Number()), []outcome[int64]{
		{input: " ( 42 ) ", want: 42, pos: 8},
		{input: "(42", err: "[3] expect ')'"},
	})
}

func TestOr(t *testing.T) {
	t.Run("left short circuits", func(t *testing.T) {
		calls := 0
		right := parsec.Func[rune](func(c *parsec.Cursor) (rune, error) {
			calls++
			return c.Next()
		})

		got, err := parsec.Run("a", parsec.Or(parsec.Char('a'), right))
		require.NoError(t, err)
		assert.Equal(t, 'a', got)
		assert.Zero(t, calls)
	})

	t.Run("right after left fails", func(t *testing.T) {
		c := parsec.NewCursor("b")
		got, err := parsec.ParseBy(c, parsec.Or(parsec.Char('a'), parsec.Char('b')))
		require.NoError(t, err)
		assert.Equal(t, 'b', got)
		assert.Equal(t, 1, c.Pos())
	})

	t.Run("furthest failure wins", func(t *testing.T) {
		deep := parsec.UseRight(parsec.Char('a'), parsec.Char('x'))
		shallow := parsec.Char('z')

		_, err := parsec.Run("abd", parsec.Or(deep, shallow))
		require.Error(t, err)
		assert.Equal(t, "[2] expect 'x'", err.Error())

		_, err = parsec.Run("abd", parsec.Or(shallow, deep))
		require.Error(t, err)
		assert.Equal(t, "[2] expect 'x'", err.Error())
	})

	t.Run("tie favors right", func(t *testing.T) {
		p := parsec.Or(parsec.FailMsg[int]("left"), parsec.FailMsg[int]("right"))
		_, err := parsec.Run("", p)
		require.Error(t, err)
		assert.Equal(t, "[0] right", err.Error())
	})

	t.Run("choice", func(t *testing.T) {
		p := parsec.Choice(parsec.Char('a'), parsec.Char('b'), parsec.Char('c'))
		got, err := parsec.Run("c", p)
		require.NoError(t, err)
		assert.Equal(t, 'c', got)

		assert.Panics(t, func() { parsec.Choice[int]() })
	})
}

func TestSomeMany(t *testing.T) {
	check(t, parsec.Many(parsec.Digit()), []outcome[[]rune]{
		{input: "12a", want: []rune{'1', '2'}, pos: 2},
		{input: "abc", want: []rune{}, pos: 0},
		{input: "", want: []rune{}, pos: 0},
	})
	check(t, parsec.Some(parsec.Digit()), []outcome[[]rune]{
		{input: "12a", want: []rune{'1', '2'}, pos: 2},
		{input: "abc", err: "[1] expect digit"},
	})
}

func TestManyTill(t *testing.T) {
	comment := parsec.ManyTill(parsec.AnyChar(), parsec.String("*/"))
	check(t, comment, []outcome[[]rune]{
		{input: "ab*/c", want: []rune{'a', 'b'}, pos: 4},
		{input: "*/", want: []rune{}, pos: 2},
		{input: "ab", err: "[2] end of stream"},
	})
	check(t, parsec.ManyTill(parsec.Digit(), parsec.EOS()), []outcome[[]rune]{
		{input: "12", want: []rune{'1', '2'}, pos: 2},
		{input: "12x", err: "[3] expect digit"},
	})
}

func TestFilter(t *testing.T) {
	even := parsec.Filter(parsec.Number(), func(n int64) bool { return n%2 == 0 })
	check(t, even, []outcome[int64]{
		{input: "4", want: 4, pos: 1},
		{input: "13", err: "[2] unsatisfied"},
	})
}

func TestSplit(t *testing.T) {
	list := parsec.Split(parsec.Number(), parsec.Char(','))
	check(t, list, []outcome[[]int64]{
		{input: "1,2,3", want: []int64{1, 2, 3}, pos: 5},
		{input: "1,2,", want: []int64{1, 2}, pos: 3},
		{input: "7", want: []int64{7}, pos: 1},
		{input: ",1", err: "[1] expect number"},
	})
}

func TestLabel(t *testing.T) {
	inner := parsec.Expect(parsec.Char('a'), "inner")
	outer := parsec.Label(inner, func() string { return "outer" })

	check(t, outer, []outcome[rune]{
		{input: "a", want: 'a', pos: 1},
		{input: "b", err: "[1] outer"},
		{input: "", err: "[0] outer"},
	})

	t.Run("message deferred", func(t *testing.T) {
		calls := 0
		p := parsec.Label(parsec.Char('a'), func() string {
			calls++
			return "never"
		})

		_, err := parsec.Run("a", p)
		require.NoError(t, err)

		_, err = parsec.Run("b", p)
		require.Error(t, err)
		assert.Zero(t, calls)
	})
}

func TestDebug(t *testing.T) {
	var seen []string

	p := parsec.Debug(parsec.Number(), func(n int64, err error) {
		if err != nil {
			seen = append(seen, err.Error())
			return
		}

		seen = append(seen, strconv.FormatInt(n, 10))
	})

	got, err := parsec.Run("12", p)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)

	_, err = parsec.Run("x", p)
	require.Error(t, err)

	assert.Equal(t, []string{"12", "[1] expect number"}, seen)
}

func TestJustFail(t *testing.T) {
	c := parsec.NewCursor("abc")
	got, err := parsec.ParseBy(c, parsec.Just(func() int { return 9 }))
	require.NoError(t, err)
	assert.Equal(t, 9, got)
	assert.Equal(t, 0, c.Pos())

	_, err = parsec.Run("ab", parsec.UseRight(parsec.Char('a'), parsec.FailMsg[int]("boom")))
	require.Error(t, err)
	assert.Equal(t, "[1] boom", err.Error())
}

func TestSharedGrammar(t *testing.T) {
	list := parsec.UseLeft(
		parsec.Split(parsec.TrimWhitespaces(parsec.Number()), parsec.Char(',')),
		parsec.EOS(),
	)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			input := strings.Repeat(strconv.Itoa(i)+", ", i) + "0"
			got, err := parsec.Run(input, list)
			assert.NoError(t, err)
			assert.Len(t, got, i+1)
		}()
	}

	wg.Wait()
}
