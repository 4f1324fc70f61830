package sexpr_test

import (
	"context"
	"fmt"

	"github.com/ardnew/parsec/sexpr"
)

func ExampleRun() {
	ctx := context.Background()

	for _, src := range []string{
		"(+ 1 2)",
		"(let (x 1) (+ x 1))",
		"(if true 1 0)",
		"(/ 1 0)",
		"y",
		"(+ 1",
	} {
		v, err := sexpr.Run(ctx, src)
		if err != nil {
			fmt.Println(err)

			continue
		}

		fmt.Println(v)
	}
	// Output:
	// 3
	// 2
	// 1
	// Division By Zero
	// Unbound Identifier
	// parse error: [4] end of stream
}

func ExampleCompile() {
	e, _ := sexpr.Parse(context.Background(), "(let (n 7) (* n 6))")

	p, _ := sexpr.Compile(e)
	v, err := p.Run()

	fmt.Println(v, err)
	// Output:
	// 42 <nil>
}
