package limitation

import (
	"context"
	"fmt"
	"time"
)

func ExampleLimiter_Count() {
	l, err := New(NewMemoryStore(),
		WithLimit(2),
		WithPeriod(time.Minute),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		dec, err := l.Count(ctx, "client-1")
		if err != nil {
			panic(err)
		}
		fmt.Printf("limited=%v remaining=%d\n", dec.Limited, dec.Remaining)
	}

	// Output:
	// limited=false remaining=1
	// limited=false remaining=0
	// limited=true remaining=0
}
