package stream

import (
	"fmt"
)

func ExampleStream_Iterator() {
	// Breaking out of the loop stops the stream early and still closes it
	line := "squares:"
	for v := range Just(1, 4, 9, 16, 25, 36, 49).Iterator {
		if v > 25 {
			break
		}
		line += fmt.Sprintf(" %d", v)
	}
	fmt.Println(line)

	// Output: squares: 1 4 9 16 25
}
