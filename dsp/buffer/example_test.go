package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-anc/dsp/buffer"
)

func ExampleBuffer_PCM16() {
	b := buffer.FromSamples(16000, []float64{0.4, -2.5, 40000})

	fmt.Println(b.Len(), b.SampleRate())
	fmt.Println(b.PCM16())

	// Output:
	// 3 16000
	// [0 -3 32767]
}
