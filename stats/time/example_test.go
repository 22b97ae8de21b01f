package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-anc/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f dc=%.1f peak=%.0f\n", s.RMS, s.DC, s.Peak)

	// Output:
	// rms=1.0 dc=0.0 peak=1
}
