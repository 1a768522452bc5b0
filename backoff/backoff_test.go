package backoff

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func testBackoff(attempts int, s Strategy, expected ...time.Duration) {
	for i := 0; i < attempts; i++ {
		Expect(s.Backoff(i)).To(Equal(expected[i]))
	}
}

func expectedDurationTest(attempt int, s Strategy, expected time.Duration) {
	Expect(s.Backoff(attempt)).To(Equal(expected))
}

var _ = Describe("Backoff", func() {
	DescribeTable("Exponential",
		testBackoff,
		Entry("should double each time", 5, Exponential(1*time.Second), 1*time.Second, 2*time.Second, 4*time.Second, 8*time.Second, 16*time.Second),
	)
	DescribeTable("Constant",
		testBackoff,
		Entry("should remain constant", 3, Constant(1*time.Second), 1*time.Second, 1*time.Second, 1*time.Second),
	)
	DescribeTable("Maximum",
		testBackoff,
		Entry("should cap exponential growth", 4, New(Exponential(250*time.Millisecond), Maximum(time.Second)), 250*time.Millisecond, 500*time.Millisecond, time.Second, time.Second),
	)

	DescribeTable("Exponential Backoff",
		expectedDurationTest,
		Entry("attempt 0", 0, Exponential(1*time.Second), time.Duration(1*time.Second)),
		Entry("attempt 3", 3, Exponential(1*time.Second), time.Duration(8*time.Second)),
		Entry("with scaling - attempt 1", 1, Exponential(500*time.Millisecond), time.Duration(1*time.Second)),
		Entry("max attempt value", math.MaxInt64, Exponential(1*time.Second), time.Duration(math.MaxInt64)),
	)

	Describe("Sleep", func() {
		It("should return once the delay elapses", func() {
			Expect(Sleep(context.Background(), Constant(time.Millisecond), 0)).To(Succeed())
		})

		It("should return the context error when cancelled", func() {
			ctx, done := context.WithCancel(context.Background())
			done()
			Expect(Sleep(ctx, Constant(time.Hour), 0)).To(MatchError(context.Canceled))
		})
	})
})
