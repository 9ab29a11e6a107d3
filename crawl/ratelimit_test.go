package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/camseed/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summit = "www.summitracing.com"

// timeWait measures one Wait call.
func timeWait(t *testing.T, l *crawl.DomainLimiter, domain string) time.Duration {
	t.Helper()
	start := time.Now()
	require.NoError(t, l.Wait(context.Background(), domain))
	return time.Since(start)
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first listing request goes out immediately", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(10)

		assert.Less(t, timeWait(t, l, summit), 50*time.Millisecond)
	})

	t.Run("spaces requests to one host", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(10)
		timeWait(t, l, summit)

		assert.GreaterOrEqual(t, timeWait(t, l, summit), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(10)
		timeWait(t, l, summit)

		assert.Less(t, timeWait(t, l, "www.jegs.com"), 50*time.Millisecond)
	})

	t.Run("gives up when the context ends", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(crawl.DefaultRate)
		timeWait(t, l, summit)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, l.Wait(ctx, summit))
	})

	t.Run("zero rate disables limiting", func(t *testing.T) {
		t.Parallel()

		l := crawl.NewDomainLimiter(0)

		var total time.Duration
		for range 5 {
			total += timeWait(t, l, summit)
		}
		assert.Less(t, total, 50*time.Millisecond)
	})
}

func TestDomainOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://www.SummitRacing.com/search?page=2", summit},
		{"http://localhost:8080/parts", "localhost"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, crawl.DomainOf(tt.in), tt.in)
	}
}
