package crawl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/ivo-toby/llm-text-scraper/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ llmtext.DomainLimiter = (*crawl.DomainLimiter)(nil)

func TestDomainLimiter_FirstRequestIsImmediate(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(time.Second)

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))

	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestDomainLimiter_SpacesRequestsToTheSameDomain(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(100 * time.Millisecond)

	require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))

	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond,
		"the second request should wait out the delay")
}

func TestDomainLimiter_DomainsDoNotShareADelay(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(time.Second)

	require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), "api.example.com"))

	assert.Less(t, time.Since(start), 50*time.Millisecond,
		"a fresh domain should not inherit another domain's delay")
}

func TestDomainLimiter_CanceledContextUnblocksWait(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(time.Second)
	require.NoError(t, limiter.Wait(context.Background(), "docs.example.com"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.Error(t, limiter.Wait(ctx, "docs.example.com"))
}

func TestDomainLimiter_ConcurrentWaitsAllComplete(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(10 * time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = limiter.Wait(context.Background(), "docs.example.com")
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}
