package food

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mensa/internal/cache"
	"mensa/internal/openmensa"
)

type mockMealSource struct {
	mu        sync.Mutex
	calls     int
	mealsFunc func(ctx context.Context, canteenID int, date time.Time) ([]openmensa.Meal, error)
}

func (m *mockMealSource) Meals(ctx context.Context, canteenID int, date time.Time) ([]openmensa.Meal, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.mealsFunc != nil {
		return m.mealsFunc(ctx, canteenID, date)
	}
	return []openmensa.Meal{meal("Linie 1", "Gegrilltes Gemüse mit Reis [1,2,a]")}, nil
}

func (m *mockMealSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingCache errors on every call
type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]openmensa.Meal, error) {
	return nil, errors.New("backend down")
}

func (failingCache) Set(context.Context, string, []openmensa.Meal, time.Time) error {
	return errors.New("backend down")
}

func (failingCache) Len() int { return 0 }

func wednesday() time.Time {
	return time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
}

func newTestRepository(source MealSource) (*Repository, *cache.Local[[]openmensa.Meal], *testClock) {
	clk := &testClock{now: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)}
	c := cache.NewLocal[[]openmensa.Meal](clk.Now)
	return NewRepository(c, source, 24*time.Hour, clk.Now, nil, nil), c, clk
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "31-2024-01-03", CacheKey(31, wednesday()))
	assert.Equal(t, "7-2024-12-24", CacheKey(7, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)))
}

func TestGetMealsCachesWithinTTL(t *testing.T) {
	source := &mockMealSource{}
	repo, c, clk := newTestRepository(source)
	ctx := context.Background()

	first, err := repo.GetMeals(ctx, 31, wednesday())
	require.NoError(t, err)
	require.Equal(t, 1, source.Calls())
	assert.Equal(t, 1, c.Len())

	clk.Advance(23 * time.Hour)
	second, err := repo.GetMeals(ctx, 31, wednesday())
	require.NoError(t, err)

	assert.Equal(t, 1, source.Calls(), "cache hit must not call upstream")
	assert.Equal(t, first, second)
}

func TestGetMealsRefetchesAfterExpiry(t *testing.T) {
	source := &mockMealSource{}
	repo, _, clk := newTestRepository(source)
	ctx := context.Background()

	_, err := repo.GetMeals(ctx, 31, wednesday())
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)
	_, err = repo.GetMeals(ctx, 31, wednesday())
	require.NoError(t, err)
	assert.Equal(t, 2, source.Calls())

	// the fresh entry is cached again
	_, err = repo.GetMeals(ctx, 31, wednesday())
	require.NoError(t, err)
	assert.Equal(t, 2, source.Calls())
}

func TestGetMealsKeysByCanteenAndDate(t *testing.T) {
	source := &mockMealSource{}
	repo, c, _ := newTestRepository(source)
	ctx := context.Background()

	_, err := repo.GetMeals(ctx, 31, wednesday())
	require.NoError(t, err)
	_, err = repo.GetMeals(ctx, 31, wednesday().AddDate(0, 0, 1))
	require.NoError(t, err)
	_, err = repo.GetMeals(ctx, 32, wednesday())
	require.NoError(t, err)

	assert.Equal(t, 3, source.Calls())
	assert.Equal(t, 3, c.Len())
}

func TestGetMealsFailureIsNotCached(t *testing.T) {
	upstreamErr := &openmensa.StatusError{Code: 404, URL: "x"}
	source := &mockMealSource{
		mealsFunc: func(context.Context, int, time.Time) ([]openmensa.Meal, error) {
			return nil, upstreamErr
		},
	}
	repo, c, _ := newTestRepository(source)
	ctx := context.Background()

	meals, err := repo.GetMeals(ctx, 31, wednesday())
	require.Error(t, err)
	assert.Nil(t, meals)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Zero(t, c.Len())

	_, err = repo.GetMeals(ctx, 31, wednesday())
	require.Error(t, err)
	assert.Equal(t, 2, source.Calls(), "no retry within a call, a new call goes upstream again")
}

func TestGetMealsCanceledContext(t *testing.T) {
	source := &mockMealSource{
		mealsFunc: func(ctx context.Context, _ int, _ time.Time) ([]openmensa.Meal, error) {
			return nil, ctx.Err()
		},
	}
	repo, c, _ := newTestRepository(source)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetMeals(ctx, 31, wednesday())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.Len())
}

func TestGetMealsEmptyListingIsCached(t *testing.T) {
	source := &mockMealSource{
		mealsFunc: func(context.Context, int, time.Time) ([]openmensa.Meal, error) {
			return []openmensa.Meal{}, nil
		},
	}
	repo, _, _ := newTestRepository(source)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		meals, err := repo.GetMeals(ctx, 31, wednesday())
		require.NoError(t, err)
		assert.Empty(t, meals)
	}
	assert.Equal(t, 1, source.Calls())
}

func TestGetMealsCacheBackendErrorFallsBackToUpstream(t *testing.T) {
	source := &mockMealSource{}
	repo := NewRepository(failingCache{}, source, time.Hour, nil, nil, nil)

	meals, err := repo.GetMeals(context.Background(), 31, wednesday())
	require.NoError(t, err)
	assert.Len(t, meals, 1)
	assert.Equal(t, 1, source.Calls())
}

func TestGetMealsConcurrentMissesMayBothFetch(t *testing.T) {
	release := make(chan struct{})
	source := &mockMealSource{
		mealsFunc: func(context.Context, int, time.Time) ([]openmensa.Meal, error) {
			<-release
			return []openmensa.Meal{meal("Linie 1", "Currywurst mit Pommes")}, nil
		},
	}
	repo, _, _ := newTestRepository(source)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.GetMeals(context.Background(), 31, wednesday())
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return source.Calls() == 2 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	// once stored, later reads are hits
	_, err := repo.GetMeals(context.Background(), 31, wednesday())
	require.NoError(t, err)
	assert.Equal(t, 2, source.Calls())
}
