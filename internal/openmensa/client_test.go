package openmensa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mealsJSON = `[
	{"id": 1, "name": "Gegrilltes Gemüse mit Reis [1,2,a]", "category": "Linie 1", "notes": ["vegan"], "prices": {"students": 2.6, "others": null}},
	{"id": 2, "name": "Pommes Frites", "category": "Linie 1", "notes": [], "prices": {}}
]`

func testDate() time.Time {
	return time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
}

func TestMeals(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mealsJSON))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/api/v2/canteens/", server.Client(), nil, nil)
	meals, err := c.Meals(context.Background(), 31, testDate())
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/canteens/31/days/2024-01-03/meals", gotPath)
	require.Len(t, meals, 2)
	assert.Equal(t, "Linie 1", meals[0].Category)
	assert.Equal(t, "Gegrilltes Gemüse mit Reis [1,2,a]", meals[0].Name)
	assert.Equal(t, []string{"vegan"}, meals[0].Notes)
	require.NotNil(t, meals[0].Prices["students"])
	assert.Equal(t, 2.6, *meals[0].Prices["students"])
	assert.Nil(t, meals[0].Prices["others"])
}

func TestMealsEmptyListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	meals, err := NewClient(server.URL, server.Client(), nil, nil).Meals(context.Background(), 31, testDate())
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestMealsFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusNotFound, statusErr.Code)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(mealsJSON))
			},
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"not": "a list"`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedPayload)
			},
		},
		{
			name: "object instead of array",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"name": "x"}`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedPayload)
			},
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`null`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedPayload)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			meals, err := NewClient(server.URL, server.Client(), nil, nil).Meals(context.Background(), 31, testDate())
			require.Error(t, err)
			assert.Nil(t, meals)
			tt.check(t, err)
		})
	}
}

func TestMealsDoesNotRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, server.Client(), nil, nil).Meals(context.Background(), 31, testDate())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestMealsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, nil, nil, nil).Meals(context.Background(), 31, testDate())
	assert.Error(t, err)
}

func TestMealsCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL, server.Client(), nil, nil).Meals(ctx, 31, testDate())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestURL(t *testing.T) {
	c := NewClient("", nil, nil, nil)
	assert.Equal(t, "https://openmensa.org/api/v2/canteens/31/days/2024-01-03/meals", c.URL(31, testDate()))
}
