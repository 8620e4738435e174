package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// An unreachable address makes every redis call fail fast, which exercises
// the miss path: the loader runs and its value is served even with the
// cache down.
func newUnreachable() *Cache { return New("127.0.0.1:1", "", 0) }

func TestGetOrLoadServesLoaderValueWhenRedisDown(t *testing.T) {
	c := newUnreachable()

	calls := 0
	b, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		calls++
		return []byte("fresh"), nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []byte("fresh"), b)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadPropagatesLoaderError(t *testing.T) {
	c := newUnreachable()

	_, err := c.GetOrLoad(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, errors.New("store down")
	})
	assert.EqualError(t, err, "store down")
}

func TestGetOrLoadJSONRoundTrip(t *testing.T) {
	c := newUnreachable()

	type entry struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute,
		func(context.Context) (*[]entry, error) {
			return &[]entry{{ID: "1", Name: "a"}}, nil
		})
	assert.NoError(t, err)
	assert.Equal(t, []entry{{ID: "1", Name: "a"}}, *out)
}

func TestGetOrLoadJSONNilLoad(t *testing.T) {
	c := newUnreachable()

	out, err := GetOrLoadJSON[string](c, context.Background(), "k", time.Minute,
		func(context.Context) (*string, error) { return nil, nil })
	assert.NoError(t, err)
	assert.Nil(t, out)
}
