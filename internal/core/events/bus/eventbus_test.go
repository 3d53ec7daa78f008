package bus

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_ string, _ Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_ string, handlers int, err error, _ int64) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got []any
	_, err := b.Subscribe("carry.delivered", func(e Event) error {
		got = append(got, e.Data())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("carry.delivered", "tester", 1)))
	require.NoError(t, b.Publish(NewEvent("carry.picked_up", "tester", 2)))

	assert.Equal(t, []any{1}, got)
}

func TestDeliveryFollowsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []string
	for _, name := range []string{"a", "b", "c", "d"} {
		name := name
		_, err := b.Subscribe("ev", func(Event) error {
			order = append(order, name)
			return nil
		})
		require.NoError(t, err)
	}
	_, err := b.SubscribeAll(func(Event) error {
		order = append(order, "all")
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("ev", "src", nil)))
	assert.Equal(t, []string{"a", "b", "c", "d", "all"}, order)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	count := 0
	sub, err := b.Subscribe("ev", func(Event) error { count++; return nil })
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("ev", "src", nil)))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, b.Unsubscribe(nil))
	require.NoError(t, b.Publish(NewEvent("ev", "src", nil)))

	assert.Equal(t, 1, count)
	assert.False(t, sub.IsActive())
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	e1, e2 := errors.New("one"), errors.New("two")
	_, _ = b.Subscribe("ev", func(Event) error { return e1 })
	_, _ = b.Subscribe("ev", func(Event) error { return nil })
	_, _ = b.Subscribe("ev", func(Event) error { return e2 })

	err := b.PublishBatch(NewEvent("ev", "src", nil), NewEvent("other", "src", nil))
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
}

func TestObserverMetrics(t *testing.T) {
	b := New()
	obs := &testObserver{}
	b.AddObserver(obs)
	_, _ = b.Subscribe("ev", func(Event) error { return nil })
	_, _ = b.Subscribe("ev", func(Event) error { return errors.New("boom") })

	_ = b.Publish(NewEvent("ev", "src", nil))

	assert.Equal(t, 1, obs.publishCount)
	assert.Equal(t, 2, obs.deliveredCount)
	assert.Error(t, obs.lastErr)

	m := b.GetMetrics()
	assert.Equal(t, uint64(1), m.Published)
	assert.Equal(t, uint64(2), m.DeliveredHandlers)
	assert.Equal(t, uint64(1), m.Errors)
	assert.Equal(t, uint64(2), m.SubscribersActive)

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("ev", "src", nil))
	assert.Equal(t, 1, obs.publishCount)
}

func TestSubscribeRejectsNilHandler(t *testing.T) {
	_, err := New().Subscribe("ev", nil)
	assert.Error(t, err)
}

func TestCancelWhilePublishing(t *testing.T) {
	b := New()
	subs := make([]Subscription, 0, 32)
	for i := 0; i < cap(subs); i++ {
		sub, err := b.Subscribe("tick", func(Event) error { return nil })
		require.NoError(t, err)
		subs = append(subs, sub)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, b.Publish(NewEvent("tick", "test", i)))
		}
	}()
	go func() {
		defer wg.Done()
		for _, sub := range subs {
			assert.NoError(t, sub.Cancel())
		}
	}()
	wg.Wait()

	for _, sub := range subs {
		assert.False(t, sub.IsActive())
	}
	assert.NoError(t, b.Publish(NewEvent("tick", "test", nil)))
}
