package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockAdvance(t *testing.T) {
	t.Run("now moves with advance", func(t *testing.T) {
		c := Fake(epoch)
		assert.Equal(t, epoch, c.Now())
		c.Advance(5 * time.Second)
		assert.Equal(t, epoch.Add(5*time.Second), c.Now())
	})

	t.Run("after fires only at deadline", func(t *testing.T) {
		c := Fake(epoch)
		ch := c.After(3 * time.Second)

		c.Advance(2 * time.Second)
		select {
		case <-ch:
			t.Fatal("After fired early")
		default:
		}

		c.Advance(time.Second)
		select {
		case got := <-ch:
			assert.Equal(t, epoch.Add(3*time.Second), got)
		default:
			t.Fatal("After did not fire")
		}
	})

	t.Run("after with zero duration fires immediately", func(t *testing.T) {
		c := Fake(epoch)
		select {
		case <-c.After(0):
		default:
			t.Fatal("After(0) should fire immediately")
		}
	})
}

func TestFakeClockAfterFunc(t *testing.T) {
	t.Run("callbacks fire in deadline order", func(t *testing.T) {
		c := Fake(epoch)
		var order []int
		c.AfterFunc(2*time.Second, func() { order = append(order, 2) })
		c.AfterFunc(time.Second, func() { order = append(order, 1) })
		assert.Equal(t, 2, c.PendingCount())

		c.Advance(5 * time.Second)
		assert.Equal(t, []int{1, 2}, order)
		assert.Equal(t, 0, c.PendingCount())
	})

	t.Run("stopped timer never fires", func(t *testing.T) {
		c := Fake(epoch)
		fired := false
		timer := c.AfterFunc(time.Second, func() { fired = true })

		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())
		c.Advance(time.Minute)
		assert.False(t, fired)
	})

	t.Run("wait for timers unblocks once registered", func(t *testing.T) {
		c := Fake(epoch)
		done := make(chan struct{})
		go func() {
			<-c.After(time.Second)
			close(done)
		}()

		c.WaitForTimers(1)
		c.Advance(time.Second)
		<-done
	})
}
