package favorites

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_DeliversInOrder(t *testing.T) {
	var e Emitter[int]
	var got []string
	e.Subscribe(func(v int) { got = append(got, "a") })
	e.Subscribe(func(v int) { got = append(got, "b") })

	e.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestEmitter_DisposeRemovesOnlyThatSubscriber(t *testing.T) {
	var e Emitter[string]
	var got []string
	disposeA := e.Subscribe(func(v string) { got = append(got, "a:"+v) })
	e.Subscribe(func(v string) { got = append(got, "b:"+v) })

	disposeA()
	disposeA()
	e.Emit("x")

	assert.Equal(t, []string{"b:x"}, got)
	assert.Equal(t, 1, e.Len())
}

func TestEmitter_DisposeDuringEmit(t *testing.T) {
	var e Emitter[int]
	calls := 0
	var dispose func()
	dispose = e.Subscribe(func(int) {
		calls++
		dispose()
	})

	e.Emit(1)
	e.Emit(2)

	assert.Equal(t, 1, calls)
	assert.Zero(t, e.Len())
}
