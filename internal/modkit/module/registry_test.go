package module

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	Register("search", titler(staticTitles{"swsdp": "Web"}))
	got, ok := PortsAs[titler]("search")
	assert.True(t, ok)
	assert.Equal(t, "Web", got.Title("swsdp"))

	_, ok = PortsAs[titler]("meta")
	assert.False(t, ok, "unregistered name")

	Register("meta", 7)
	_, ok = PortsAs[titler]("meta")
	assert.False(t, ok, "wrong type")

	Register("search", nil)
	_, ok = PortsAs[titler]("search")
	assert.False(t, ok, "overwritten with nil")

	Reset()
	_, ok = PortsAs[int]("meta")
	assert.False(t, ok, "reset clears")
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Register("m", i)
			_, _ = PortsAs[int]("m")
		}()
	}
	wg.Wait()
	_, ok := PortsAs[int]("m")
	assert.True(t, ok)
}
