package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_StateLifecycle(t *testing.T) {
	m := NewManager(0)
	assert.Equal(t, StateNone, m.GetState(1))

	m.SetState(1, StateBuildCourses)
	m.SetData(1, KeyQuarter, "Fall")
	assert.Equal(t, StateBuildCourses, m.GetState(1))
	assert.Equal(t, "Fall", m.GetString(1, KeyQuarter))
	assert.Empty(t, m.GetString(1, KeyCourses))

	m.SetState(1, StateBuildCount)
	assert.Equal(t, "Fall", m.GetString(1, KeyQuarter), "data survives state change")

	m.ClearState(1)
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Empty(t, m.GetString(1, KeyQuarter))
}

func TestManager_SetNoneDropsData(t *testing.T) {
	m := NewManager(0)
	m.SetData(7, KeyCourses, "MATH 51")
	m.SetState(7, StateNone)

	_, ok := m.GetData(7, KeyCourses)
	assert.False(t, ok)
}

func TestManager_DialogExpires(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(10 * time.Minute)
	m.now = func() time.Time { return now }

	m.SetState(1, StateBuildCourses)
	m.SetData(1, KeyQuarter, "Fall")
	m.SetState(2, StateBuildQuarter)

	now = now.Add(5 * time.Minute)
	m.SetData(2, KeyQuarter, "Winter")

	now = now.Add(6 * time.Minute)
	assert.Equal(t, StateNone, m.GetState(1))
	assert.Empty(t, m.GetString(1, KeyQuarter))
	assert.Equal(t, StateBuildQuarter, m.GetState(2))

	// новая запись после истечения начинается с чистых данных
	m.SetState(1, StateBuildCount)
	assert.Empty(t, m.GetString(1, KeyQuarter))

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 2, m.Sweep())
	assert.Zero(t, m.Sweep())
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager(0)
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetState(id, StateBuildQuarter)
			m.SetData(id, KeyQuarter, "Spring")
			_ = m.GetState(id)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, "Spring", m.GetString(49, KeyQuarter))
}
