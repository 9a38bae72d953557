package state

import (
	"sync"
	"time"
)

// DefaultTTL через сколько брошенный диалог считается истёкшим
const DefaultTTL = 30 * time.Minute

// Manager хранит шаги диалогов пользователей в памяти
type Manager struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт менеджер; ttl <= 0 означает DefaultTTL
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		ttl:    ttl,
		now:    time.Now,
		states: make(map[int64]*UserData),
	}
}

// active возвращает данные пользователя, если диалог не истёк. Вызывать под mu.
func (sm *Manager) active(telegramID int64) (*UserData, bool) {
	userData, exists := sm.states[telegramID]
	if !exists || sm.now().Sub(userData.UpdatedAt) > sm.ttl {
		return nil, false
	}
	return userData, true
}

// touch возвращает запись пользователя, создавая или обнуляя истёкшую. Вызывать под mu.Lock.
func (sm *Manager) touch(telegramID int64) *UserData {
	userData, ok := sm.active(telegramID)
	if !ok {
		userData = &UserData{Data: make(map[string]interface{})}
		sm.states[telegramID] = userData
	}
	userData.UpdatedAt = sm.now()
	return userData
}

// GetState текущий шаг диалога; истёкший диалог возвращает StateNone
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, ok := sm.active(telegramID); ok {
		return userData.State
	}
	return StateNone
}

// SetState переводит диалог на шаг state. StateNone удаляет запись.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}
	sm.touch(telegramID).State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, ok := sm.active(telegramID); ok {
		value, found := userData.Data[key]
		return value, found
	}
	return nil, false
}

// GetString строковое значение или пустая строка
func (sm *Manager) GetString(telegramID int64, key string) string {
	v, ok := sm.GetData(telegramID, key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SetData сохраняет значение в данных диалога
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.touch(telegramID).Data[key] = value
}

// ClearState завершает диалог пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// Sweep удаляет истёкшие диалоги и возвращает их количество
func (sm *Manager) Sweep() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	for id := range sm.states {
		if _, ok := sm.active(id); !ok {
			delete(sm.states, id)
			removed++
		}
	}
	return removed
}
