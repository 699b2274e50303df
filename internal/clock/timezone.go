package clock

import (
	"time"

	"clockd/internal/env"
)

// timezoneManager holds the active timezone identifier and its resolved
// location. All mutation happens under the owning Clock's mutex.
type timezoneManager struct {
	id  string
	loc *time.Location
}

func newTimezoneManager(e env.Capability, id string) (*timezoneManager, error) {
	loc, err := e.LoadLocation(id)
	if err != nil {
		return nil, newConfigErr("timezone", id, err)
	}
	return &timezoneManager{id: id, loc: loc}, nil
}

// swap replaces the active zone and returns the previous identifier.
func (m *timezoneManager) swap(id string, loc *time.Location) (prev string) {
	prev = m.id
	m.id, m.loc = id, loc
	return prev
}
