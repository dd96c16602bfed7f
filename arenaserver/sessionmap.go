package arenaserver

import (
	commontypes "github.com/yosytuvy/agario/common/types"
)

type SessionMap struct {
	*commontypes.SyncMap
}

func NewSessionMap() *SessionMap {
	return &SessionMap{
		commontypes.NewSyncMap(),
	}
}

func (smap *SessionMap) Get(id string) *Session {
	if res, ok := (smap.GetGeneric(id)).(*Session); ok {
		return res
	}

	return nil
}

func (smap *SessionMap) Each(cbk func(session *Session)) {
	smap.EachGeneric(func(id string, item interface{}) {
		if session, ok := item.(*Session); ok {
			cbk(session)
		}
	})
}
