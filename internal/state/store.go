//go:generate mockery --with-expecter=true --name=RoomStore --output=./mocks
package state

import (
	"fmt"
	"maps"
	"slices"
)

// RoomStore indexes live rooms by id. Implementations need not be safe for
// concurrent use; the registry guards every call with its own mutex.
type RoomStore interface {
	GetRoom(roomId string) (*Room, error)
	SetRoom(roomId string, room *Room)
	DeleteRoom(roomId string, room *Room) bool
	Rooms() []*Room
}

type InMemoryRoomStore struct {
	store map[string]*Room
}

func NewInMemoryRoomStore() *InMemoryRoomStore {
	return &InMemoryRoomStore{store: make(map[string]*Room)}
}

func (i InMemoryRoomStore) GetRoom(roomId string) (*Room, error) {
	room, exists := i.store[roomId]
	if !exists {
		return nil, fmt.Errorf("no room found for id %s", roomId)
	}
	return room, nil
}

func (i InMemoryRoomStore) SetRoom(roomId string, room *Room) {
	i.store[roomId] = room
}

// DeleteRoom removes roomId only while it still maps to room.
func (i InMemoryRoomStore) DeleteRoom(roomId string, room *Room) bool {
	if current, exists := i.store[roomId]; !exists || current != room {
		return false
	}
	delete(i.store, roomId)
	return true
}

func (i InMemoryRoomStore) Rooms() []*Room {
	return slices.Collect(maps.Values(i.store))
}
