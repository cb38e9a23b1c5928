package storage

import "github.com/redis/go-redis/v9"

const waitingSetKey = "waiting_rooms"

// AddRoomToWaitingSet registers a WAITING room in Redis so supporter
// dashboards can poll the registry without hitting Postgres.
func (s *Service) AddRoomToWaitingSet(roomID string) error {
	return s.Redis.SAdd(s.Ctx, waitingSetKey, roomID).Err()
}

// RemoveRoomFromWaitingSet drops a room from the registry after a claim,
// close or expiry.
func (s *Service) RemoveRoomFromWaitingSet(roomID string) error {
	return s.Redis.SRem(s.Ctx, waitingSetKey, roomID).Err()
}

// GetWaitingRoomIDs returns every room currently in the waiting registry.
func (s *Service) GetWaitingRoomIDs() ([]string, error) {
	return s.Redis.SMembers(s.Ctx, waitingSetKey).Result()
}

// SubscribeToRoomEvents subscribes to every room channel. Used by the hub's
// pub/sub listener.
func (s *Service) SubscribeToRoomEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, "room:*")
}
