package connection

import (
	"context"
	"log"

	"crossconnect/model"
	"crossconnect/relation"
	"crossconnect/store"
)

// Service manages directional connection edges between users.
type Service struct {
	store  store.Store
	toggle *relation.Toggler
}

func NewService(st store.Store, d relation.Mutator) *Service {
	return &Service{
		store:  st,
		toggle: relation.NewToggler(d, store.CollectionConnections, "userId", "targetId", "Connection Added!"),
	}
}

// Connect adds the edge from userID to targetID.
func (s *Service) Connect(ctx context.Context, userID, targetID string) error {
	return s.toggle.Add(ctx, userID, targetID)
}

// Toggle adds or removes the edge. connected is the state the caller last
// observed from WatchConnected.
func (s *Service) Toggle(ctx context.Context, userID, targetID string, connected bool) error {
	return s.toggle.Toggle(ctx, userID, targetID, connected)
}

// WatchConnected pushes whether userID is connected to targetID on every
// change to the target's incoming connections.
func (s *Service) WatchConnected(ctx context.Context, userID, targetID string, sink func(bool)) (store.Subscription, error) {
	q := store.Query{
		Collection: store.CollectionConnections,
		Where:      &store.Filter{Field: "targetId", Value: targetID},
	}

	return s.store.Subscribe(ctx, q, func(docs []store.Document) {
		connections, err := store.DecodeAll[models.Connection](docs)
		if err != nil {
			log.Printf("Failed to decode connections: %v", err)
			return
		}
		sink(isConnected(connections, userID))
	})
}

func isConnected(connections []models.Connection, userID string) bool {
	for _, c := range connections {
		if c.UserID == userID {
			return true
		}
	}
	return false
}
