package profile

import (
	"context"
	"log"

	"crossconnect/dispatcher"
	"crossconnect/model"
	"crossconnect/store"
)

// EmailSource resolves the currently signed-in user's email. Satisfied by
// the identity provider.
type EmailSource interface {
	CurrentEmail(ctx context.Context) (string, error)
}

type Service struct {
	store      store.Store
	dispatcher *dispatcher.Dispatcher
	identity   EmailSource
}

func NewService(st store.Store, d *dispatcher.Dispatcher, id EmailSource) *Service {
	return &Service{store: st, dispatcher: d, identity: id}
}

// Create registers the profile document. Registration happens once; profile
// creation is silent, the UI moves straight on.
func (s *Service) Create(ctx context.Context, p models.UserProfile) (string, error) {
	fields := store.Fields{
		"userID":    p.UserID,
		"name":      p.Name,
		"email":     p.Email,
		"imageLink": p.ImageLink,
	}
	return s.dispatcher.Create(ctx, store.CollectionUsers, fields, "")
}

// Edit merges an arbitrary partial field set into the profile.
func (s *Service) Edit(ctx context.Context, id string, fields store.Fields) error {
	return s.dispatcher.Update(ctx, store.CollectionUsers, id, fields, "Profile has been updated successfully")
}

// WatchByEmail pushes the profile with the given email, or nil while no
// such profile exists. Absence is not an error.
func (s *Service) WatchByEmail(ctx context.Context, email string, sink func(*models.UserProfile)) (store.Subscription, error) {
	q := store.Query{
		Collection: store.CollectionUsers,
		Where:      &store.Filter{Field: "email", Value: email},
	}

	return s.store.Subscribe(ctx, q, func(docs []store.Document) {
		profiles, err := store.DecodeAll[models.UserProfile](docs)
		if err != nil {
			log.Printf("Failed to decode profiles: %v", err)
			return
		}
		sink(first(profiles))
	})
}

// WatchCurrent resolves the signed-in email from the identity provider and
// watches that profile.
func (s *Service) WatchCurrent(ctx context.Context, sink func(*models.UserProfile)) (store.Subscription, error) {
	email, err := s.identity.CurrentEmail(ctx)
	if err != nil {
		return nil, err
	}
	return s.WatchByEmail(ctx, email, sink)
}

// WatchAll pushes every registered profile.
func (s *Service) WatchAll(ctx context.Context, sink func([]models.UserProfile)) (store.Subscription, error) {
	q := store.Query{Collection: store.CollectionUsers}

	return s.store.Subscribe(ctx, q, func(docs []store.Document) {
		profiles, err := store.DecodeAll[models.UserProfile](docs)
		if err != nil {
			log.Printf("Failed to decode profiles: %v", err)
			return
		}
		sink(profiles)
	})
}

func first(profiles []models.UserProfile) *models.UserProfile {
	if len(profiles) == 0 {
		return nil
	}
	p := profiles[0]
	return &p
}
