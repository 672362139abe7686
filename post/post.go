package post

import (
	"context"
	"log"
	"time"

	"crossconnect/dispatcher"
	"crossconnect/model"
	"crossconnect/store"
)

type Service struct {
	store      store.Store
	dispatcher *dispatcher.Dispatcher
}

func NewService(st store.Store, d *dispatcher.Dispatcher) *Service {
	return &Service{store: st, dispatcher: d}
}

// Share creates a post under a store-assigned id. The caller sees the post
// in its feed only via the next push; there is no optimistic insert.
func (s *Service) Share(ctx context.Context, userID, status, postImage string) (string, error) {
	fields := store.Fields{
		"userID":    userID,
		"status":    status,
		"postImage": postImage,
		"timeStamp": time.Now().UnixMilli(),
	}
	return s.dispatcher.Create(ctx, store.CollectionPosts, fields, "Post has been added successfully")
}

// Edit updates the post's body and image; all other fields are left
// untouched by the store's merge semantics. Only the owner's UI offers this.
func (s *Service) Edit(ctx context.Context, id, status, postImage string) error {
	fields := store.Fields{
		"status":    status,
		"postImage": postImage,
	}
	return s.dispatcher.Update(ctx, store.CollectionPosts, id, fields, "Post has been updated!")
}

// Remove deletes the post.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.dispatcher.Remove(ctx, store.CollectionPosts, id, "Post has been Deleted!")
}

// WatchFeed pushes the full post feed, ascending by timeStamp, on every
// change to any post.
func (s *Service) WatchFeed(ctx context.Context, sink func([]models.Post)) (store.Subscription, error) {
	q := store.Query{
		Collection: store.CollectionPosts,
		OrderBy:    "timeStamp",
	}
	return s.watch(ctx, q, sink)
}

// WatchUserPosts pushes the posts authored by one user.
func (s *Service) WatchUserPosts(ctx context.Context, userID string, sink func([]models.Post)) (store.Subscription, error) {
	q := store.Query{
		Collection: store.CollectionPosts,
		Where:      &store.Filter{Field: "userID", Value: userID},
		OrderBy:    "timeStamp",
	}
	return s.watch(ctx, q, sink)
}

func (s *Service) watch(ctx context.Context, q store.Query, sink func([]models.Post)) (store.Subscription, error) {
	return s.store.Subscribe(ctx, q, func(docs []store.Document) {
		posts, err := store.DecodeAll[models.Post](docs)
		if err != nil {
			log.Printf("Failed to decode posts: %v", err)
			return
		}
		sink(posts)
	})
}
