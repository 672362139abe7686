package comment

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

// Add appends a comment to the post. Comments are never edited or deleted.
func (s *Service) Add(ctx context.Context, postID, text, name string) (string, error) {
	fields := store.Fields{
		"postId":    postID,
		"comment":   text,
		"timeStamp": time.Now().UnixMilli(),
		"name":      name,
	}
	return s.dispatcher.Create(ctx, store.CollectionComments, fields, "")
}

// WatchByPost pushes the comments on one post.
func (s *Service) WatchByPost(ctx context.Context, postID string, sink func([]models.Comment)) (store.Subscription, error) {
	q := store.Query{
		Collection: store.CollectionComments,
		Where:      &store.Filter{Field: "postId", Value: postID},
		OrderBy:    "timeStamp",
	}

	return s.store.Subscribe(ctx, q, func(docs []store.Document) {
		comments, err := store.DecodeAll[models.Comment](docs)
		if err != nil {
			log.Printf("Failed to decode comments: %v", err)
			return
		}
		sink(comments)
	})
}
