package upload

import (
	"context"
	"io"

	"crossconnect/store"
)

// Updater is the slice of the mutation dispatcher the profile-image chain
// needs to link the stored object into the profile document.
type Updater interface {
	Update(ctx context.Context, collection, id string, fields store.Fields, successMsg string) error
}

// ImageUploads wires the two image upload variants to the blob store and
// the mutation dispatcher.
type ImageUploads struct {
	blobs      BlobStore
	dispatcher Updater
}

func NewImageUploads(blobs BlobStore, d Updater) *ImageUploads {
	return &ImageUploads{blobs: blobs, dispatcher: d}
}

// UploadProfileImage streams the image, links its URL into the profile's
// imageLink field, then fires reset so the UI collaborator can tear down
// its transient upload state (modal, progress bar, staged file).
func (i *ImageUploads) UploadProfileImage(ctx context.Context, profileID, filename string, src io.Reader, size int64, onProgress func(int), reset func()) error {
	url, err := i.blobs.Upload(ctx, ProfileImagePrefix+filename, src, size, "", onProgress)
	if err != nil {
		return err
	}

	fields := store.Fields{"imageLink": url}
	if err := i.dispatcher.Update(ctx, store.CollectionUsers, profileID, fields, "Profile has been updated successfully"); err != nil {
		return err
	}

	if reset != nil {
		reset()
	}
	return nil
}

// UploadPostImage streams the image and returns its URL for the caller to
// attach to a subsequently created post.
func (i *ImageUploads) UploadPostImage(ctx context.Context, filename string, src io.Reader, size int64, onProgress func(int)) (string, error) {
	return i.blobs.Upload(ctx, PostImagePrefix+filename, src, size, "", onProgress)
}
