package service

// ImageUpload is an uploaded image already read into memory by the
// handler layer.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// MediaStore is the slice of the media package the services need; it is
// an interface so handler and service tests can run without a disk root.
type MediaStore interface {
	Save(subdir, ext string, data []byte) (string, error)
}
