package review

// Lightbox tracks the full-screen photo viewer over the uploaded photo pool.
// The zero value is a closed lightbox.
type Lightbox struct {
	Open  bool `json:"open"`
	Index int  `json:"index"`
}

// OpenLightbox opens the viewer at the photo with the given media id. Unknown
// ids leave the lightbox closed.
func (s *Session) OpenLightbox(mediaID int) {
	for i, p := range s.Photos {
		if p.MediaID == mediaID {
			s.Lightbox = Lightbox{Open: true, Index: i}
			return
		}
	}
}

// CloseLightbox closes the viewer.
func (s *Session) CloseLightbox() {
	s.Lightbox = Lightbox{}
}

// NextPhoto advances the viewer, wrapping at the end of the pool.
func (s *Session) NextPhoto() {
	if !s.Lightbox.Open || len(s.Photos) == 0 {
		return
	}
	s.Lightbox.Index = (s.Lightbox.Index + 1) % len(s.Photos)
}

// PrevPhoto steps the viewer back, wrapping at the start of the pool.
func (s *Session) PrevPhoto() {
	if !s.Lightbox.Open || len(s.Photos) == 0 {
		return
	}
	s.Lightbox.Index = (s.Lightbox.Index - 1 + len(s.Photos)) % len(s.Photos)
}

// CurrentPhoto returns the photo under the viewer, if open.
func (s *Session) CurrentPhoto() (UploadedPhoto, bool) {
	if !s.Lightbox.Open || s.Lightbox.Index < 0 || s.Lightbox.Index >= len(s.Photos) {
		return UploadedPhoto{}, false
	}
	return s.Photos[s.Lightbox.Index], true
}
