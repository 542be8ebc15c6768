// Package session keeps the ordered image list of each user session.
//
// Types:
//   - Session: Tracks uploaded images, their order, the generated PDF and
//     the generation status.
//   - SessionManager: Manages all active sessions.
//
// Sessions live in memory only; expired sessions are dropped by Expire.
package session

import (
	"errors"
	"sync"
	"time"

	"go-imagepdf/internal/utils"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrInvalidOrder  = errors.New("order must list every image exactly once")
	ErrInvalidIndex  = errors.New("position out of range")
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Image is an uploaded image.
type Image struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	AddedAt     time.Time `json:"addedAt"`
	Data        []byte    `json:"-"`
}

// Output is a generated PDF.
type Output struct {
	ID        string
	FileName  string
	Data      []byte
	CreatedAt time.Time
}

type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	images []*Image
	output *Output
	status Status
	// revision counts image list changes; genRevision is the revision
	// the running generation started from.
	revision    uint64
	genRevision uint64
}

type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) CreateSession() *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := &Session{
		ID:        utils.GenerateUUID(),
		CreatedAt: time.Now(),
		status:    StatusIdle,
	}
	sm.sessions[session.ID] = session
	return session
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, exists := sm.sessions[id]
	return session, exists
}

func (sm *SessionManager) DeleteSession(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, id)
}

// Expire drops sessions older than maxAge and returns how many were
// removed.
func (sm *SessionManager) Expire(maxAge time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	n := 0
	for id, session := range sm.sessions {
		if time.Since(session.CreatedAt) > maxAge {
			delete(sm.sessions, id)
			n++
		}
	}
	return n
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// AddImage appends img and assigns it an ID. Adding an image invalidates
// a previously generated document.
func (s *Session) AddImage(img *Image) *Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	img.ID = utils.GenerateUUID()
	img.AddedAt = time.Now()
	s.images = append(s.images, img)
	s.changed()
	return img
}

func (s *Session) RemoveImage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, img := range s.images {
		if img.ID == id {
			s.images = append(s.images[:i:i], s.images[i+1:]...)
			s.changed()
			return nil
		}
	}
	return ErrImageNotFound
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = nil
	s.changed()
}

// Images returns a copy of the image list in page order.
func (s *Session) Images() []*Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Image(nil), s.images...)
}

// Reorder sets the page order. ids must be a permutation of the current
// image IDs.
func (s *Session) Reorder(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) != len(s.images) {
		return ErrInvalidOrder
	}
	byID := make(map[string]*Image, len(s.images))
	for _, img := range s.images {
		byID[img.ID] = img
	}
	ordered := make([]*Image, 0, len(ids))
	for _, id := range ids {
		img, ok := byID[id]
		if !ok {
			return ErrInvalidOrder
		}
		delete(byID, id)
		ordered = append(ordered, img)
	}
	s.images = ordered
	s.changed()
	return nil
}

// Move moves the image with the given id to index to, shifting the images
// in between.
func (s *Session) Move(id string, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := -1
	for i, img := range s.images {
		if img.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return ErrImageNotFound
	}
	if to < 0 || to >= len(s.images) {
		return ErrInvalidIndex
	}
	img := s.images[from]
	if from < to {
		copy(s.images[from:to], s.images[from+1:to+1])
	} else {
		copy(s.images[to+1:from+1], s.images[to:from])
	}
	s.images[to] = img
	s.changed()
	return nil
}

// BeginGenerate moves the session to StatusInProgress and returns the
// image list to render. It fails when a generation is already running.
func (s *Session) BeginGenerate() ([]*Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInProgress {
		return nil, false
	}
	s.status = StatusInProgress
	s.genRevision = s.revision
	return append([]*Image(nil), s.images...), true
}

// FinishGenerate records the outcome of a generation started with
// BeginGenerate. out is kept only when the image list did not change in
// the meantime; otherwise, or when out is nil, the session returns to
// StatusIdle and FinishGenerate reports false.
func (s *Session) FinishGenerate(out *Output) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if out == nil || s.revision != s.genRevision {
		s.status = StatusIdle
		return false
	}
	s.output = out
	s.status = StatusDone
	return true
}

func (s *Session) Output() (*Output, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output, s.output != nil
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// changed invalidates the generated document after an image list change.
func (s *Session) changed() {
	s.revision++
	s.output = nil
	if s.status == StatusDone {
		s.status = StatusIdle
	}
}
