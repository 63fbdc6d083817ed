package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/publication-scheduler/backend/internal/apperrors"
	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/repositories"
)

// fakeStore is an in-memory implementation of the three repositories.
type fakeStore struct {
	mu           sync.Mutex
	nextID       uint
	medias       map[uint]models.Media
	posts        map[uint]models.Post
	publications map[uint]models.Publication

	// failWith, when set, is returned by every call
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		medias:       make(map[uint]models.Media),
		posts:        make(map[uint]models.Post),
		publications: make(map[uint]models.Publication),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *fakeStore) CreateMedia(_ context.Context, media *models.Media) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	for _, m := range s.medias {
		if m.Title == media.Title && m.Username == media.Username {
			return repositories.ErrDuplicateKey
		}
	}
	media.ID = s.id()
	s.medias[media.ID] = *media
	return nil
}

func (s *fakeStore) GetMedias(_ context.Context) ([]models.Media, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	medias := make([]models.Media, 0, len(s.medias))
	for _, id := range sortedKeys(s.medias) {
		medias = append(medias, s.medias[id])
	}
	return medias, nil
}

func (s *fakeStore) GetMediaByID(_ context.Context, id uint) (*models.Media, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	m, ok := s.medias[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &m, nil
}

func (s *fakeStore) GetMediaByTitleAndUsername(_ context.Context, title, username string) (*models.Media, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, m := range s.medias {
		if m.Title == title && m.Username == username {
			return &m, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (s *fakeStore) UpdateMedia(_ context.Context, media *models.Media) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.medias[media.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	s.medias[media.ID] = *media
	return nil
}

func (s *fakeStore) DeleteMedia(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.medias[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	for _, p := range s.publications {
		if p.MediaID == id {
			return repositories.ErrReferenced
		}
	}
	delete(s.medias, id)
	return nil
}

func (s *fakeStore) DeleteAllMedias(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medias = make(map[uint]models.Media)
	return s.failWith
}

func (s *fakeStore) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	post.ID = s.id()
	s.posts[post.ID] = *post
	return nil
}

func (s *fakeStore) GetPosts(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	posts := make([]models.Post, 0, len(s.posts))
	for _, id := range sortedKeys(s.posts) {
		posts = append(posts, s.posts[id])
	}
	return posts, nil
}

func (s *fakeStore) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &p, nil
}

func (s *fakeStore) UpdatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.posts[post.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	s.posts[post.ID] = *post
	return nil
}

func (s *fakeStore) DeletePost(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.posts[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	for _, p := range s.publications {
		if p.PostID == id {
			return repositories.ErrReferenced
		}
	}
	delete(s.posts, id)
	return nil
}

func (s *fakeStore) DeleteAllPosts(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = make(map[uint]models.Post)
	return s.failWith
}

func (s *fakeStore) CreatePublication(_ context.Context, publication *models.Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if err := s.checkReferences(publication); err != nil {
		return err
	}
	publication.ID = s.id()
	s.publications[publication.ID] = *publication
	return nil
}

// checkReferences behaves like the SQL foreign keys on publications
func (s *fakeStore) checkReferences(publication *models.Publication) error {
	if _, ok := s.medias[publication.MediaID]; !ok {
		return fmt.Errorf("%w: media %d", repositories.ErrForeignKey, publication.MediaID)
	}
	if _, ok := s.posts[publication.PostID]; !ok {
		return fmt.Errorf("%w: post %d", repositories.ErrForeignKey, publication.PostID)
	}
	return nil
}

func (s *fakeStore) GetPublications(_ context.Context, filter models.PublicationFilter) ([]models.Publication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	publications := make([]models.Publication, 0, len(s.publications))
	for _, id := range sortedKeys(s.publications) {
		p := s.publications[id]
		if filter.Before != nil && !p.Date.Before(*filter.Before) {
			continue
		}
		if filter.After != nil && p.Date.Before(*filter.After) {
			continue
		}
		publications = append(publications, p)
	}
	return publications, nil
}

func (s *fakeStore) GetPublicationByID(_ context.Context, id uint) (*models.Publication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	p, ok := s.publications[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &p, nil
}

func (s *fakeStore) UpdatePublication(_ context.Context, publication *models.Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.publications[publication.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	if err := s.checkReferences(publication); err != nil {
		return err
	}
	s.publications[publication.ID] = *publication
	return nil
}

func (s *fakeStore) DeletePublication(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.publications[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(s.publications, id)
	return nil
}

func (s *fakeStore) DeleteAllPublications(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publications = make(map[uint]models.Publication)
	return s.failWith
}

func (s *fakeStore) ExistsByMediaID(_ context.Context, mediaID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	for _, p := range s.publications {
		if p.MediaID == mediaID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) ExistsByPostID(_ context.Context, postID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	for _, p := range s.publications {
		if p.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

var (
	_ repositories.MediaRepository       = (*fakeStore)(nil)
	_ repositories.PostRepository        = (*fakeStore)(nil)
	_ repositories.PublicationRepository = (*fakeStore)(nil)
)

// deletedAfterCheck reports a media and a post as existing on the first lookup
// only, as if another request deleted them right after.
type deletedAfterCheck struct {
	mediaCalls int
	postCalls  int
}

func (d *deletedAfterCheck) VerifyMediaExist(_ context.Context, id uint) (*models.Media, error) {
	d.mediaCalls++
	if d.mediaCalls > 1 {
		return nil, apperrors.MediaNotFound(id)
	}
	return &models.Media{ID: id}, nil
}

func (d *deletedAfterCheck) VerifyPostExist(_ context.Context, id uint) (*models.Post, error) {
	d.postCalls++
	if d.postCalls > 1 {
		return nil, apperrors.PostNotFound(id)
	}
	return &models.Post{ID: id}, nil
}

// fixedNow is the clock every service test runs against
var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store        *fakeStore
	medias       *MediaService
	posts        *PostService
	publications *PublicationService
}

// newFixture wires the services the same way the router does
func newFixture() *fixture {
	store := newFakeStore()
	references := NewPublicationReferences(store)
	medias := NewMediaService(store, references)
	posts := NewPostService(store, references)
	publications := NewPublicationService(store, medias, posts, WithClock(func() time.Time { return fixedNow }))
	return &fixture{store: store, medias: medias, posts: posts, publications: publications}
}
