package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/anonto42/publication-scheduler/backend/internal/apperrors"
	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"github.com/anonto42/publication-scheduler/backend/internal/repositories"
	"github.com/anonto42/publication-scheduler/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPair(t *testing.T, f *fixture) (*models.Media, *models.Post) {
	t.Helper()

	ctx := context.Background()
	media, err := f.medias.CreateMedia(ctx, "X", "bob")
	require.NoError(t, err)
	post, err := f.posts.CreatePost(ctx, "t", "u", nil)
	require.NoError(t, err)
	return media, post
}

func TestPublicationService_CreateMissingReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	_, err := f.publications.CreatePublication(ctx, 999, post.ID, fixedNow.Add(time.Hour))
	assert.EqualError(t, err, "The media with id '999' does not exist")

	_, err = f.publications.CreatePublication(ctx, media.ID, 999, fixedNow.Add(time.Hour))
	assert.EqualError(t, err, "The post with id '999' does not exist")

	// media is checked first
	_, err = f.publications.CreatePublication(ctx, 998, 999, fixedNow.Add(time.Hour))
	assert.EqualError(t, err, "The media with id '998' does not exist")

	publications, err := f.publications.FindAllPublications(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, publications)
}

func TestPublicationService_CreateRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	date := time.Date(2024, 7, 1, 9, 30, 0, 123456789, time.FixedZone("CEST", 2*3600))
	created, err := f.publications.CreatePublication(ctx, media.ID, post.ID, date)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, created.Date.Location())
	assert.True(t, created.Date.Equal(date.Truncate(time.Millisecond)))

	got, err := f.publications.FindOnePublication(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}

func TestPublicationService_PastDateThenUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	yesterday := fixedNow.Add(-24 * time.Hour)
	publication, err := f.publications.CreatePublication(ctx, media.ID, post.ID, yesterday)
	require.NoError(t, err)

	// the new date does not matter, the stored one does
	_, err = f.publications.UpdatePublication(ctx, publication.ID, media.ID, post.ID, fixedNow.Add(48*time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyElapsed)
	assert.EqualError(t, err, "The publication has already been done")

	got, err := f.publications.FindOnePublication(ctx, publication.ID)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(yesterday))
}

func TestPublicationService_UpdateScheduled(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)
	other, err := f.posts.CreatePost(ctx, "t2", "u2", nil)
	require.NoError(t, err)

	publication, err := f.publications.CreatePublication(ctx, media.ID, post.ID, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	newDate := fixedNow.Add(-time.Hour)
	updated, err := f.publications.UpdatePublication(ctx, publication.ID, media.ID, other.ID, newDate)
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.PostID)

	got, err := f.publications.FindOnePublication(ctx, publication.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.PostID)
	assert.True(t, got.Date.Equal(newDate))

	// moved into the past, so now frozen
	_, err = f.publications.UpdatePublication(ctx, publication.ID, media.ID, post.ID, fixedNow.Add(time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyElapsed)
}

func TestPublicationService_UpdateCheckOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	elapsed, err := f.publications.CreatePublication(ctx, media.ID, post.ID, fixedNow.Add(-time.Hour))
	require.NoError(t, err)

	_, err = f.publications.UpdatePublication(ctx, 999, 998, 997, fixedNow)
	assert.EqualError(t, err, "The publication with id '999' does not exist")

	_, err = f.publications.UpdatePublication(ctx, elapsed.ID, 998, 997, fixedNow)
	assert.EqualError(t, err, "The media with id '998' does not exist")

	_, err = f.publications.UpdatePublication(ctx, elapsed.ID, media.ID, 997, fixedNow)
	assert.EqualError(t, err, "The post with id '997' does not exist")

	_, err = f.publications.UpdatePublication(ctx, elapsed.ID, media.ID, post.ID, fixedNow)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyElapsed)
}

func TestPublicationService_DateEqualToNowIsScheduled(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	publication, err := f.publications.CreatePublication(ctx, media.ID, post.ID, fixedNow)
	require.NoError(t, err)

	_, err = f.publications.UpdatePublication(ctx, publication.ID, media.ID, post.ID, fixedNow.Add(time.Hour))
	assert.NoError(t, err)
}

func TestPublicationService_FindAllFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	dates := []time.Time{
		fixedNow.Add(-48 * time.Hour),
		fixedNow.Add(-time.Hour),
		fixedNow,
		fixedNow.Add(time.Hour),
	}
	ids := make([]uint, len(dates))
	for i, d := range dates {
		p, err := f.publications.CreatePublication(ctx, media.ID, post.ID, d)
		require.NoError(t, err)
		ids[i] = p.ID
	}

	idsOf := func(publications []models.Publication) []uint {
		out := make([]uint, 0, len(publications))
		for _, p := range publications {
			out = append(out, p.ID)
		}
		return out
	}
	yes, no := true, false
	after := fixedNow.Add(-time.Hour)

	cases := []struct {
		name      string
		published *bool
		after     *time.Time
		want      []uint
	}{
		{"no filter", nil, nil, ids},
		{"published false imposes nothing", &no, nil, ids},
		{"published strictly before now", &yes, nil, ids[:2]},
		{"after is inclusive", nil, &after, ids[1:]},
		{"both intersect", &yes, &after, ids[1:2]},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			publications, err := f.publications.FindAllPublications(ctx, tc.published, tc.after)
			require.NoError(t, err)
			assert.Equal(t, tc.want, idsOf(publications))
		})
	}
}

func TestPublicationService_RemoveIsUnconditional(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	elapsed, err := f.publications.CreatePublication(ctx, media.ID, post.ID, fixedNow.Add(-time.Hour))
	require.NoError(t, err)

	require.NoError(t, f.publications.RemovePublication(ctx, elapsed.ID))

	err = f.publications.RemovePublication(ctx, elapsed.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPublicationService_ReferenceLookups(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	found, err := f.publications.FindPublicationByMediaID(ctx, media.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = f.publications.CreatePublication(ctx, media.ID, post.ID, fixedNow)
	require.NoError(t, err)

	found, err = f.publications.FindPublicationByMediaID(ctx, media.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = f.publications.FindPublicationByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = f.publications.FindPublicationByPostID(ctx, post.ID+100)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPublicationService_CreateReferenceDeletedBeforeWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	race := &deletedAfterCheck{}
	svc := NewPublicationService(f.store, race, race, WithClock(func() time.Time { return fixedNow }))

	_, err := svc.CreatePublication(ctx, 77, 88, fixedNow.Add(time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualError(t, err, "The media with id '77' does not exist")
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))

	publications, err := svc.FindAllPublications(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, publications)
}

func TestPublicationService_UpdateReferenceDeletedBeforeWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	media, post := seedPair(t, f)

	publication, err := f.publications.CreatePublication(ctx, media.ID, post.ID, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	svc := NewPublicationService(f.store, f.medias, &deletedAfterCheck{}, WithClock(func() time.Time { return fixedNow }))
	_, err = svc.UpdatePublication(ctx, publication.ID, media.ID, 55, fixedNow.Add(2*time.Hour))
	assert.EqualError(t, err, "The post with id '55' does not exist")

	got, err := svc.FindOnePublication(ctx, publication.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.PostID)
}

func TestPublicationService_ForeignKeyOnSQLiteIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, db)

	references := NewPublicationReferences(repositories.NewPostgresPublicationRepository(db))
	posts := NewPostService(repositories.NewPostgresPostRepository(db), references)
	svc := NewPublicationService(repositories.NewPostgresPublicationRepository(db), &deletedAfterCheck{}, posts)

	_, err := svc.CreatePublication(ctx, 77, post.ID, time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualError(t, err, "The media with id '77' does not exist")
}
