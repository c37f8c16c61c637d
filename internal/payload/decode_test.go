package payload

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/mediaclubs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestDecodeMember_Fixture(t *testing.T) {
	member, err := DecodeMember(loadFixture(t, "member.json"))
	require.NoError(t, err)

	assert.Equal(t, 42, member.ID)
	assert.Equal(t, "Ada Lovelace", member.DisplayName())
	assert.Equal(t, 4, member.Clubs.Len())

	movieClub := member.Clubs.MovieClubs[0]
	require.NotNil(t, movieClub.MediaOfMonth)
	alien := *movieClub.MediaOfMonth
	assert.Equal(t, 1979, *alien.Year)
	assert.Equal(t, 117.0, *alien.Length, "legacy length key is accepted")
	assert.Equal(t, "Movie: m1 {title: Alien, director: Ridley Scott, writer: Dan O'Bannon}", alien.Describe())
	assert.True(t, alien.IsMediaOfTheMonth(movieClub))
	require.Len(t, movieClub.PreviousMediaOfTheMonth, 1)
	assert.Equal(t, 1972, *movieClub.PreviousMediaOfTheMonth[0].Year)
	assert.Equal(t, "member-7", *movieClub.HeadOfClub)
	assert.Nil(t, movieClub.UpcomingMediaOfTheMonth)

	bookClub := member.Clubs.BookClubs[0]
	assert.Equal(t, 1965, *bookClub.MediaOfMonth.Year)
	assert.Equal(t, 412, *bookClub.MediaOfMonth.PageCount)
	assert.Equal(t, "Katsuhiro Otomo", *bookClub.UpcomingMediaOfTheMonth[0].Artist)

	album := *member.Clubs.AlbumClubs[0].MediaOfMonth
	assert.Equal(t, []string{"Bob", "unknown"}, album.Artists())
	assert.Equal(t, 3.0, album.Length())
	assert.Equal(t, "Album: a1 {title: X, artists: [\"Bob\", \"unknown\"], length: 3.0}", album.Describe())

	art := *member.Clubs.ArtClubs[0].MediaOfMonth
	assert.Equal(t, 0, member.Clubs.ArtClubs[0].ID, "zero is a valid club id")
	assert.Equal(t, 1503, *art.YearStarted)
	assert.Equal(t, 1519, *art.YearCompleted)
}

func TestDecodeMember_RoundTrip(t *testing.T) {
	original, err := DecodeMember(loadFixture(t, "member.json"))
	require.NoError(t, err)

	data, err := EncodeMember(original)
	require.NoError(t, err)

	decoded, err := DecodeMember(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeMember_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		wantMsg string
	}{
		{"malformed json", `{"id": 1,`, ErrDecode, ""},
		{"wrong type", `{"id": "one"}`, ErrDecode, ""},
		{"missing member id", `{"firstName": "Ada"}`, ErrInvalidPayload, "id is required"},
		{
			"missing club id",
			`{"id": 1, "clubCollection": {"movieClubs": [{"headOfClub": "x"}]}}`,
			ErrInvalidPayload, "movieClubs[0].id is required",
		},
		{
			"missing media id",
			`{"id": 1, "clubCollection": {"albumClubs": [{"id": 3, "mediaOfMonth": {"title": "X"}}]}}`,
			ErrInvalidPayload, "mediaOfMonth.id is required",
		},
		{
			"missing track id",
			`{"id": 1, "clubCollection": {"albumClubs": [{"id": 3, "mediaOfMonth": {"id": "a", "trackList": [{"title": "t"}]}}]}}`,
			ErrInvalidPayload, "trackList[0].id is required",
		},
		{
			"bad discussion board url",
			`{"id": 1, "clubCollection": {"artClubs": [{"id": 3, "discussionBoardUrl": "not a url"}]}}`,
			ErrInvalidPayload, "discussionBoardUrl must be a valid URL",
		},
		{
			"negative page count",
			`{"id": 1, "clubCollection": {"bookClubs": [{"id": 3, "mediaOfMonth": {"id": "b", "pageCount": -1}}]}}`,
			ErrInvalidPayload, "pageCount must be greater than or equal to 0",
		},
		{
			"club kind disagrees with slot",
			`{"id": 1, "clubCollection": {"bookClubs": [{"id": 3, "kind": "Movie"}]}}`,
			domain.ErrVariantMismatch, "book clubs",
		},
		{"bad year", `{"id": 1, "clubCollection": {"movieClubs": [{"id": 3, "mediaOfMonth": {"id": "m", "yearOfCreation": "soon"}}]}}`, ErrDecode, "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member, err := DecodeMember([]byte(tt.body))
			assert.Nil(t, member)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestEncodeMember_Nil(t *testing.T) {
	_, err := EncodeMember(nil)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodeClub(t *testing.T) {
	body := `{
		"id": 9,
		"kind": "Song",
		"mediaOfMonth": {"id": "s1", "title": "T", "artist": "A", "writer": "W1"},
		"upcomingMediaOfTheMonth": [{"id": "s2"}, {"id": "s3", "length": 4.5}]
	}`

	club, err := DecodeClub[domain.Song]([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, 9, club.ID)
	assert.Equal(t, domain.KindSong, club.Kind())
	assert.Len(t, club.UpcomingMediaOfTheMonth, 2)

	other := domain.Song{ID: "s1", Title: domain.Ptr("T"), Artist: domain.Ptr("A"), Writer: domain.Ptr("W2")}
	assert.True(t, other.IsMediaOfTheMonth(club))

	_, err = DecodeClub[domain.Movie]([]byte(body))
	assert.ErrorIs(t, err, domain.ErrVariantMismatch)
}

func TestClub_RoundTrip(t *testing.T) {
	t.Run("movie", func(t *testing.T) {
		club := domain.Club[domain.Movie]{
			ID:                      5,
			HeadOfClub:              domain.Ptr("lead"),
			MediaOfMonth:            &domain.Movie{ID: "m1", Title: domain.Ptr("Alien"), Year: domain.Ptr(1979), Length: domain.Ptr(117.0)},
			PreviousMediaOfTheMonth: []domain.Movie{{ID: "m0"}},
			UpcomingMediaOfTheMonth: []domain.Movie{{ID: "m2", Director: domain.Ptr("James Cameron")}},
			DiscussionBoardURL:      domain.Ptr("https://example.com/b/5"),
		}
		data, err := EncodeClub(club)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Equal(t, "Movie", raw["kind"])

		decoded, err := DecodeClub[domain.Movie](data)
		require.NoError(t, err)
		assert.Equal(t, club, decoded)
	})

	t.Run("album", func(t *testing.T) {
		club := domain.Club[domain.Album]{
			ID: 6,
			MediaOfMonth: &domain.Album{ID: "a1", Title: domain.Ptr("X"), TrackList: []domain.Song{
				{ID: "s1", Artist: domain.Ptr("Bob"), Length: domain.Ptr(3.0), Year: domain.Ptr(1999)},
			}},
		}
		data, err := EncodeClub(club)
		require.NoError(t, err)
		decoded, err := DecodeClub[domain.Album](data)
		require.NoError(t, err)
		assert.Equal(t, club, decoded)
	})

	t.Run("art and book", func(t *testing.T) {
		art := domain.Club[domain.Art]{ID: 7, MediaOfMonth: &domain.Art{ID: "p", YearStarted: domain.Ptr(1503), YearCompleted: domain.Ptr(1519)}}
		data, err := EncodeClub(art)
		require.NoError(t, err)
		decodedArt, err := DecodeClub[domain.Art](data)
		require.NoError(t, err)
		assert.Equal(t, art, decodedArt)

		book := domain.Club[domain.Book]{ID: 8, UpcomingMediaOfTheMonth: []domain.Book{{ID: "b", ISBN: domain.Ptr("1"), ChapterCount: domain.Ptr(3)}}}
		data, err = EncodeClub(book)
		require.NoError(t, err)
		decodedBook, err := DecodeClub[domain.Book](data)
		require.NoError(t, err)
		assert.Equal(t, book, decodedBook)
	})
}

func TestClub_RoundTripKeepsEmptyLists(t *testing.T) {
	club := domain.Club[domain.Movie]{
		ID:                      1,
		PreviousMediaOfTheMonth: []domain.Movie{},
	}
	data, err := EncodeClub(club)
	require.NoError(t, err)

	decoded, err := DecodeClub[domain.Movie](data)
	require.NoError(t, err)
	assert.Equal(t, club, decoded)
	assert.NotNil(t, decoded.PreviousMediaOfTheMonth)
	assert.Nil(t, decoded.UpcomingMediaOfTheMonth)

	album := domain.Club[domain.Album]{ID: 2, MediaOfMonth: &domain.Album{ID: "a1", TrackList: []domain.Song{}}}
	data, err = EncodeClub(album)
	require.NoError(t, err)
	decodedAlbum, err := DecodeClub[domain.Album](data)
	require.NoError(t, err)
	assert.Equal(t, album, decodedAlbum)
}

func TestMember_RoundTripKeepsEmptyLists(t *testing.T) {
	member := &domain.Member{ID: 3, Clubs: domain.ClubCollection{MovieClubs: []domain.Club[domain.Movie]{}}}
	data, err := EncodeMember(member)
	require.NoError(t, err)

	decoded, err := DecodeMember(data)
	require.NoError(t, err)
	assert.Equal(t, member, decoded)
}

func TestEncodeItem_MissingID(t *testing.T) {
	_, err := EncodeItem(domain.NewSongItem(domain.Song{Title: domain.Ptr("Untitled")}))
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestDecodeItem(t *testing.T) {
	item, err := DecodeItem([]byte(`{"kind": "book", "book": {"id": "b1", "title": "Dune", "author": "Frank Herbert"}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.KindBook, item.Kind)
	assert.Equal(t, "Book: b1 {title: Dune, author: Frank Herbert, isbn: }", item.Describe())

	_, err = DecodeItem([]byte(`{"kind": "Book", "movie": {"id": "m1"}}`))
	assert.ErrorIs(t, err, domain.ErrVariantMismatch)

	_, err = DecodeItem([]byte(`{"kind": "Book", "book": {"id": "b1"}, "movie": {"id": "m1"}}`))
	assert.ErrorIs(t, err, domain.ErrVariantMismatch)

	_, err = DecodeItem([]byte(`{"kind": "Podcast", "book": {"id": "b1"}}`))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = DecodeItem([]byte(`{"book": {"id": "b1"}}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestItems_RoundTrip(t *testing.T) {
	items := []domain.MediaItem{
		domain.NewAlbumItem(domain.Album{ID: "a1", TrackList: []domain.Song{{ID: "s1"}, {ID: "s2", Length: domain.Ptr(2.5)}}}),
		domain.NewSongItem(domain.Song{ID: "s1", Title: domain.Ptr("T"), Artist: domain.Ptr("A"), Writer: domain.Ptr("W")}),
		domain.NewArtItem(domain.Art{ID: "p1", Blurb: domain.Ptr("b")}),
		domain.NewBookItem(domain.Book{ID: "b1", Author: domain.Ptr("A"), Year: domain.Ptr(1965)}),
		domain.NewMovieItem(domain.Movie{ID: "m1", Year: domain.Ptr(1979), Writer: domain.Ptr("W")}),
	}

	encoded := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		data, err := EncodeItem(item)
		require.NoError(t, err)

		single, err := DecodeItem(data)
		require.NoError(t, err)
		equal, err := item.Equal(single)
		require.NoError(t, err)
		assert.True(t, equal, item.Describe())
		assert.Equal(t, item, single)

		encoded = append(encoded, data)
	}

	array, err := json.Marshal(encoded)
	require.NoError(t, err)
	decoded, err := DecodeItems(array)
	require.NoError(t, err)
	assert.Equal(t, items, decoded)

	_, err = EncodeItem(domain.MediaItem{Kind: domain.KindSong})
	assert.ErrorIs(t, err, domain.ErrVariantMismatch)

	_, err = DecodeItems([]byte(`[{"kind": "Song", "song": {"id": "s"}}, {"kind": "Song"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
}

func TestWireYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{`1999`, 1999, false},
		{`"1999"`, 1999, false},
		{`" 2001 "`, 2001, false},
		{`"1979-05-25"`, 1979, false},
		{`"1979-05-25T10:00:00Z"`, 1979, false},
		{`"1979-05-25T10:00:00.123+02:00"`, 1979, false},
		{`"someday"`, 0, true},
		{`1999.5`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var y WireYear
			err := json.Unmarshal([]byte(tt.in), &y)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, WireYear(tt.want), y)
		})
	}

	var dto SongDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id": "s", "yearOfCreation": null}`), &dto))
	assert.Nil(t, dto.YearOfCreation)
}
