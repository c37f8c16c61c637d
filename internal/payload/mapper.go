package payload

import (
	"fmt"
	"strings"

	"github.com/mmcdole/mediaclubs/internal/domain"
)

// MapSong converts a backend song to a domain song
func MapSong(dto SongDTO) domain.Song {
	return domain.Song{
		ID:     dto.ID,
		Title:  dto.Title,
		Artist: dto.Artist,
		Writer: dto.Writer,
		Length: dto.Length,
		Year:   dto.YearOfCreation.intPtr(),
	}
}

// MapAlbum converts a backend album and its tracks
func MapAlbum(dto AlbumDTO) domain.Album {
	return domain.Album{
		ID:             dto.ID,
		Title:          dto.Title,
		TrackList:      mapSlice(dto.TrackList, MapSong),
		YearOfCreation: dto.YearOfCreation.intPtr(),
	}
}

// MapArt converts a backend art piece
func MapArt(dto ArtDTO) domain.Art {
	return domain.Art{
		ID:            dto.ID,
		Title:         dto.Title,
		Artist:        dto.Artist,
		YearStarted:   dto.YearOfCreation.intPtr(),
		YearCompleted: dto.YearOfCompletion.intPtr(),
		Blurb:         dto.Blurb,
	}
}

// MapBook converts a backend book
func MapBook(dto BookDTO) domain.Book {
	return domain.Book{
		ID:           dto.ID,
		Title:        dto.Title,
		Author:       dto.Author,
		ISBN:         dto.ISBN,
		PageCount:    dto.PageCount,
		ChapterCount: dto.ChapterCount,
		Artist:       dto.Artist,
		Year:         dto.YearOfCreation.intPtr(),
	}
}

// MapMovie converts a backend movie, preferring "length" over the legacy key
func MapMovie(dto MovieDTO) domain.Movie {
	length := dto.Length
	if length == nil {
		length = dto.LegacyLength
	}
	return domain.Movie{
		ID:       dto.ID,
		Title:    dto.Title,
		Year:     dto.YearOfCreation.intPtr(),
		Director: dto.Director,
		Writer:   dto.Writer,
		Length:   length,
	}
}

// mapClub converts a club DTO, rejecting a kind tag that disagrees with T
func mapClub[D any, T domain.Variant[T]](dto ClubDTO[D], mapMedia func(D) T) (domain.Club[T], error) {
	var zero T
	if dto.Kind != "" && !strings.EqualFold(string(dto.Kind), string(zero.Kind())) {
		return domain.Club[T]{}, fmt.Errorf("%w: club %d is tagged %q but holds %s media",
			domain.ErrVariantMismatch, derefInt(dto.ID), string(dto.Kind), zero.Kind())
	}

	club := domain.Club[T]{
		ID:                      derefInt(dto.ID),
		HeadOfClub:              dto.HeadOfClub,
		PreviousMediaOfTheMonth: mapSlice(dto.PreviousMediaOfTheMonth, mapMedia),
		UpcomingMediaOfTheMonth: mapSlice(dto.UpcomingMediaOfTheMonth, mapMedia),
		DiscussionBoardURL:      dto.DiscussionBoardURL,
	}
	if dto.MediaOfMonth != nil {
		pick := mapMedia(*dto.MediaOfMonth)
		club.MediaOfMonth = &pick
	}
	return club, nil
}

func mapClubs[D any, T domain.Variant[T]](dtos []ClubDTO[D], mapMedia func(D) T) ([]domain.Club[T], error) {
	if dtos == nil {
		return nil, nil
	}
	clubs := make([]domain.Club[T], 0, len(dtos))
	for _, dto := range dtos {
		club, err := mapClub(dto, mapMedia)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}
	return clubs, nil
}

// MapMember converts a member payload with all of their clubs
func MapMember(dto MemberDTO) (*domain.Member, error) {
	member := &domain.Member{
		ID:        derefInt(dto.ID),
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
	}

	var err error
	cc := dto.ClubCollection
	if member.Clubs.MovieClubs, err = mapClubs(cc.MovieClubs, MapMovie); err != nil {
		return nil, fmt.Errorf("movie clubs: %w", err)
	}
	if member.Clubs.BookClubs, err = mapClubs(cc.BookClubs, MapBook); err != nil {
		return nil, fmt.Errorf("book clubs: %w", err)
	}
	if member.Clubs.AlbumClubs, err = mapClubs(cc.AlbumClubs, MapAlbum); err != nil {
		return nil, fmt.Errorf("album clubs: %w", err)
	}
	if member.Clubs.ArtClubs, err = mapClubs(cc.ArtClubs, MapArt); err != nil {
		return nil, fmt.Errorf("art clubs: %w", err)
	}
	return member, nil
}

// MapItem converts a kind-tagged item, requiring the payload to match the tag
func MapItem(dto ItemDTO) (domain.MediaItem, error) {
	var item domain.MediaItem
	kind := normalizeKind(dto.Kind)
	switch {
	case kind == domain.KindAlbum && dto.Album != nil:
		item = domain.NewAlbumItem(MapAlbum(*dto.Album))
	case kind == domain.KindSong && dto.Song != nil:
		item = domain.NewSongItem(MapSong(*dto.Song))
	case kind == domain.KindArt && dto.Art != nil:
		item = domain.NewArtItem(MapArt(*dto.Art))
	case kind == domain.KindBook && dto.Book != nil:
		item = domain.NewBookItem(MapBook(*dto.Book))
	case kind == domain.KindMovie && dto.Movie != nil:
		item = domain.NewMovieItem(MapMovie(*dto.Movie))
	default:
		item = domain.MediaItem{Kind: kind}
	}
	if countPayloads(dto) > 1 {
		return domain.MediaItem{}, fmt.Errorf("%w: item tagged %s carries %d payloads",
			domain.ErrVariantMismatch, kind, countPayloads(dto))
	}
	if err := item.Validate(); err != nil {
		return domain.MediaItem{}, err
	}
	return item, nil
}

// normalizeKind maps case variants ("movie", "MOVIE") onto the canonical kind
func normalizeKind(kind domain.MediaKind) domain.MediaKind {
	for _, k := range domain.Kinds {
		if strings.EqualFold(string(kind), string(k)) {
			return k
		}
	}
	return kind
}

func countPayloads(dto ItemDTO) int {
	n := 0
	for _, present := range []bool{dto.Album != nil, dto.Song != nil, dto.Art != nil, dto.Book != nil, dto.Movie != nil} {
		if present {
			n++
		}
	}
	return n
}

// === Domain to wire ===

func toSongDTO(s domain.Song) SongDTO {
	return SongDTO{
		ID:             s.ID,
		Title:          s.Title,
		Artist:         s.Artist,
		Writer:         s.Writer,
		Length:         s.Length,
		YearOfCreation: wireYear(s.Year),
	}
}

func toAlbumDTO(a domain.Album) AlbumDTO {
	return AlbumDTO{
		ID:             a.ID,
		Title:          a.Title,
		TrackList:      mapSlice(a.TrackList, toSongDTO),
		YearOfCreation: wireYear(a.YearOfCreation),
	}
}

func toArtDTO(a domain.Art) ArtDTO {
	return ArtDTO{
		ID:               a.ID,
		Title:            a.Title,
		Artist:           a.Artist,
		YearOfCreation:   wireYear(a.YearStarted),
		YearOfCompletion: wireYear(a.YearCompleted),
		Blurb:            a.Blurb,
	}
}

func toBookDTO(b domain.Book) BookDTO {
	return BookDTO{
		ID:             b.ID,
		ISBN:           b.ISBN,
		Title:          b.Title,
		YearOfCreation: wireYear(b.Year),
		PageCount:      b.PageCount,
		ChapterCount:   b.ChapterCount,
		Artist:         b.Artist,
		Author:         b.Author,
	}
}

func toMovieDTO(m domain.Movie) MovieDTO {
	return MovieDTO{
		ID:             m.ID,
		Title:          m.Title,
		YearOfCreation: wireYear(m.Year),
		Director:       m.Director,
		Writer:         m.Writer,
		Length:         m.Length,
	}
}

func toClubDTO[T domain.Variant[T], D any](c domain.Club[T], toDTO func(T) D) ClubDTO[D] {
	id := c.ID
	dto := ClubDTO[D]{
		ID:                      &id,
		Kind:                    c.Kind(),
		HeadOfClub:              c.HeadOfClub,
		PreviousMediaOfTheMonth: mapSlice(c.PreviousMediaOfTheMonth, toDTO),
		UpcomingMediaOfTheMonth: mapSlice(c.UpcomingMediaOfTheMonth, toDTO),
		DiscussionBoardURL:      c.DiscussionBoardURL,
	}
	if c.MediaOfMonth != nil {
		pick := toDTO(*c.MediaOfMonth)
		dto.MediaOfMonth = &pick
	}
	return dto
}

func toClubDTOs[T domain.Variant[T], D any](clubs []domain.Club[T], toDTO func(T) D) []ClubDTO[D] {
	return mapSlice(clubs, func(c domain.Club[T]) ClubDTO[D] { return toClubDTO(c, toDTO) })
}

func toMemberDTO(m *domain.Member) MemberDTO {
	id := m.ID
	return MemberDTO{
		ID:        &id,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		ClubCollection: ClubCollectionDTO{
			MovieClubs: toClubDTOs(m.Clubs.MovieClubs, toMovieDTO),
			BookClubs:  toClubDTOs(m.Clubs.BookClubs, toBookDTO),
			AlbumClubs: toClubDTOs(m.Clubs.AlbumClubs, toAlbumDTO),
			ArtClubs:   toClubDTOs(m.Clubs.ArtClubs, toArtDTO),
		},
	}
}

func toItemDTO(item domain.MediaItem) ItemDTO {
	dto := ItemDTO{Kind: item.Kind}
	switch {
	case item.Album != nil:
		a := toAlbumDTO(*item.Album)
		dto.Album = &a
	case item.Song != nil:
		s := toSongDTO(*item.Song)
		dto.Song = &s
	case item.Art != nil:
		a := toArtDTO(*item.Art)
		dto.Art = &a
	case item.Book != nil:
		b := toBookDTO(*item.Book)
		dto.Book = &b
	case item.Movie != nil:
		m := toMovieDTO(*item.Movie)
		dto.Movie = &m
	}
	return dto
}

// === helpers ===

// mapSlice converts each element. nil stays nil and empty stays empty, so a
// list the backend sent as [] is not confused with an absent one.
func mapSlice[S, D any](in []S, fn func(S) D) []D {
	if in == nil {
		return nil
	}
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func (y *WireYear) intPtr() *int {
	if y == nil {
		return nil
	}
	n := int(*y)
	return &n
}

func wireYear(year *int) *WireYear {
	if year == nil {
		return nil
	}
	y := WireYear(*year)
	return &y
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
