package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmcdole/mediaclubs/internal/domain"
)

var (
	// ErrDecode indicates the payload is not well-formed JSON of the expected shape
	ErrDecode = errors.New("malformed payload")

	// ErrInvalidPayload indicates a well-formed payload missing identity fields
	ErrInvalidPayload = errors.New("invalid payload")
)

// DecodeMember decodes and validates a member payload
func DecodeMember(data []byte) (*domain.Member, error) {
	var dto MemberDTO
	if err := unmarshal(data, &dto); err != nil {
		return nil, err
	}
	if err := validateStruct(dto); err != nil {
		return nil, fmt.Errorf("member: %w", err)
	}
	return MapMember(dto)
}

// EncodeMember encodes a member in the backend wire shape
func EncodeMember(m *domain.Member) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil member", ErrInvalidPayload)
	}
	return json.Marshal(toMemberDTO(m))
}

// DecodeClub decodes a standalone club payload whose picks are of variant T
func DecodeClub[T domain.Variant[T]](data []byte) (domain.Club[T], error) {
	var (
		club any
		err  error
		zero T
	)
	switch zero.Kind() {
	case domain.KindMovie:
		club, err = decodeClub(data, MapMovie)
	case domain.KindBook:
		club, err = decodeClub(data, MapBook)
	case domain.KindAlbum:
		club, err = decodeClub(data, MapAlbum)
	case domain.KindSong:
		club, err = decodeClub(data, MapSong)
	default:
		club, err = decodeClub(data, MapArt)
	}
	if err != nil {
		return domain.Club[T]{}, err
	}
	return club.(domain.Club[T]), nil
}

func decodeClub[D any, T domain.Variant[T]](data []byte, mapMedia func(D) T) (domain.Club[T], error) {
	var dto ClubDTO[D]
	if err := unmarshal(data, &dto); err != nil {
		return domain.Club[T]{}, err
	}
	if err := validateStruct(dto); err != nil {
		return domain.Club[T]{}, fmt.Errorf("club: %w", err)
	}
	return mapClub(dto, mapMedia)
}

// EncodeClub encodes a club in the backend wire shape, tagged with its kind
func EncodeClub[T domain.Variant[T]](club domain.Club[T]) ([]byte, error) {
	var dto any
	switch c := any(club).(type) {
	case domain.Club[domain.Movie]:
		dto = toClubDTO(c, toMovieDTO)
	case domain.Club[domain.Book]:
		dto = toClubDTO(c, toBookDTO)
	case domain.Club[domain.Album]:
		dto = toClubDTO(c, toAlbumDTO)
	case domain.Club[domain.Song]:
		dto = toClubDTO(c, toSongDTO)
	case domain.Club[domain.Art]:
		dto = toClubDTO(c, toArtDTO)
	}
	return json.Marshal(dto)
}

// DecodeItem decodes a single kind-tagged media item
func DecodeItem(data []byte) (domain.MediaItem, error) {
	var dto ItemDTO
	if err := unmarshal(data, &dto); err != nil {
		return domain.MediaItem{}, err
	}
	return decodeItemDTO(dto)
}

// DecodeItems decodes a JSON array of kind-tagged media items
func DecodeItems(data []byte) ([]domain.MediaItem, error) {
	var dtos []ItemDTO
	if err := unmarshal(data, &dtos); err != nil {
		return nil, err
	}
	items := make([]domain.MediaItem, 0, len(dtos))
	for i, dto := range dtos {
		item, err := decodeItemDTO(dto)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItemDTO(dto ItemDTO) (domain.MediaItem, error) {
	if err := validateStruct(dto); err != nil {
		return domain.MediaItem{}, fmt.Errorf("item: %w", err)
	}
	return MapItem(dto)
}

// EncodeItem encodes a kind-tagged media item
func EncodeItem(item domain.MediaItem) ([]byte, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(toItemDTO(item))
}

func unmarshal(data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
