package favorite

import (
	"recipe-book/internal/logging"
	"recipe-book/internal/metrics"
)

// SessionKey is the session entry holding the favorite recipe ids.
const SessionKey = "favorites"

type (
	// Session is the part of a fiber session the favorites need.
	Session interface {
		ID() string
		Get(key string) interface{}
		Set(key string, val interface{})
		Save() error
	}

	FavoriteService interface {
		Add(recipeID uint) error
		Remove(recipeID uint) error
		IDs() []uint
	}

	// favoriteService keeps its own copy of the list: a fiber session must not
	// be read after Save.
	favoriteService struct {
		session Session
		ids     []uint
	}
)

// NewFavoriteService binds the favorites to a session. A missing entry, or one of
// an unexpected type, is replaced with an empty list.
func NewFavoriteService(session Session) FavoriteService {
	s := &favoriteService{session: session}

	switch v := session.Get(SessionKey).(type) {
	case []uint:
		s.ids = append([]uint{}, v...)
		return s
	case []int:
		s.ids = make([]uint, 0, len(v))
		for _, id := range v {
			if id > 0 {
				s.ids = append(s.ids, uint(id))
			}
		}
	case nil:
		s.ids = []uint{}
	default:
		logging.Warn().Str("session_id", session.ID()).Msgf("resetting favorites of type %T", v)
		s.ids = []uint{}
	}

	session.Set(SessionKey, s.snapshot())
	return s
}

func (s *favoriteService) Add(recipeID uint) error {
	for _, id := range s.ids {
		if id == recipeID {
			return nil
		}
	}

	s.ids = append(s.ids, recipeID)
	metrics.FavoriteOperations.WithLabelValues("add").Inc()
	return s.save()
}

// Remove is a no-op for ids that are not in the list and then skips the save.
func (s *favoriteService) Remove(recipeID uint) error {
	for i, id := range s.ids {
		if id != recipeID {
			continue
		}

		s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
		metrics.FavoriteOperations.WithLabelValues("remove").Inc()
		return s.save()
	}
	return nil
}

// IDs returns a copy of the favorite ids in insertion order.
func (s *favoriteService) IDs() []uint {
	return s.snapshot()
}

func (s *favoriteService) save() error {
	s.session.Set(SessionKey, s.snapshot())
	return s.session.Save()
}

func (s *favoriteService) snapshot() []uint {
	res := make([]uint, len(s.ids))
	copy(res, s.ids)
	return res
}
