package viewer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/store"
	"github.com/rs/zerolog/log"
)

// Settings is the persisted viewer state: last search text, selected
// filters, sort column/direction, and display currency.
type Settings struct {
	SearchText    string `json:"search_text"`
	Manufacturer  string `json:"manufacturer"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Currency      string `json:"currency"`
	FavoritesOnly bool   `json:"favorites_only"`
	SortColumn    Column `json:"sort_column"`
	SortAscending bool   `json:"sort_ascending"`
}

// DefaultSettings is the state of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Currency:      "USD",
		SortColumn:    ColName,
		SortAscending: true,
	}
}

func loadSettings(ctx context.Context, s *store.Store) Settings {
	settings := DefaultSettings()

	raw, _, ok, err := s.Get(ctx, store.KeySettings)
	if err != nil {
		log.Warn().Err(err).Msg("loading settings failed")
		return settings
	}
	if !ok {
		return settings
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		log.Warn().Err(err).Msg("settings blob unreadable, using defaults")
		return DefaultSettings()
	}
	return settings
}

func saveSettings(ctx context.Context, s *store.Store, settings Settings) {
	raw, err := json.Marshal(settings)
	if err != nil {
		log.Warn().Err(err).Msg("serializing settings failed")
		return
	}
	if err := s.Put(ctx, store.KeySettings, string(raw), time.Now()); err != nil {
		log.Warn().Err(err).Msg("saving settings failed")
	}
}

func loadFavorites(ctx context.Context, s *store.Store) map[string]bool {
	favorites := make(map[string]bool)

	raw, _, ok, err := s.Get(ctx, store.KeyFavorites)
	if err != nil {
		log.Warn().Err(err).Msg("loading favorites failed")
		return favorites
	}
	if !ok {
		return favorites
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		log.Warn().Err(err).Msg("favorites blob unreadable")
		return favorites
	}
	for _, name := range names {
		favorites[name] = true
	}
	return favorites
}

func saveFavorites(ctx context.Context, s *store.Store, favorites map[string]bool) {
	names := make([]string, 0, len(favorites))
	for name, on := range favorites {
		if on {
			names = append(names, name)
		}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		log.Warn().Err(err).Msg("serializing favorites failed")
		return
	}
	if err := s.Put(ctx, store.KeyFavorites, string(raw), time.Now()); err != nil {
		log.Warn().Err(err).Msg("saving favorites failed")
	}
}
