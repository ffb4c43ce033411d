package viewer

import (
	"context"
	"errors"
	"sync"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/catalog"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/loaner"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/resolve"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/store"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/uex"
	"github.com/rs/zerolog/log"
)

// State is the viewer session lifecycle.
type State string

const (
	StateClosed  State = "closed"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Load stages, reported while the fetch flows run sequentially.
const (
	StageCatalog    = "loading ships"
	StageFiatPrices = "fetching fiat prices"
	StageAUECPrices = "fetching aUEC prices"
	StageLoaners    = "loading loaner matrix"
	StageMerging    = "merging"
)

// ErrNotReady is returned when the merged view is requested before a
// session has loaded.
var ErrNotReady = errors.New("viewer session not loaded")

// Service owns one viewer session: the merged dataset maps live as
// fields here, built on open and discarded on close. The catalog fetch
// is the only load step whose failure is fatal; pricing and loaner
// failures degrade to absent fields.
type Service struct {
	catalogClient *catalog.Client
	uexClient     *uex.Client
	loanerClient  *loaner.Client
	store         *store.Store

	mu      sync.Mutex
	state   State
	stage   string
	loadErr error

	views     []MergedShipView
	viewIndex map[string]*MergedShipView
	favorites map[string]bool
}

// NewService creates a closed viewer service.
func NewService(catalogClient *catalog.Client, uexClient *uex.Client, loanerClient *loaner.Client, s *store.Store) *Service {
	return &Service{
		catalogClient: catalogClient,
		uexClient:     uexClient,
		loanerClient:  loanerClient,
		store:         s,
		state:         StateClosed,
	}
}

// Open loads all four datasets and builds the merged view. Opening an
// already-open session is a no-op.
func (s *Service) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateLoading || s.state == StateReady {
		s.mu.Unlock()
		log.Debug().Msg("viewer already open")
		return nil
	}
	s.state = StateLoading
	s.loadErr = nil
	s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		s.mu.Lock()
		s.state = StateError
		s.loadErr = err
		s.mu.Unlock()
		return err
	}
	return nil
}

// Close discards the session state. Cached dataset entries persist in
// the store until TTL expiry or an explicit clear.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
	s.stage = ""
	s.loadErr = nil
	s.views = nil
	s.viewIndex = nil
	s.favorites = nil
	log.Info().Msg("viewer closed")
}

// Toggle opens a closed session or closes an open one.
func (s *Service) Toggle(ctx context.Context) error {
	s.mu.Lock()
	open := s.state == StateLoading || s.state == StateReady
	s.mu.Unlock()

	if open {
		s.Close()
		return nil
	}
	return s.Open(ctx)
}

// load runs the four fetch flows sequentially so progress stages are
// deterministic, then merges. Only the catalog step can fail the load.
func (s *Service) load(ctx context.Context) error {
	s.setStage(StageCatalog)
	ships, err := s.catalogClient.FetchCatalog(ctx)
	if err != nil {
		log.Error().Err(err).Msg("catalog load failed")
		return err
	}

	s.setStage(StageFiatPrices)
	fiat := make(map[string]uex.Price)
	if rows, err := s.uexClient.FetchFiatPrices(ctx); err != nil {
		log.Warn().Err(err).Msg("fiat prices unavailable")
	} else {
		fiat = uex.BuildPriceMap(rows)
	}

	s.setStage(StageAUECPrices)
	bestAUEC := make(map[string]uex.Listing)
	auecListings := make(map[string][]uex.Listing)
	if rows, err := s.uexClient.FetchAUECPrices(ctx); err != nil {
		log.Warn().Err(err).Msg("aUEC prices unavailable")
	} else {
		bestAUEC, auecListings = uex.BuildAUECMaps(rows)
	}

	s.setStage(StageLoaners)
	loaners, err := s.loanerClient.FetchMatrix(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("loaner matrix unavailable")
		loaners = map[string][]string{}
	}

	s.setStage(StageMerging)
	favorites := loadFavorites(ctx, s.store)
	views := BuildView(ships, fiat, bestAUEC, auecListings, loaners, favorites)

	index := make(map[string]*MergedShipView, len(views))
	for i := range views {
		index[normalizeName(views[i].Name)] = &views[i]
	}

	s.mu.Lock()
	s.views = views
	s.viewIndex = index
	s.favorites = favorites
	s.state = StateReady
	s.stage = ""
	s.mu.Unlock()

	log.Info().Int("ships", len(views)).Msg("viewer session loaded")
	return nil
}

func (s *Service) setStage(stage string) {
	s.mu.Lock()
	s.stage = stage
	s.mu.Unlock()
	log.Info().Str("stage", stage).Msg("load progress")
}

// Status reports the session state, the current load stage, and the
// load error if the last attempt failed.
func (s *Service) Status() (State, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.stage, s.loadErr
}

// Ships returns the merged records passing the filter, sorted by the
// given column.
func (s *Service) Ships(filter Filter, column Column, ascending bool) ([]MergedShipView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	return SortBy(filter.Apply(s.views), column, ascending), nil
}

// VehicleData resolves a free-text ship name to its merged record.
func (s *Service) VehicleData(name string) (*MergedShipView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, false
	}
	view, ok := resolve.Lookup(s.viewIndex, name)
	if !ok {
		return nil, false
	}
	copied := *view
	return &copied, true
}

// Options returns the dropdown values for the current session.
func (s *Service) Options() (FilterOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return FilterOptions{}, ErrNotReady
	}
	return Options(s.views), nil
}

// ToggleFavorite flips the persisted favorite flag for a ship and
// reports the new value.
func (s *Service) ToggleFavorite(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return false, ErrNotReady
	}

	view, ok := s.viewIndex[normalizeName(name)]
	if !ok {
		s.mu.Unlock()
		return false, errors.New("unknown ship: " + name)
	}

	now := !s.favorites[view.Name]
	s.favorites[view.Name] = now
	view.Favorite = now
	favorites := make(map[string]bool, len(s.favorites))
	for k, v := range s.favorites {
		favorites[k] = v
	}
	s.mu.Unlock()

	saveFavorites(ctx, s.store, favorites)
	return now, nil
}

// Settings returns the persisted viewer settings.
func (s *Service) Settings(ctx context.Context) Settings {
	return loadSettings(ctx, s.store)
}

// SaveSettings persists the viewer settings.
func (s *Service) SaveSettings(ctx context.Context, settings Settings) {
	saveSettings(ctx, s.store, settings)
}

// ClearCache drops every cached dataset entry. The current session is
// untouched; the next load refetches everything.
func (s *Service) ClearCache(ctx context.Context) {
	s.catalogClient.ClearCache(ctx)
	s.uexClient.ClearCache(ctx)
	s.loanerClient.ClearCache(ctx)
	log.Info().Msg("dataset caches cleared")
}
