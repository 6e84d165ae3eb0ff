package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weather-screen/internal/domain/entity"
	"weather-screen/internal/domain/gateway/api"
	"weather-screen/internal/domain/model"
	"weather-screen/internal/domain/model/external"
	"weather-screen/pkg/log"
	"weather-screen/pkg/msg"
)

const defaultSubscriberBuffer = 4

var errEmptyResponse = errors.New("empty response from weather API")

// Config holds the picker's cities and the city shown at start
type Config struct {
	Cities           []string
	DefaultCity      string
	SubscriberBuffer int
}

type screenUseCase struct {
	gateway          api.WeatherGateway
	cities           entity.CitySet
	defaultCity      entity.City
	subscriberBuffer int
	newFetchID       func() string

	root       context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
	startOnce  sync.Once

	mu          sync.RWMutex
	selected    entity.City
	state       model.ViewState
	fetchID     string
	cancelFetch context.CancelFunc
	subscribers map[int]chan model.ViewState
	nextSubID   int
	closed      bool
}

// NewScreenUseCase creates the screen controller. The state is Loading for the default city until Start runs.
func NewScreenUseCase(gateway api.WeatherGateway, config Config) (UseCase, error) {
	if gateway == nil {
		return nil, errors.New("weather gateway is required")
	}

	cities := entity.NewCitySet(config.Cities...)
	if len(cities) == 0 {
		return nil, errors.New("at least one city is required")
	}

	defaultCity := entity.City(strings.TrimSpace(config.DefaultCity))
	if defaultCity == "" {
		defaultCity = cities[0]
	}
	if !cities.Contains(defaultCity) {
		return nil, fmt.Errorf("default city %q is not in the city list", defaultCity)
	}

	buffer := config.SubscriberBuffer
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}

	root, cancel := context.WithCancel(context.Background())

	return &screenUseCase{
		gateway:          gateway,
		cities:           cities,
		defaultCity:      defaultCity,
		subscriberBuffer: buffer,
		newFetchID:       uuid.NewString,
		root:             root,
		rootCancel:       cancel,
		selected:         defaultCity,
		state:            model.Loading(defaultCity, ""),
		subscribers:      make(map[int]chan model.ViewState),
	}, nil
}

// Start fetches the default city and closes the screen once ctx is done. Only the first call has an effect.
func (uc *screenUseCase) Start(ctx context.Context) {
	uc.startOnce.Do(func() {
		context.AfterFunc(ctx, uc.Close)

		if _, err := uc.SelectCity(uc.defaultCity); err != nil {
			log.Error("Failed to start weather screen", zap.String("city", uc.defaultCity.String()), zap.Error(err))
		}
	})
}

// SelectCity switches to city, supersedes any in-flight fetch and returns the Loading state
func (uc *screenUseCase) SelectCity(city entity.City) (model.ViewState, error) {
	city = entity.City(strings.TrimSpace(city.String()))
	if !uc.cities.Contains(city) {
		return uc.State(), fmt.Errorf("%w: %s", ErrUnknownCity, city)
	}

	uc.mu.Lock()
	if uc.closed {
		state := uc.state.Clone()
		uc.mu.Unlock()
		return state, ErrClosed
	}

	if uc.cancelFetch != nil {
		uc.cancelFetch()
	}

	fetchID := uc.newFetchID()
	ctx, cancel := context.WithCancel(uc.root)

	uc.selected = city
	uc.fetchID = fetchID
	uc.cancelFetch = cancel
	uc.setStateLocked(model.Loading(city, fetchID))
	state := uc.state.Clone()

	uc.wg.Add(1)
	uc.mu.Unlock()

	log.Info(msg.GetMessage("screen.fetch.start", city, fetchID),
		zap.String("city", city.String()),
		zap.String("fetch_id", fetchID))

	go uc.fetch(ctx, city, fetchID)

	return state, nil
}

func (uc *screenUseCase) fetch(ctx context.Context, city entity.City, fetchID string) {
	defer uc.wg.Done()

	raw, err := uc.gateway.GetWeatherData(ctx, city)
	uc.onFetchResult(city, fetchID, raw, err)
}

// onFetchResult applies a finished fetch unless a later selection superseded it
func (uc *screenUseCase) onFetchResult(city entity.City, fetchID string, raw *external.CurrentWeatherResponse, err error) {
	if err == nil && raw == nil {
		err = errEmptyResponse
	}

	var next model.ViewState
	if err != nil {
		next = model.Failed(city, fetchID, errorMessage(err))
	} else {
		next = model.Loaded(city, fetchID, ToDisplay(raw))
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.closed || fetchID != uc.fetchID {
		log.Debug(msg.GetMessage("screen.fetch.stale", city, fetchID),
			zap.String("city", city.String()),
			zap.String("fetch_id", fetchID))
		return
	}

	uc.cancelFetch()
	uc.cancelFetch = nil
	uc.setStateLocked(next)

	if err != nil {
		log.Warn(msg.GetMessage("screen.fetch.fail", city, fetchID, next.Message),
			zap.String("city", city.String()),
			zap.String("fetch_id", fetchID),
			zap.Error(err))
		return
	}
	log.Info(msg.GetMessage("screen.fetch.success", city, fetchID),
		zap.String("city", city.String()),
		zap.String("fetch_id", fetchID))
}

// errorMessage keeps the failure's own description and falls back to the generic title
func errorMessage(err error) string {
	if message := strings.TrimSpace(err.Error()); message != "" {
		return message
	}
	return msg.GetMessageOrDefault("screen.error.fallback", FallbackErrorMessage)
}

// setStateLocked stores the state and fans it out; uc.mu must be held for writing
func (uc *screenUseCase) setStateLocked(state model.ViewState) {
	uc.state = state
	for _, ch := range uc.subscribers {
		deliver(ch, state.Clone())
	}
}

// deliver never blocks: a lagging reader loses its oldest pending state
func deliver(ch chan model.ViewState, state model.ViewState) {
	select {
	case ch <- state:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- state:
	default:
	}
}

func (uc *screenUseCase) State() model.ViewState {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state.Clone()
}

func (uc *screenUseCase) SelectedCity() entity.City {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.selected
}

func (uc *screenUseCase) Cities() []entity.City {
	cities := make([]entity.City, len(uc.cities))
	copy(cities, uc.cities)
	return cities
}

// Subscribe delivers every subsequent state change until the returned func is called
func (uc *screenUseCase) Subscribe() (<-chan model.ViewState, func()) {
	ch := make(chan model.ViewState, uc.subscriberBuffer)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.closed {
		close(ch)
		return ch, func() {}
	}

	id := uc.nextSubID
	uc.nextSubID++
	uc.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()
			if sub, ok := uc.subscribers[id]; ok {
				delete(uc.subscribers, id)
				close(sub)
			}
		})
	}
}

// Close cancels the in-flight fetch, closes all subscriptions and waits for fetch goroutines
func (uc *screenUseCase) Close() {
	uc.mu.Lock()
	if uc.closed {
		uc.mu.Unlock()
		return
	}
	uc.closed = true
	uc.rootCancel()
	for id, ch := range uc.subscribers {
		delete(uc.subscribers, id)
		close(ch)
	}
	uc.mu.Unlock()

	uc.wg.Wait()
}
