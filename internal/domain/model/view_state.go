package model

import (
	"time"

	"weather-screen/internal/domain/entity"
)

// ViewStateKind tags the active ViewState variant
type ViewStateKind string

const (
	KindLoading ViewStateKind = "LOADING"
	KindError   ViewStateKind = "ERROR"
	KindLoaded  ViewStateKind = "LOADED"
)

// ViewState is what the screen currently shows. Build it with Loading, Failed or Loaded so that
// Message is only set for errors and Data only for loaded states.
type ViewState struct {
	Kind      ViewStateKind          `json:"kind"`
	City      entity.City            `json:"city"`
	FetchID   string                 `json:"fetchId"`
	Message   string                 `json:"message,omitempty"`
	Data      *entity.WeatherDisplay `json:"data,omitempty"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

func Loading(city entity.City, fetchID string) ViewState {
	return ViewState{Kind: KindLoading, City: city, FetchID: fetchID, UpdatedAt: time.Now()}
}

func Failed(city entity.City, fetchID string, message string) ViewState {
	return ViewState{Kind: KindError, City: city, FetchID: fetchID, Message: message, UpdatedAt: time.Now()}
}

func Loaded(city entity.City, fetchID string, data entity.WeatherDisplay) ViewState {
	return ViewState{Kind: KindLoaded, City: city, FetchID: fetchID, Data: &data, UpdatedAt: time.Now()}
}

func (s ViewState) IsLoading() bool { return s.Kind == KindLoading }

func (s ViewState) IsError() bool { return s.Kind == KindError }

func (s ViewState) IsLoaded() bool { return s.Kind == KindLoaded && s.Data != nil }

// Clone returns a copy that shares no memory with s.
func (s ViewState) Clone() ViewState {
	if s.Data != nil {
		data := *s.Data
		s.Data = &data
	}
	return s
}
