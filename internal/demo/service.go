// Package demo is a small remote service written against an asynchronous
// HTTP client, used to show how its tests drive a mocked client.
package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"asyncmock/pkg/async"
)

// ErrEmptyResponse is returned when the server answers without a value.
var ErrEmptyResponse = errors.New("empty response")

// Response is the payload exchanged with the server.
type Response struct {
	Value string `json:"value" yaml:"value"`
}

// HTTPClient is the transport RemoteService talks to.
type HTTPClient interface {
	PostCompletable(path string, body Response) *async.Completable
	GetSingle(path string) *async.Single[Response]
	DoMaybe(path string) *async.Maybe[Response]
	Observe(path string) *async.Observable[Response]
}

// RemoteService reads and writes values on a remote server.
type RemoteService struct {
	client HTTPClient
	log    *logrus.Entry
}

// NewRemoteService creates a service using client. A nil log uses the
// standard logger.
func NewRemoteService(client HTTPClient, log *logrus.Entry) *RemoteService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &RemoteService{client: client, log: log.WithField("component", "remote_service")}
}

// Save stores value.
func (s *RemoteService) Save(value string) *async.Completable {
	s.log.WithField("value", value).Debug("saving value")
	return async.NewCompletable(s.client.PostCompletable("/values", Response{Value: value}).Stream().MapErr(func(err error) error {
		return fmt.Errorf("failed to save value: %w", err)
	}))
}

// Fetch returns the value stored under id.
func (s *RemoteService) Fetch(id string) *async.Single[string] {
	return async.NewSingle(async.Map(s.client.GetSingle("/values/"+id).Stream(), valueOf))
}

// Lookup returns the value stored under id, if there is one.
func (s *RemoteService) Lookup(id string) *async.Maybe[string] {
	return async.NewMaybe(async.Map(s.client.DoMaybe("/values/"+id).Stream(), valueOf))
}

// Watch streams values published on topic until the server closes it.
func (s *RemoteService) Watch(topic string) *async.Observable[string] {
	return async.NewObservable(async.Map(s.client.Observe("/topics/"+topic).Stream(), valueOf))
}

// FetchAll fetches every id concurrently and returns the values in order.
// The first failure cancels the remaining fetches.
func (s *RemoteService) FetchAll(ctx context.Context, ids ...string) ([]string, error) {
	values := make([]string, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			v, err := s.Fetch(id).Await(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", id, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.WithError(err).Warn("fetch failed")
		return nil, err
	}
	return values, nil
}

func valueOf(r Response) (string, error) {
	if r.Value == "" {
		return "", ErrEmptyResponse
	}
	return r.Value, nil
}
