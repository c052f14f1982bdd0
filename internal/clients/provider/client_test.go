package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/errors"
	"github.com/tomekeeper/importer/internal/pkg/clock"
)

type ClientTestSuite struct {
	suite.Suite
	fetchedAt time.Time
	auth      provider.AuthContext
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.fetchedAt = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	s.auth = provider.AuthContext{Token: "test-token"}
}

func (s *ClientTestSuite) newClient(server *httptest.Server) provider.Client {
	client, err := provider.New(&provider.Config{
		APIBaseURL:  server.URL + "/api",
		SiteBaseURL: server.URL + "/site",
		Clock:       clock.NewFixed(s.fetchedAt),
	})
	s.Require().NoError(err)
	return client
}

func (s *ClientTestSuite) TestFetchAPIDocument() {
	var gotPath, gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Fireball", "level": 3}`))
	}))
	defer server.Close()

	doc, err := s.newClient(server).Fetch(context.Background(), &provider.FetchInput{
		ContentID: "fireball",
		Kind:      content.KindSpell,
		Channel:   content.ChannelAPI,
		Auth:      s.auth,
	})

	s.Require().NoError(err)
	s.Assert().Equal("/api/spells/fireball", gotPath)
	s.Assert().Equal("Bearer test-token", gotAuth)
	s.Assert().Equal("application/json", gotAccept)
	s.Assert().True(s.fetchedAt.Equal(doc.FetchedAt))
	s.Require().NotNil(doc.JSON)
	s.Assert().Equal("Fireball", doc.JSON["name"])
	s.Assert().Nil(doc.HTML)
}

func (s *ClientTestSuite) TestFetchHTMLDocument() {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`<html><body><h1>Ranger</h1></body></html>`))
	}))
	defer server.Close()

	doc, err := s.newClient(server).Fetch(context.Background(), &provider.FetchInput{
		ContentID: "ranger",
		Kind:      content.KindClass,
		Channel:   content.ChannelHTML,
		Auth:      s.auth,
	})

	s.Require().NoError(err)
	s.Assert().Equal("/site/classes/ranger", gotPath)
	s.Require().NotNil(doc.HTML)
	s.Assert().Equal("Ranger", doc.HTML.Find("h1").Text())
	s.Assert().Nil(doc.JSON)
}

func (s *ClientTestSuite) TestEmptyTokenRejectedWithoutNetworkCall() {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := s.newClient(server).Fetch(context.Background(), &provider.FetchInput{
		ContentID: "fireball",
		Kind:      content.KindSpell,
		Channel:   content.ChannelAPI,
	})

	s.Require().Error(err)
	s.Assert().True(errors.IsUnauthenticated(err))
	s.Assert().False(called)
}

func (s *ClientTestSuite) TestStatusCodeMapping() {
	testCases := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "not found", status: http.StatusNotFound, check: errors.IsNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, check: errors.IsUnauthenticated},
		{name: "server error", status: http.StatusInternalServerError, check: errors.IsUnavailable},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			_, err := s.newClient(server).Fetch(context.Background(), &provider.FetchInput{
				ContentID: "fireball",
				Kind:      content.KindSpell,
				Channel:   content.ChannelAPI,
				Auth:      s.auth,
			})

			s.Require().Error(err)
			s.Assert().True(tc.check(err))
		})
	}
}

func (s *ClientTestSuite) TestMalformedJSONIsDataLoss() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Fire`))
	}))
	defer server.Close()

	_, err := s.newClient(server).Fetch(context.Background(), &provider.FetchInput{
		ContentID: "fireball",
		Kind:      content.KindSpell,
		Channel:   content.ChannelAPI,
		Auth:      s.auth,
	})

	s.Require().Error(err)
	s.Assert().True(errors.IsDataLoss(err))
}

func (s *ClientTestSuite) TestConfigValidation() {
	_, err := provider.New(&provider.Config{})
	s.Require().Error(err)

	_, err = provider.New(&provider.Config{APIBaseURL: "http://api.test"})
	s.Require().Error(err)
}
