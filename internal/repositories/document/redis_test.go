package document_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/errors"
	"github.com/tomekeeper/importer/internal/redis"
	"github.com/tomekeeper/importer/internal/repositories/document"
	"github.com/tomekeeper/importer/internal/testutils"
)

type RedisDocumentTestSuite struct {
	suite.Suite
	client  redis.Client
	cleanup func()
	cache   provider.DocumentCache
	ctx     context.Context
}

func TestRedisDocumentSuite(t *testing.T) {
	suite.Run(t, new(RedisDocumentTestSuite))
}

func (s *RedisDocumentTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())

	cache, err := document.NewRedis(&document.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.cache = cache
	s.ctx = context.Background()
}

func (s *RedisDocumentTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisDocumentTestSuite) apiDocument(contentID, body string) *provider.RawDocument {
	doc, err := provider.ParseRawDocument(content.KindSpell, contentID, content.ChannelAPI,
		time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), []byte(body))
	s.Require().NoError(err)
	return doc
}

func (s *RedisDocumentTestSuite) TestPutThenGet() {
	original := s.apiDocument("fireball", `{"name": "Fireball", "level": 3}`)

	s.Require().NoError(s.cache.Put(s.ctx, original, time.Hour))

	cached, err := s.cache.Get(s.ctx, content.KindSpell, "fireball", content.ChannelAPI)
	s.Require().NoError(err)
	s.Assert().Equal(original.ContentID, cached.ContentID)
	s.Assert().Equal(original.Kind, cached.Kind)
	s.Assert().Equal(original.Channel, cached.Channel)
	s.Assert().True(original.FetchedAt.Equal(cached.FetchedAt))
	s.Assert().Equal(original.Body, cached.Body)
	s.Require().NotNil(cached.JSON)
	s.Assert().Equal("Fireball", cached.JSON["name"])
}

func (s *RedisDocumentTestSuite) TestGetMissReturnsNotFound() {
	_, err := s.cache.Get(s.ctx, content.KindSpell, "missing", content.ChannelAPI)

	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisDocumentTestSuite) TestChannelsCachedIndependently() {
	apiDoc := s.apiDocument("fireball", `{"name": "Fireball"}`)
	s.Require().NoError(s.cache.Put(s.ctx, apiDoc, time.Hour))

	_, err := s.cache.Get(s.ctx, content.KindSpell, "fireball", content.ChannelHTML)
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisDocumentTestSuite) TestHTMLDocumentRoundTrip() {
	page := `<html><body><h1>Fireball</h1></body></html>`
	doc, err := provider.ParseRawDocument(content.KindSpell, "fireball", content.ChannelHTML,
		time.Now().UTC(), []byte(page))
	s.Require().NoError(err)

	s.Require().NoError(s.cache.Put(s.ctx, doc, time.Hour))

	cached, err := s.cache.Get(s.ctx, content.KindSpell, "fireball", content.ChannelHTML)
	s.Require().NoError(err)
	s.Require().NotNil(cached.HTML)
	s.Assert().Equal("Fireball", cached.HTML.Find("h1").Text())
}

func (s *RedisDocumentTestSuite) TestPutNilDocument() {
	err := s.cache.Put(s.ctx, nil, time.Hour)

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisDocumentTestSuite) TestGetEmptyContentID() {
	_, err := s.cache.Get(s.ctx, content.KindSpell, "", content.ChannelAPI)

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisDocumentTestSuite) TestConfigValidation() {
	_, err := document.NewRedis(&document.RedisConfig{})
	s.Require().Error(err)

	_, err = document.NewRedis(nil)
	s.Require().Error(err)
}
