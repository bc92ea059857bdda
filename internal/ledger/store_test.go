package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"regnet/pkg/platform/sentinel"
)

type testRecord struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Coins int    `json:"coins"`
}

type StoreSuite struct {
	suite.Suite
	state *InMemory
	store *Store[testRecord]
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.state = NewInMemory()
	s.store = NewStore[testRecord](s.state, UserNamespace)
	s.ctx = context.Background()
}

func (s *StoreSuite) TestGetPut() {
	key, err := s.store.Key("alice", "A1")
	s.Require().NoError(err)

	s.Run("missing key surfaces ErrNotFound", func() {
		_, err := s.store.Get(s.ctx, key)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("put then get round-trips the record", func() {
		s.Require().NoError(s.store.Put(s.ctx, key, &testRecord{Key: key, Name: "alice", Coins: 7}))

		got, err := s.store.Get(s.ctx, key)
		s.Require().NoError(err)
		s.Equal("alice", got.Name)
		s.Equal(7, got.Coins)
		s.Equal(key, got.Key)
	})

	s.Run("put is a total overwrite", func() {
		s.Require().NoError(s.store.Put(s.ctx, key, &testRecord{Key: key, Name: "alice"}))

		got, err := s.store.Get(s.ctx, key)
		s.Require().NoError(err)
		s.Zero(got.Coins)
	})
}

func (s *StoreSuite) TestExists() {
	key, err := s.store.Key("bob", "B1")
	s.Require().NoError(err)

	ok, err := s.store.Exists(s.ctx, key)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.store.Put(s.ctx, key, &testRecord{Key: key, Name: "bob"}))

	ok, err = s.store.Exists(s.ctx, key)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StoreSuite) TestCorruptRecord() {
	key, err := s.store.Key("mallory", "M1")
	s.Require().NoError(err)
	s.Require().NoError(s.state.Put(s.ctx, key, []byte("{not json")))

	_, err = s.store.Get(s.ctx, key)
	s.Require().Error(err)
}

func (s *StoreSuite) TestEmit() {
	record := &testRecord{Name: "alice"}
	s.Require().NoError(s.store.Emit("UserRequested", record))

	events := s.state.Events()
	s.Require().Len(events, 1)
	s.Equal("UserRequested", events[0].Name)
	s.Contains(string(events[0].Payload), `"alice"`)
}
