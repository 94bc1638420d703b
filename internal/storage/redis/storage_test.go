package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/donothingclub/donothing/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:          "u_1",
		Username:    "alice",
		Country:     "Australia",
		CountryCode: "AU",
		Registered:  true,
		TotalTime:   42,
	}

	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	got, err := s.storage.GetUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
	s.Equal("AU", got.CountryCode)
	s.Equal(int64(42), got.TotalTime)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", Username: "alice"})

	got, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), got.ID)
}

func (s *StorageSuite) TestGetUserByUsernameNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUserTimeOverwritesAndRescores() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", CountryCode: "AU", TotalTime: 100})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_2", CountryCode: "AU", TotalTime: 150})
	when := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.storage.UpdateUserTime(s.ctx, "u_1", 200, when))

	got, _ := s.storage.GetUser(s.ctx, "u_1")
	s.Equal(int64(200), got.TotalTime)
	s.True(got.LastActive.Equal(when))

	users, err := s.storage.TopUsers(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(model.UserID("u_1"), users[0].ID)
}

func (s *StorageSuite) TestUpdateUserTimeUnknownUser() {
	err := s.storage.UpdateUserTime(s.ctx, "nonexistent", 10, time.Now())
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestTopUsersOrderedDescending() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", TotalTime: 10})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_2", TotalTime: 30})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_3", TotalTime: 20})

	users, err := s.storage.TopUsers(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	s.Equal(model.UserID("u_2"), users[0].ID)
	s.Equal(model.UserID("u_1"), users[2].ID)
}

func (s *StorageSuite) TestTopUsersByCountryUsesCountryBoard() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", CountryCode: "AU", TotalTime: 10})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_2", CountryCode: "NZ", TotalTime: 30})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_3", CountryCode: "AU", TotalTime: 20})

	users, err := s.storage.TopUsersByCountry(s.ctx, "AU", 10)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(model.UserID("u_3"), users[0].ID)
	s.Equal(model.UserID("u_1"), users[1].ID)
}

func (s *StorageSuite) TestTopUsersRespectsLimit() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", TotalTime: 10})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_2", TotalTime: 30})

	users, err := s.storage.TopUsers(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal(model.UserID("u_2"), users[0].ID)
}

func (s *StorageSuite) TestEmptyBoardIsEmptySlice() {
	users, err := s.storage.TopUsers(s.ctx, 10)
	s.Require().NoError(err)
	s.NotNil(users)
	s.Empty(users)
}

func (s *StorageSuite) TestDanglingBoardMemberIsSkipped() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", TotalTime: 10})
	// Remove the record but leave the ranking entry behind
	s.mini.Del(userKey("u_1"))

	users, err := s.storage.TopUsers(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(users)
}
