package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/donothingclub/donothing/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "u_1", Username: "alice", Registered: true, TotalTime: 42}

	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	got, err := s.storage.GetUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
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

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestAnonymousUserHasNoUsernameIndexEntry() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1"})

	_, err := s.storage.GetUserByUsername(s.ctx, "")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUserTimeOverwrites() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", TotalTime: 100})
	when := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.storage.UpdateUserTime(s.ctx, "u_1", 50, when))

	got, _ := s.storage.GetUser(s.ctx, "u_1")
	// Last write wins, even when smaller
	s.Equal(int64(50), got.TotalTime)
	s.Equal(when, got.LastActive)
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
	s.Equal(model.UserID("u_3"), users[1].ID)
	s.Equal(model.UserID("u_1"), users[2].ID)
}

func (s *StorageSuite) TestTopUsersRespectsLimit() {
	for _, u := range []*model.User{
		{ID: "u_1", TotalTime: 10},
		{ID: "u_2", TotalTime: 30},
		{ID: "u_3", TotalTime: 20},
	} {
		_ = s.storage.SaveUser(s.ctx, u)
	}

	users, err := s.storage.TopUsers(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(users, 2)
	s.Equal(model.UserID("u_2"), users[0].ID)
}

func (s *StorageSuite) TestTopUsersByCountryFilters() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_1", CountryCode: "AU", TotalTime: 10})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_2", CountryCode: "NZ", TotalTime: 30})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u_3", CountryCode: "AU", TotalTime: 20})

	users, err := s.storage.TopUsersByCountry(s.ctx, "AU", 10)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(model.UserID("u_3"), users[0].ID)
	s.Equal(model.UserID("u_1"), users[1].ID)
}

func (s *StorageSuite) TestEmptyBoardIsEmptySlice() {
	users, err := s.storage.TopUsers(s.ctx, 10)
	s.Require().NoError(err)
	s.NotNil(users)
	s.Empty(users)
}

func (s *StorageSuite) TestSaveUserCopiesRecord() {
	user := &model.User{ID: "u_1", TotalTime: 10}
	_ = s.storage.SaveUser(s.ctx, user)

	user.TotalTime = 999

	got, _ := s.storage.GetUser(s.ctx, "u_1")
	s.Equal(int64(10), got.TotalTime)
}
