package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harusato/meeting-decisions-api/internal/models"
)

// RepositoryTestSuite exercises the GORM repositories against an in-memory
// database, pinning ordering and filter semantics the services rely on.
type RepositoryTestSuite struct {
	suite.Suite
	db            *gorm.DB
	users         UserRepository
	decisions     DecisionRepository
	items         ActionItemRepository
	notifications NotificationRepository
	recordings    RecordingRepository
}

func (suite *RepositoryTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Decision{},
		&models.ActionItem{},
		&models.Notification{},
		&models.Recording{},
	)
	suite.Require().NoError(err)

	suite.users = NewUserRepository(suite.db)
	suite.decisions = NewDecisionRepository(suite.db)
	suite.items = NewActionItemRepository(suite.db)
	suite.notifications = NewNotificationRepository(suite.db)
	suite.recordings = NewRecordingRepository(suite.db)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RepositoryTestSuite) TestActionItemIDsAreMonotonic() {
	due := time.Now().Add(24 * time.Hour)
	var previous uint64
	for i := 0; i < 5; i++ {
		item := &models.ActionItem{Title: "step", DueDate: due, Priority: models.PriorityMedium}
		suite.Require().NoError(suite.items.Create(item))
		assert.Greater(suite.T(), item.ID, previous)
		previous = item.ID
	}
}

func (suite *RepositoryTestSuite) TestActionItemListOrdersByDueDate() {
	now := time.Now().UTC().Truncate(time.Second)
	offsets := []time.Duration{72 * time.Hour, 24 * time.Hour, 48 * time.Hour}
	for _, off := range offsets {
		item := &models.ActionItem{Title: "step", DueDate: now.Add(off), Priority: models.PriorityMedium}
		suite.Require().NoError(suite.items.Create(item))
	}

	listed, err := suite.items.List(ActionItemFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(listed, 3)
	assert.True(suite.T(), listed[0].DueDate.Before(listed[1].DueDate))
	assert.True(suite.T(), listed[1].DueDate.Before(listed[2].DueDate))
}

func (suite *RepositoryTestSuite) TestActionItemFiltersAreConjunctive() {
	due := time.Now().Add(24 * time.Hour)
	decisionID := uint64(7)
	fixtures := []models.ActionItem{
		{Title: "a", DueDate: due, Completed: true, DecisionID: &decisionID, Priority: models.PriorityMedium},
		{Title: "b", DueDate: due, Completed: false, DecisionID: &decisionID, Priority: models.PriorityMedium},
		{Title: "c", DueDate: due, Completed: true, Priority: models.PriorityMedium},
	}
	for i := range fixtures {
		suite.Require().NoError(suite.items.Create(&fixtures[i]))
	}

	completed := true
	listed, err := suite.items.List(ActionItemFilter{Completed: &completed, DecisionID: &decisionID})
	suite.Require().NoError(err)
	suite.Require().Len(listed, 1)
	assert.Equal(suite.T(), "a", listed[0].Title)
}

func (suite *RepositoryTestSuite) TestActionItemListHonorsLimit() {
	due := time.Now().Add(24 * time.Hour)
	for i := 0; i < 4; i++ {
		item := &models.ActionItem{Title: "step", DueDate: due, Priority: models.PriorityMedium}
		suite.Require().NoError(suite.items.Create(item))
	}

	listed, err := suite.items.List(ActionItemFilter{Limit: 2})
	suite.Require().NoError(err)
	assert.Len(suite.T(), listed, 2)
}

func (suite *RepositoryTestSuite) TestListOverdueExcludesExactDueDate() {
	now := time.Now().UTC().Truncate(time.Second)
	fixtures := []models.ActionItem{
		{Title: "exactly due", DueDate: now, Priority: models.PriorityMedium},
		{Title: "one second late", DueDate: now.Add(-time.Second), Priority: models.PriorityMedium},
		{Title: "late but done", DueDate: now.Add(-time.Hour), Completed: true, Priority: models.PriorityMedium},
	}
	for i := range fixtures {
		suite.Require().NoError(suite.items.Create(&fixtures[i]))
	}

	overdue, err := suite.items.ListOverdue(now)
	suite.Require().NoError(err)
	suite.Require().Len(overdue, 1)
	assert.Equal(suite.T(), "one second late", overdue[0].Title)
}

func (suite *RepositoryTestSuite) TestCountByCompletion() {
	due := time.Now().Add(24 * time.Hour)
	for i := 0; i < 3; i++ {
		item := &models.ActionItem{Title: "pending", DueDate: due, Priority: models.PriorityMedium}
		suite.Require().NoError(suite.items.Create(item))
	}
	done := &models.ActionItem{Title: "done", DueDate: due, Completed: true, Priority: models.PriorityMedium}
	suite.Require().NoError(suite.items.Create(done))

	pending, err := suite.items.CountByCompletion(false)
	suite.Require().NoError(err)
	completed, err := suite.items.CountByCompletion(true)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(3), pending)
	assert.Equal(suite.T(), int64(1), completed)
}

func (suite *RepositoryTestSuite) TestDecisionListNewestFirstWithLimit() {
	for _, title := range []string{"first", "second", "third"} {
		suite.Require().NoError(suite.decisions.Create(&models.Decision{Title: title, Source: "meeting"}))
	}

	listed, err := suite.decisions.List(2)
	suite.Require().NoError(err)
	suite.Require().Len(listed, 2)
	assert.Equal(suite.T(), "third", listed[0].Title)
	assert.Equal(suite.T(), "second", listed[1].Title)

	count, err := suite.decisions.Count()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), count)
}

func (suite *RepositoryTestSuite) TestNotificationUnreadCountTracksReads() {
	for i := 0; i < 3; i++ {
		n := &models.Notification{Type: models.NotificationActionReminder, Message: "reminder"}
		suite.Require().NoError(suite.notifications.Create(n))
	}

	unread, err := suite.notifications.CountUnread()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), unread)

	for _, id := range []uint64{1, 2} {
		n, err := suite.notifications.FindByID(id)
		suite.Require().NoError(err)
		n.Read = true
		suite.Require().NoError(suite.notifications.Update(n))
	}

	unread, err = suite.notifications.CountUnread()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), unread)
}

func (suite *RepositoryTestSuite) TestNotificationListFiltersByRead() {
	read := &models.Notification{Type: models.NotificationItemCompleted, Message: "done", Read: true}
	suite.Require().NoError(suite.notifications.Create(read))
	unread := &models.Notification{Type: models.NotificationActionReminder, Message: "pending"}
	suite.Require().NoError(suite.notifications.Create(unread))

	flag := false
	listed, err := suite.notifications.List(NotificationFilter{Read: &flag})
	suite.Require().NoError(err)
	suite.Require().Len(listed, 1)
	assert.Equal(suite.T(), "pending", listed[0].Message)
}

func (suite *RepositoryTestSuite) TestRecordingsWithoutCreationTimeSortLast() {
	early := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)
	fixtures := []models.Recording{
		{ID: "rec-early", Status: models.RecordingStatusPending, CreatedAt: &early},
		{ID: "rec-untimed", Status: models.RecordingStatusPending},
		{ID: "rec-late", Status: models.RecordingStatusPending, CreatedAt: &late},
	}
	for i := range fixtures {
		suite.Require().NoError(suite.recordings.Create(&fixtures[i]))
	}

	listed, err := suite.recordings.List(0)
	suite.Require().NoError(err)
	suite.Require().Len(listed, 3)
	assert.Equal(suite.T(), "rec-late", listed[0].ID)
	assert.Equal(suite.T(), "rec-early", listed[1].ID)
	assert.Equal(suite.T(), "rec-untimed", listed[2].ID)
}

func (suite *RepositoryTestSuite) TestUserUsernameLookup() {
	user := &models.User{Username: "alice", PasswordHash: "hash"}
	suite.Require().NoError(suite.users.Create(user))

	found, err := suite.users.FindByUsername("alice")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), user.ID, found.ID)

	_, err = suite.users.FindByUsername("nobody")
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
