package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harusato/meeting-decisions-api/internal/models"
	"github.com/harusato/meeting-decisions-api/internal/repository"
)

// StatsServiceTestSuite defines the test suite for StatsService
type StatsServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	clock     *fakeClock
	items     repository.ActionItemRepository
	decisions repository.DecisionRepository
	service   *StatsService
}

func (suite *StatsServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.ActionItem{}, &models.Decision{})
	suite.Require().NoError(err)

	suite.clock = newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	suite.items = repository.NewActionItemRepository(suite.db)
	suite.decisions = repository.NewDecisionRepository(suite.db)
	suite.service = NewStatsService(suite.items, suite.decisions, suite.clock)
}

func (suite *StatsServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *StatsServiceTestSuite) addItem(dueOffset time.Duration, completed bool) {
	item := &models.ActionItem{
		Title:     "item",
		DueDate:   suite.clock.Now().Add(dueOffset),
		Completed: completed,
		Priority:  models.PriorityMedium,
	}
	suite.Require().NoError(suite.items.Create(item))
}

func (suite *StatsServiceTestSuite) TestStatsOnEmptyStore() {
	stats, err := suite.service.Stats()
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(0), stats.PendingCount)
	assert.Equal(suite.T(), int64(0), stats.CompletedCount)
	assert.Equal(suite.T(), int64(0), stats.DecisionsCount)
	assert.Equal(suite.T(), int64(0), stats.OverdueCount)
}

func (suite *StatsServiceTestSuite) TestStatsCounts() {
	suite.addItem(24*time.Hour, false)  // pending, not overdue
	suite.addItem(-1*time.Hour, false)  // pending and overdue
	suite.addItem(-48*time.Hour, false) // pending and overdue
	suite.addItem(-1*time.Hour, true)   // completed, never overdue
	suite.addItem(24*time.Hour, true)   // completed

	suite.Require().NoError(suite.decisions.Create(&models.Decision{Title: "ship it", Source: "meeting"}))
	suite.Require().NoError(suite.decisions.Create(&models.Decision{Title: "delay launch", Source: "meeting"}))

	stats, err := suite.service.Stats()
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(3), stats.PendingCount)
	assert.Equal(suite.T(), int64(2), stats.CompletedCount)
	assert.Equal(suite.T(), int64(2), stats.DecisionsCount)
	assert.Equal(suite.T(), int64(2), stats.OverdueCount)
}

func (suite *StatsServiceTestSuite) TestOverdueExcludesItemDueExactlyNow() {
	suite.addItem(0, false)

	stats, err := suite.service.Stats()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(0), stats.OverdueCount)

	suite.clock.Advance(time.Second)
	stats, err = suite.service.Stats()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), stats.OverdueCount)
}

func (suite *StatsServiceTestSuite) TestStatsReflectMutations() {
	suite.addItem(24*time.Hour, false)

	stats, err := suite.service.Stats()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), stats.PendingCount)
	assert.Equal(suite.T(), int64(0), stats.CompletedCount)

	item, err := suite.items.FindByID(1)
	suite.Require().NoError(err)
	now := suite.clock.Now()
	item.Completed = true
	item.CompletedAt = &now
	suite.Require().NoError(suite.items.Update(item))

	stats, err = suite.service.Stats()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(0), stats.PendingCount)
	assert.Equal(suite.T(), int64(1), stats.CompletedCount)
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}
