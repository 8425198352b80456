package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/harusato/meeting-decisions-api/internal/models"
	"github.com/harusato/meeting-decisions-api/internal/repository"
)

// ReminderServiceTestSuite defines the test suite for ReminderService
type ReminderServiceTestSuite struct {
	suite.Suite
	db            *gorm.DB
	clock         *fakeClock
	items         repository.ActionItemRepository
	notifications repository.NotificationRepository
	service       *ReminderService
}

func (suite *ReminderServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.ActionItem{}, &models.Notification{})
	suite.Require().NoError(err)

	suite.clock = newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	suite.items = repository.NewActionItemRepository(suite.db)
	suite.notifications = repository.NewNotificationRepository(suite.db)
	suite.service = NewReminderService(suite.items, suite.notifications, suite.clock, zap.NewNop().Sugar())
}

func (suite *ReminderServiceTestSuite) TearDownTest() {
	suite.service.Shutdown()
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ReminderServiceTestSuite) createItem(title string, dueDate time.Time, completed bool) *models.ActionItem {
	item := &models.ActionItem{
		Title:     title,
		Assignee:  "alice",
		DueDate:   dueDate,
		Completed: completed,
		Priority:  models.PriorityMedium,
	}
	suite.Require().NoError(suite.items.Create(item))
	return item
}

func (suite *ReminderServiceTestSuite) remindersOfType(t models.NotificationType) []models.Notification {
	all, err := suite.notifications.List(repository.NotificationFilter{})
	suite.Require().NoError(err)
	var matched []models.Notification
	for _, n := range all {
		if n.Type == t {
			matched = append(matched, n)
		}
	}
	return matched
}

func (suite *ReminderServiceTestSuite) TestScheduleArmsBothReminders() {
	item := suite.createItem("prepare report", suite.clock.Now().Add(10*24*time.Hour), false)

	suite.service.Schedule(item.ID, item.DueDate)

	suite.clock.Advance(9 * 24 * time.Hour)
	reminders := suite.remindersOfType(models.NotificationActionReminder)
	suite.Require().Len(reminders, 1)
	assert.Contains(suite.T(), reminders[0].Message, "due tomorrow")
	suite.Require().NotNil(reminders[0].ActionItemID)
	assert.Equal(suite.T(), item.ID, *reminders[0].ActionItemID)

	suite.clock.Advance(24 * time.Hour)
	reminders = suite.remindersOfType(models.NotificationActionReminder)
	suite.Require().Len(reminders, 2)
	assert.Contains(suite.T(), reminders[0].Message, "due today")
}

func (suite *ReminderServiceTestSuite) TestScheduleSkipsLeadReminderWithinADay() {
	item := suite.createItem("send agenda", suite.clock.Now().Add(10*time.Hour), false)

	suite.service.Schedule(item.ID, item.DueDate)
	suite.clock.Advance(10 * time.Hour)

	reminders := suite.remindersOfType(models.NotificationActionReminder)
	suite.Require().Len(reminders, 1)
	assert.Contains(suite.T(), reminders[0].Message, "due today")
}

func (suite *ReminderServiceTestSuite) TestSchedulePastDueDateArmsNothing() {
	item := suite.createItem("already late", suite.clock.Now().Add(-24*time.Hour), false)

	suite.service.Schedule(item.ID, item.DueDate)
	suite.clock.Advance(100 * time.Hour)

	assert.Empty(suite.T(), suite.remindersOfType(models.NotificationActionReminder))
}

func (suite *ReminderServiceTestSuite) TestCancelPreventsFiring() {
	item := suite.createItem("cancel me", suite.clock.Now().Add(48*time.Hour), false)

	suite.service.Schedule(item.ID, item.DueDate)
	suite.service.Cancel(item.ID)
	suite.clock.Advance(72 * time.Hour)

	assert.Empty(suite.T(), suite.remindersOfType(models.NotificationActionReminder))
}

func (suite *ReminderServiceTestSuite) TestCancelWithoutRegistrationIsNoop() {
	suite.service.Cancel(12345)
}

func (suite *ReminderServiceTestSuite) TestRescheduleReplacesTimers() {
	item := suite.createItem("moving target", suite.clock.Now().Add(48*time.Hour), false)

	suite.service.Schedule(item.ID, item.DueDate)
	newDue := suite.clock.Now().Add(120 * time.Hour)
	suite.service.Schedule(item.ID, newDue)

	// The original fire times pass without any reminder.
	suite.clock.Advance(48 * time.Hour)
	assert.Empty(suite.T(), suite.remindersOfType(models.NotificationActionReminder))

	suite.clock.Advance(48 * time.Hour)
	suite.Require().Len(suite.remindersOfType(models.NotificationActionReminder), 1)

	suite.clock.Advance(24 * time.Hour)
	assert.Len(suite.T(), suite.remindersOfType(models.NotificationActionReminder), 2)
}

func (suite *ReminderServiceTestSuite) TestStaleFireSkipsCompletedItem() {
	item := suite.createItem("finished early", suite.clock.Now().Add(48*time.Hour), false)
	suite.service.Schedule(item.ID, item.DueDate)

	now := suite.clock.Now()
	item.Completed = true
	item.CompletedAt = &now
	suite.Require().NoError(suite.items.Update(item))

	suite.clock.Advance(72 * time.Hour)
	assert.Empty(suite.T(), suite.remindersOfType(models.NotificationActionReminder))
}

func (suite *ReminderServiceTestSuite) TestStaleFireSkipsDeletedItem() {
	item := suite.createItem("soon gone", suite.clock.Now().Add(48*time.Hour), false)
	suite.service.Schedule(item.ID, item.DueDate)

	suite.Require().NoError(suite.db.Delete(&models.ActionItem{}, item.ID).Error)

	suite.clock.Advance(72 * time.Hour)
	assert.Empty(suite.T(), suite.remindersOfType(models.NotificationActionReminder))
}

func (suite *ReminderServiceTestSuite) TestOverdueSweepCreatesOnePerOverdueItem() {
	suite.createItem("late one", suite.clock.Now().Add(-2*time.Hour), false)
	suite.createItem("late two", suite.clock.Now().Add(-26*time.Hour), false)
	suite.createItem("on time", suite.clock.Now().Add(2*time.Hour), false)
	suite.createItem("late but done", suite.clock.Now().Add(-2*time.Hour), true)

	suite.service.RunOverdueSweep()

	overdue := suite.remindersOfType(models.NotificationOverdueReminder)
	assert.Len(suite.T(), overdue, 2)
}

func (suite *ReminderServiceTestSuite) TestOverdueSweepDoesNotDeduplicate() {
	// Two consecutive sweeps produce two notifications for the same item.
	suite.createItem("perpetually late", suite.clock.Now().Add(-2*time.Hour), false)

	suite.service.RunOverdueSweep()
	suite.clock.Advance(24 * time.Hour)
	suite.service.RunOverdueSweep()

	assert.Len(suite.T(), suite.remindersOfType(models.NotificationOverdueReminder), 2)
}

func (suite *ReminderServiceTestSuite) TestInitializeRearmsFutureIncompleteItems() {
	future := suite.createItem("future work", suite.clock.Now().Add(48*time.Hour), false)
	suite.createItem("past work", suite.clock.Now().Add(-1*time.Hour), false)
	suite.createItem("done work", suite.clock.Now().Add(48*time.Hour), true)

	suite.Require().NoError(suite.service.Initialize("09:00"))

	suite.clock.Advance(48 * time.Hour)
	reminders := suite.remindersOfType(models.NotificationActionReminder)
	suite.Require().Len(reminders, 2)
	for _, n := range reminders {
		suite.Require().NotNil(n.ActionItemID)
		assert.Equal(suite.T(), future.ID, *n.ActionItemID)
	}
}

func (suite *ReminderServiceTestSuite) TestInitializeRejectsInvalidSweepTime() {
	assert.Error(suite.T(), suite.service.Initialize("not-a-time"))
	assert.Error(suite.T(), suite.service.Initialize("25:00"))
}

func (suite *ReminderServiceTestSuite) TestImmediateFireFindsRegistration() {
	// A timer that fires as soon as it is armed must still see its
	// registration, so the spent registration is removed instead of
	// lingering in the map.
	clock := &eagerClock{now: suite.clock.Now()}
	service := NewReminderService(suite.items, suite.notifications, clock, zap.NewNop().Sugar())
	defer service.Shutdown()

	item := suite.createItem("fires at once", clock.Now().Add(time.Hour), false)
	service.Schedule(item.ID, item.DueDate)
	clock.wg.Wait()

	service.mu.Lock()
	remaining := len(service.registrations)
	service.mu.Unlock()
	assert.Zero(suite.T(), remaining)
	assert.Len(suite.T(), suite.remindersOfType(models.NotificationActionReminder), 1)
}

func (suite *ReminderServiceTestSuite) TestShutdownCancelsArmedTimers() {
	item := suite.createItem("never fires", suite.clock.Now().Add(48*time.Hour), false)
	suite.service.Schedule(item.ID, item.DueDate)

	suite.service.Shutdown()
	suite.clock.Advance(72 * time.Hour)

	assert.Empty(suite.T(), suite.remindersOfType(models.NotificationActionReminder))
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}

// eagerClock runs every armed callback right away on its own goroutine,
// whatever the requested delay.
type eagerClock struct {
	now time.Time
	wg  sync.WaitGroup
}

func (c *eagerClock) Now() time.Time { return c.now }

func (c *eagerClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
	return spentTimer{}
}

type spentTimer struct{}

func (spentTimer) Stop() bool { return false }
