package service

import (
	"testing"

	"coursehub_backend/internal/model"
	"coursehub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackUpsertKeepsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)
	student := seedUser(t, db, "Bob", "bob@example.com", model.Student)

	course, err := newCourseService(db).CreateCourse(CourseCreateRequest{
		Title:        "Course",
		Description:  "Desc",
		InstructorID: instructor.ID,
	})
	require.NoError(t, err)

	svc := newFeedbackService(db)

	first, err := svc.Submit(course.ID, FeedbackRequest{UserID: student.ID, Rating: 3, Comment: "ok"})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Rating)
	assert.Equal(t, "Bob", first.UserName)

	second, err := svc.Submit(course.ID, FeedbackRequest{UserID: student.ID, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "great", second.Comment)

	var count int64
	require.NoError(t, db.Model(&model.Feedback{}).
		Where("course_id = ? AND user_id = ?", course.ID, student.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFeedbackCourseNotFound(t *testing.T) {
	db := setupTestDB(t)
	student := seedUser(t, db, "Bob", "bob@example.com", model.Student)

	_, err := newFeedbackService(db).Submit(999, FeedbackRequest{UserID: student.ID, Rating: 4})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestFeedbackUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)

	course, err := newCourseService(db).CreateCourse(CourseCreateRequest{
		Title:        "Course",
		Description:  "Desc",
		InstructorID: instructor.ID,
	})
	require.NoError(t, err)

	_, err = newFeedbackService(db).Submit(course.ID, FeedbackRequest{UserID: 999, Rating: 4})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestFeedbackListJoinsAuthorNames(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)
	bob := seedUser(t, db, "Bob", "bob@example.com", model.Student)
	carol := seedUser(t, db, "Carol", "carol@example.com", model.Student)

	course, err := newCourseService(db).CreateCourse(CourseCreateRequest{
		Title:        "Course",
		Description:  "Desc",
		InstructorID: instructor.ID,
	})
	require.NoError(t, err)

	svc := newFeedbackService(db)
	_, err = svc.Submit(course.ID, FeedbackRequest{UserID: bob.ID, Rating: 4, Comment: "good"})
	require.NoError(t, err)
	_, err = svc.Submit(course.ID, FeedbackRequest{UserID: carol.ID, Rating: 5, Comment: "better"})
	require.NoError(t, err)

	rows, err := svc.ListCourseFeedback(course.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// 最新的在前
	assert.Equal(t, "Carol", rows[0].UserName)
	assert.Equal(t, "Bob", rows[1].UserName)
}
