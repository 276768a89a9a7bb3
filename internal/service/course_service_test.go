package service

import (
	"testing"

	"coursehub_backend/internal/model"
	"coursehub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseWithSections(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice Teacher", "alice@example.com", model.Instructor)
	svc := newCourseService(db)

	detail, err := svc.CreateCourse(CourseCreateRequest{
		Title:        "Intro to Go",
		Description:  "A beginner course",
		InstructorID: instructor.ID,
		Category:     "Programming",
		Content: []SectionInput{
			{Title: "A", Text: "x"},
			{Title: "B", Text: "y"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Teacher", detail.Instructor)
	assert.Equal(t, "Programming", detail.Category)
	assert.True(t, detail.Published)
	require.Len(t, detail.Content, 2)
	assert.Equal(t, 1, detail.Content[0].OrderIndex)
	assert.Equal(t, 2, detail.Content[1].OrderIndex)
	assert.Empty(t, detail.Feedback)

	// 立即回读，章节顺序与提交一致
	reread, err := svc.GetCourse(detail.ID, 0)
	require.NoError(t, err)
	require.Len(t, reread.Content, 2)
	assert.Equal(t, "A", reread.Content[0].Title)
	assert.Equal(t, 1, reread.Content[0].OrderIndex)
	assert.Equal(t, "B", reread.Content[1].Title)
	assert.Equal(t, 2, reread.Content[1].OrderIndex)
}

func TestCreateCourseMissingFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(db)

	_, err := svc.CreateCourse(CourseCreateRequest{Title: "only title"})
	assert.ErrorIs(t, err, util.ErrMissingCourseFields)
}

func TestCreateCourseResolvesInstructorByName(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Bob", "bob@example.com", model.Instructor)
	svc := newCourseService(db)

	detail, err := svc.CreateCourse(CourseCreateRequest{
		Title:       "Course",
		Description: "Desc",
		Instructor:  "Bob",
	})
	require.NoError(t, err)
	assert.Equal(t, instructor.ID, detail.InstructorID)
}

func TestCreateCourseInstructorNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(db)

	_, err := svc.CreateCourse(CourseCreateRequest{
		Title:       "Course",
		Description: "Desc",
		Instructor:  "Nobody",
	})
	assert.ErrorIs(t, err, util.ErrInstructorNotFound)
}

func TestCreateCourseAmbiguousInstructorName(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "Sam", "sam1@example.com", model.Instructor)
	seedUser(t, db, "Sam", "sam2@example.com", model.Instructor)
	svc := newCourseService(db)

	_, err := svc.CreateCourse(CourseCreateRequest{
		Title:       "Course",
		Description: "Desc",
		Instructor:  "Sam",
	})
	assert.ErrorIs(t, err, util.ErrInstructorAmbiguous)
}

func TestCreateCourseUnknownCategoryTolerated(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)
	svc := newCourseService(db)

	detail, err := svc.CreateCourse(CourseCreateRequest{
		Title:        "Course",
		Description:  "Desc",
		InstructorID: instructor.ID,
		Category:     "No Such Category",
	})
	require.NoError(t, err)
	assert.Empty(t, detail.Category)

	var course model.Course
	require.NoError(t, db.First(&course, detail.ID).Error)
	assert.Nil(t, course.CategoryID)
}

func TestCreateCourseRollsBackOnSectionFailure(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)
	svc := newCourseService(db)

	// 章节表缺失时章节插入必然失败，课程行必须一并回滚
	require.NoError(t, db.Migrator().DropTable(&model.CourseSection{}))

	_, err := svc.CreateCourse(CourseCreateRequest{
		Title:        "Doomed",
		Description:  "Desc",
		InstructorID: instructor.ID,
		Content:      []SectionInput{{Title: "A", Text: "x"}},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Course{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateCourseReplacesSections(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)
	svc := newCourseService(db)

	created, err := svc.CreateCourse(CourseCreateRequest{
		Title:        "Course",
		Description:  "Desc",
		InstructorID: instructor.ID,
		Content: []SectionInput{
			{Title: "A", Text: "x"},
			{Title: "B", Text: "y"},
		},
	})
	require.NoError(t, err)

	replacement := []SectionInput{{Title: "C", Text: "z"}}
	updated, err := svc.UpdateCourse(created.ID, CourseUpdateRequest{Content: &replacement})
	require.NoError(t, err)
	require.Len(t, updated.Content, 1)
	assert.Equal(t, "C", updated.Content[0].Title)
	assert.Equal(t, 1, updated.Content[0].OrderIndex)

	var count int64
	require.NoError(t, db.Model(&model.CourseSection{}).Where("course_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateCoursePartialFields(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)
	svc := newCourseService(db)

	created, err := svc.CreateCourse(CourseCreateRequest{
		Title:        "Original Title",
		Description:  "Original Description",
		InstructorID: instructor.ID,
		Content:      []SectionInput{{Title: "A", Text: "x"}},
	})
	require.NoError(t, err)

	newTitle := "New Title"
	updated, err := svc.UpdateCourse(created.ID, CourseUpdateRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "Original Description", updated.Description)
	// content 未提交，章节原样保留
	require.Len(t, updated.Content, 1)
	assert.Equal(t, "A", updated.Content[0].Title)
}

func TestUpdateCourseNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(db)

	newTitle := "whatever"
	_, err := svc.UpdateCourse(999, CourseUpdateRequest{Title: &newTitle})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestDeleteCourseCascades(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)
	student := seedUser(t, db, "Bob", "bob@example.com", model.Student)
	svc := newCourseService(db)

	created, err := svc.CreateCourse(CourseCreateRequest{
		Title:        "Course",
		Description:  "Desc",
		InstructorID: instructor.ID,
		Content:      []SectionInput{{Title: "A", Text: "x"}},
	})
	require.NoError(t, err)

	detail, err := svc.GetCourse(created.ID, 0)
	require.NoError(t, err)
	sectionID := detail.Content[0].ID

	require.NoError(t, db.Create(&model.ContentItem{
		SectionID: sectionID,
		Title:     "Video",
		Type:      model.ContentVideo,
		URL:       "https://example.com/v.mp4",
	}).Error)

	_, err = newEnrollmentService(db).Enroll(created.ID, student.ID)
	require.NoError(t, err)
	_, err = newFeedbackService(db).Submit(created.ID, FeedbackRequest{UserID: student.ID, Rating: 4})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(created.ID))

	_, err = svc.GetCourse(created.ID, 0)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	for name, value := range map[string]interface{}{
		"sections":    &model.CourseSection{},
		"content":     &model.ContentItem{},
		"enrollments": &model.Enrollment{},
		"feedback":    &model.Feedback{},
	} {
		var count int64
		require.NoError(t, db.Model(value).Count(&count).Error, name)
		assert.Zero(t, count, name)
	}
}

func TestDeleteCourseNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newCourseService(db)

	assert.ErrorIs(t, svc.DeleteCourse(42), util.ErrCourseNotFound)
}

func TestListPublishedFlattens(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, "Alice", "alice@example.com", model.Instructor)
	svc := newCourseService(db)

	_, err := svc.CreateCourse(CourseCreateRequest{
		Title:        "Visible",
		Description:  "Desc",
		InstructorID: instructor.ID,
		Category:     "Programming",
	})
	require.NoError(t, err)

	hidden, err := svc.CreateCourse(CourseCreateRequest{
		Title:        "Hidden",
		Description:  "Desc",
		InstructorID: instructor.ID,
	})
	require.NoError(t, err)
	_, err = svc.SetPublished(hidden.ID, false)
	require.NoError(t, err)

	rows, err := svc.ListPublished()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Visible", rows[0].Title)
	assert.Equal(t, "Alice", rows[0].Instructor)
	assert.Equal(t, "Programming", rows[0].Category)
}
