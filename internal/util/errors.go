package util

import "errors"

var (
	ErrUserNotFound        = errors.New("User not found")
	ErrEmailInUse          = errors.New("Email already in use")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrCourseNotFound      = errors.New("Course not found")
	ErrMissingCourseFields = errors.New("Please provide title, description, and instructor")
	ErrSectionNotFound     = errors.New("Section not found")
	ErrInstructorNotFound  = errors.New("Instructor not found")
	ErrInstructorAmbiguous = errors.New("Multiple instructors share that name, pass instructorId instead")
	ErrAlreadyEnrolled     = errors.New("Already enrolled in this course")
	ErrPermissionDenied    = errors.New("permission denied")
)
