package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sms-next/internal/constants"
	"github.com/sms-next/internal/models"
	"github.com/sms-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupEnrollmentServiceTest(t *testing.T) (*EnrollmentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:enrollment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Course{}, &models.CourseEnrollment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db))
	return svc, db
}

func seedCourse(t *testing.T, db *gorm.DB, code string, capacity int) *models.Course {
	t.Helper()
	course := models.Course{Code: code, Name: "课程" + code, Capacity: capacity}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course failed: %v", err)
	}
	return &course
}

func TestEnrollAndDrop(t *testing.T) {
	svc, db := setupEnrollmentServiceTest(t)
	course := seedCourse(t, db, "CS101", 10)

	enrollment, err := svc.Enroll(1, course.ID)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if enrollment.Status != constants.EnrollmentStatusEnrolled {
		t.Fatalf("status want ENROLLED got %s", enrollment.Status)
	}

	enrolled, err := svc.IsEnrolled(1, course.ID)
	if err != nil || !enrolled {
		t.Fatalf("user should be enrolled, err=%v", err)
	}

	if err := svc.Drop(1, course.ID); err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	enrolled, err = svc.IsEnrolled(1, course.ID)
	if err != nil || enrolled {
		t.Fatalf("user should not be enrolled after drop, err=%v", err)
	}
}

func TestEnrollDuplicate(t *testing.T) {
	svc, db := setupEnrollmentServiceTest(t)
	course := seedCourse(t, db, "CS102", 10)

	if _, err := svc.Enroll(1, course.ID); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	if _, err := svc.Enroll(1, course.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("duplicate enroll want ErrAlreadyEnrolled got %v", err)
	}
}

func TestEnrollReactivatesDroppedRecord(t *testing.T) {
	svc, db := setupEnrollmentServiceTest(t)
	course := seedCourse(t, db, "CS103", 10)

	if _, err := svc.Enroll(1, course.ID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if err := svc.Drop(1, course.ID); err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	enrollment, err := svc.Enroll(1, course.ID)
	if err != nil {
		t.Fatalf("re-enroll failed: %v", err)
	}
	if enrollment.Status != constants.EnrollmentStatusEnrolled {
		t.Fatalf("status want ENROLLED got %s", enrollment.Status)
	}
	if enrollment.DropTime != nil {
		t.Fatalf("drop time should be reset")
	}

	var count int64
	if err := db.Model(&models.CourseEnrollment{}).Where("user_id = ? AND course_id = ?", 1, course.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("record count want 1 got %d", count)
	}
}

func TestEnrollCourseFull(t *testing.T) {
	svc, db := setupEnrollmentServiceTest(t)
	course := seedCourse(t, db, "CS104", 2)

	for userID := uint(1); userID <= 2; userID++ {
		if _, err := svc.Enroll(userID, course.ID); err != nil {
			t.Fatalf("enroll user %d failed: %v", userID, err)
		}
	}
	if _, err := svc.Enroll(3, course.ID); !errors.Is(err, ErrCourseFull) {
		t.Fatalf("enroll over capacity want ErrCourseFull got %v", err)
	}

	count, err := svc.CourseEnrolledCount(course.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("enrolled count want 2 got %d", count)
	}
}

func TestEnrollUnlimitedCapacity(t *testing.T) {
	svc, db := setupEnrollmentServiceTest(t)
	course := seedCourse(t, db, "EN101", 0)

	for userID := uint(1); userID <= 5; userID++ {
		if _, err := svc.Enroll(userID, course.ID); err != nil {
			t.Fatalf("enroll user %d failed: %v", userID, err)
		}
	}
}

func TestEnrollCourseNotFound(t *testing.T) {
	svc, _ := setupEnrollmentServiceTest(t)
	if _, err := svc.Enroll(1, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("enroll missing course want ErrNotFound got %v", err)
	}
}

func TestMyCourseCount(t *testing.T) {
	svc, db := setupEnrollmentServiceTest(t)
	first := seedCourse(t, db, "CS106", 10)
	second := seedCourse(t, db, "CS107", 10)

	if _, err := svc.Enroll(1, first.ID); err != nil {
		t.Fatalf("enroll first failed: %v", err)
	}
	if _, err := svc.Enroll(1, second.ID); err != nil {
		t.Fatalf("enroll second failed: %v", err)
	}

	count, err := svc.MyCourseCount(1)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count want 2 got %d", count)
	}

	// 退课后不再计入
	if err := svc.Drop(1, first.ID); err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	count, err = svc.MyCourseCount(1)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after drop want 1 got %d", count)
	}
}

func TestDropNotEnrolled(t *testing.T) {
	svc, db := setupEnrollmentServiceTest(t)
	course := seedCourse(t, db, "CS105", 10)
	if err := svc.Drop(1, course.ID); !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("drop without enrollment want ErrNotEnrolled got %v", err)
	}
}
