package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/anjiri1684/exam_qr_masking/repositories"
	"github.com/anjiri1684/exam_qr_masking/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExamDefaultsDuration(t *testing.T) {
	eachStore(t, func(t *testing.T, store services.Store) {
		ctx := context.Background()
		admin := mustAdmin(t, seedUser(t, store, "admin", models.RoleAdmin))
		exams := services.NewExamService(store)

		exam, err := exams.CreateExam(ctx, admin, services.CreateExamInput{CourseName: "Biology", Date: time.Now()})
		require.NoError(t, err)
		assert.Equal(t, models.DefaultExamDuration, exam.Duration)
		assert.NotEqual(t, uuid.Nil, exam.ID)

		got, err := exams.GetExam(ctx, exam.ID)
		require.NoError(t, err)
		assert.Equal(t, "Biology", got.CourseName)
		assert.Equal(t, models.DefaultExamDuration, got.Duration)

		_, err = exams.GetExam(ctx, uuid.New())
		assert.ErrorIs(t, err, services.ErrExamNotFound)
	})
}

func TestListExamsCountsCodes(t *testing.T) {
	eachStore(t, func(t *testing.T, store services.Store) {
		ctx := context.Background()
		admin := mustAdmin(t, seedUser(t, store, "admin", models.RoleAdmin))
		student := mustStudent(t, seedUser(t, store, "nina", models.RoleStudent))
		grading := services.NewGradingService(store)
		exams := services.NewExamService(store)

		older, err := exams.CreateExam(ctx, admin, services.CreateExamInput{CourseName: "History", Date: time.Now().Add(-48 * time.Hour)})
		require.NoError(t, err)
		newer, err := exams.CreateExam(ctx, admin, services.CreateExamInput{CourseName: "Geography", Date: time.Now()})
		require.NoError(t, err)

		res, err := grading.GenerateCodes(ctx, admin, newer.ID, 5)
		require.NoError(t, err)
		_, err = grading.ClaimCode(ctx, student, newer.ID, res.Codes[0].CodeValue)
		require.NoError(t, err)

		list, err := exams.ListExams(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)

		assert.Equal(t, newer.ID, list[0].ID)
		assert.EqualValues(t, 5, list[0].TotalCodes)
		assert.EqualValues(t, 1, list[0].ClaimedCodes)
		assert.EqualValues(t, 4, list[0].UnclaimedCodes)

		assert.Equal(t, older.ID, list[1].ID)
		assert.EqualValues(t, 0, list[1].TotalCodes)
	})
}

func TestListCodesUnknownExam(t *testing.T) {
	exams := services.NewExamService(repositories.NewMemoryStore())
	_, err := exams.ListCodes(context.Background(), uuid.New())
	assert.ErrorIs(t, err, services.ErrExamNotFound)
}

func TestListMarksVisibility(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	ap := seedUser(t, store, "admin", models.RoleAdmin)
	admin := mustAdmin(t, ap)
	m1 := seedUser(t, store, "m1", models.RoleMarker)
	m2 := seedUser(t, store, "m2", models.RoleMarker)
	sp := seedUser(t, store, "oscar", models.RoleStudent)
	tp := seedUser(t, store, "peggy", models.RoleStudent)
	exam := seedExam(t, store, "Chemistry")
	grading := services.NewGradingService(store)
	exams := services.NewExamService(store)

	res, err := grading.GenerateCodes(ctx, admin, exam.ID, 2)
	require.NoError(t, err)
	_, err = grading.ClaimCode(ctx, mustStudent(t, sp), exam.ID, res.Codes[0].CodeValue)
	require.NoError(t, err)
	_, err = grading.ClaimCode(ctx, mustStudent(t, tp), exam.ID, res.Codes[1].CodeValue)
	require.NoError(t, err)
	_, err = grading.SubmitMark(ctx, mustMarker(t, m1), exam.ID, res.Codes[0].CodeValue, 55)
	require.NoError(t, err)
	_, err = grading.SubmitMark(ctx, mustMarker(t, m2), exam.ID, res.Codes[1].CodeValue, 66)
	require.NoError(t, err)

	all, err := exams.ListMarks(ctx, ap, exam.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := exams.ListMarks(ctx, m1, exam.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, res.Codes[0].CodeValue, own[0].CodeValue)
	assert.Equal(t, 55.0, own[0].Score)

	_, err = exams.ListMarks(ctx, sp, exam.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestStudentViews(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	admin := mustAdmin(t, seedUser(t, store, "admin", models.RoleAdmin))
	sp := seedUser(t, store, "quinn", models.RoleStudent)
	student := mustStudent(t, sp)
	marker := mustMarker(t, seedUser(t, store, "marker", models.RoleMarker))
	grading := services.NewGradingService(store)
	exams := services.NewExamService(store)

	recent, err := exams.CreateExam(ctx, admin, services.CreateExamInput{CourseName: "Economics", Date: time.Now().Add(-24 * time.Hour), Duration: 90})
	require.NoError(t, err)
	_, err = exams.CreateExam(ctx, admin, services.CreateExamInput{CourseName: "Latin", Date: time.Now().Add(-30 * 24 * time.Hour)})
	require.NoError(t, err)

	res, err := grading.GenerateCodes(ctx, admin, recent.ID, 1)
	require.NoError(t, err)
	_, err = grading.ClaimCode(ctx, student, recent.ID, res.Codes[0].CodeValue)
	require.NoError(t, err)

	list, err := exams.StudentExams(ctx, student)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, recent.ID, list[0].ID)
	require.NotNil(t, list[0].ClaimedCode)
	assert.Equal(t, res.Codes[0].CodeValue, list[0].ClaimedCode.CodeValue)

	marks, err := exams.StudentMarks(ctx, student)
	require.NoError(t, err)
	assert.Empty(t, marks)

	_, err = grading.SubmitMark(ctx, marker, recent.ID, res.Codes[0].CodeValue, 77)
	require.NoError(t, err)

	marks, err = exams.StudentMarks(ctx, student)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, "Economics", marks[0].CourseName)
	assert.Equal(t, 90, marks[0].Duration)
	assert.Equal(t, 77.0, marks[0].Score)
}

func TestStatsCountsPendingReveals(t *testing.T) {
	eachStore(t, func(t *testing.T, store services.Store) {
		ctx := context.Background()
		admin := mustAdmin(t, seedUser(t, store, "admin", models.RoleAdmin))
		student := mustStudent(t, seedUser(t, store, "rita", models.RoleStudent))
		marker := mustMarker(t, seedUser(t, store, "marker", models.RoleMarker))
		grading := services.NewGradingService(store)
		exams := services.NewExamService(store)

		pending, err := exams.CreateExam(ctx, admin, services.CreateExamInput{CourseName: "Art", Date: time.Now()})
		require.NoError(t, err)
		_, err = exams.CreateExam(ctx, admin, services.CreateExamInput{CourseName: "Music", Date: time.Now().Add(-60 * 24 * time.Hour)})
		require.NoError(t, err)

		res, err := grading.GenerateCodes(ctx, admin, pending.ID, 3)
		require.NoError(t, err)
		_, err = grading.ClaimCode(ctx, student, pending.ID, res.Codes[0].CodeValue)
		require.NoError(t, err)

		stats, err := exams.Stats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stats.TotalExams)
		assert.EqualValues(t, 1, stats.ActiveExams)
		assert.EqualValues(t, 3, stats.TotalQRCodes)
		assert.EqualValues(t, 1, stats.PendingReveals)

		_, err = grading.SubmitMark(ctx, marker, pending.ID, res.Codes[0].CodeValue, 88)
		require.NoError(t, err)

		stats, err = exams.Stats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 0, stats.PendingReveals)
	})
}
