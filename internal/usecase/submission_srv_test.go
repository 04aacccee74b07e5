package usecase

import (
	"context"
	"testing"
	"time"

	"bootcamp-platform/internal/data/entity"
	"bootcamp-platform/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type submissionFixture struct {
	svc      SubmissionService
	user     *entity.User
	reviewer *entity.User
	bootcamp *entity.Bootcamp
	subs     *fakeSubmissionRepo
	fs       *fakeStorage
	notifier *fakeNotifier
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	repo, users, bootcamps, _, subs := newTestRepo()
	fs := &fakeStorage{}
	notifier := &fakeNotifier{}
	svc := NewSubmissionService(repo, fs, notifier, zap.NewNop())

	user := &entity.User{
		Fullname:          "Ada Lovelace",
		Email:             "ada@example.com",
		Role:              entity.RoleUser,
		IsAccountVerified: true,
	}
	require.NoError(t, users.Create(context.Background(), user))

	reviewer := &entity.User{
		Fullname:        "Grace Hopper",
		Email:           "grace@example.com",
		Role:            entity.RoleAdmin,
		IsAdminVerified: true,
	}
	require.NoError(t, users.Create(context.Background(), reviewer))

	bootcamp := &entity.Bootcamp{
		Title:       "Go Backend Bootcamp",
		Description: "Twelve weeks of Go",
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
		CreatedBy:   reviewer.ID,
	}
	require.NoError(t, bootcamps.Create(context.Background(), bootcamp))

	return &submissionFixture{
		svc:      svc,
		user:     user,
		reviewer: reviewer,
		bootcamp: bootcamp,
		subs:     subs,
		fs:       fs,
		notifier: notifier,
	}
}

func (fx *submissionFixture) submit(t *testing.T, projectNumber int) error {
	t.Helper()
	_, err := fx.svc.Submit(context.Background(), fx.user.ID.Hex(), fx.bootcamp.ID.Hex(), projectNumber, testPDF())
	return err
}

func (fx *submissionFixture) review(t *testing.T, projectNumber int, status, feedback string) error {
	t.Helper()
	sub, err := fx.subs.FindBySlot(context.Background(), fx.user.ID, fx.bootcamp.ID, projectNumber)
	require.NoError(t, err)
	require.NotNil(t, sub)

	_, err = fx.svc.Review(context.Background(), fx.reviewer.ID.Hex(), sub.ID.Hex(), &request.ReviewSubmissionRequest{
		Status:   status,
		Feedback: feedback,
	})
	return err
}

func TestSubmitFirstProject(t *testing.T) {
	fx := newSubmissionFixture(t)

	resp, err := fx.svc.Submit(context.Background(), fx.user.ID.Hex(), fx.bootcamp.ID.Hex(), 1, testPDF())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.ProjectNumber)
	assert.Equal(t, entity.SubmissionPending, resp.Status)
	assert.NotEmpty(t, resp.FileURL)
	require.Len(t, fx.fs.pdfUploads, 1)

	// Only one slot is filled, so no org notification yet
	assert.Zero(t, fx.notifier.orgSubmissions)
	assert.Zero(t, fx.notifier.userConfirmations)

	// The row carries the denormalized submitter identity
	stored, _ := fx.subs.FindBySlot(context.Background(), fx.user.ID, fx.bootcamp.ID, 1)
	assert.Equal(t, "Ada Lovelace", stored.Name)
	assert.Equal(t, "ada@example.com", stored.Email)
}

func TestSubmitSecondProjectNotifies(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))
	require.NoError(t, fx.submit(t, 2))

	// Both slots present: org and user get notified
	assert.Equal(t, 1, fx.notifier.orgSubmissions)
	assert.Equal(t, 1, fx.notifier.userConfirmations)
}

func TestSubmitInvalidProjectNumber(t *testing.T) {
	fx := newSubmissionFixture(t)

	err := fx.submit(t, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projectNumber must be 1 or 2")
}

func TestSubmitMissingFile(t *testing.T) {
	fx := newSubmissionFixture(t)

	_, err := fx.svc.Submit(context.Background(), fx.user.ID.Hex(), fx.bootcamp.ID.Hex(), 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF file is required")
}

func TestCannotReuploadPendingSlot(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))

	err := fx.submit(t, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot re-upload this project unless it was rejected")
}

func TestBothSlotsPendingBlocksEveryUpload(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))
	require.NoError(t, fx.submit(t, 2))

	for _, n := range []int{1, 2} {
		err := fx.submit(t, n)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already submitted both projects")
	}
}

func TestApproveSubmission(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))
	require.NoError(t, fx.review(t, 1, "approved", ""))

	stored, _ := fx.subs.FindBySlot(context.Background(), fx.user.ID, fx.bootcamp.ID, 1)
	assert.Equal(t, entity.SubmissionApproved, stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, fx.reviewer.ID, *stored.ReviewedBy)
	assert.NotNil(t, stored.ReviewedAt)

	require.Len(t, fx.notifier.approved, 1)
	assert.Equal(t, 1, fx.notifier.approved[0])

	// One approved slot is not completion
	assert.Empty(t, fx.notifier.allApproved)
}

func TestApprovingBothProjectsSendsCompletionMail(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))
	require.NoError(t, fx.submit(t, 2))

	require.NoError(t, fx.review(t, 1, "approved", ""))
	assert.Empty(t, fx.notifier.allApproved)

	require.NoError(t, fx.review(t, 2, "approved", ""))
	require.Len(t, fx.notifier.allApproved, 1)
	assert.Equal(t, "ada@example.com", fx.notifier.allApproved[0])
}

func TestRejectUsesDefaultFeedback(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))
	require.NoError(t, fx.review(t, 1, "rejected", ""))

	stored, _ := fx.subs.FindBySlot(context.Background(), fx.user.ID, fx.bootcamp.ID, 1)
	assert.Equal(t, entity.SubmissionRejected, stored.Status)
	require.NotNil(t, stored.Feedback)
	assert.Equal(t, defaultRejectionFeedback, *stored.Feedback)

	require.Len(t, fx.notifier.rejectedFeedback, 1)
	assert.Equal(t, defaultRejectionFeedback, fx.notifier.rejectedFeedback[0])
}

func TestRejectKeepsReviewerFeedback(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))
	require.NoError(t, fx.review(t, 1, "rejected", "Missing tests"))

	stored, _ := fx.subs.FindBySlot(context.Background(), fx.user.ID, fx.bootcamp.ID, 1)
	require.NotNil(t, stored.Feedback)
	assert.Equal(t, "Missing tests", *stored.Feedback)
}

func TestResubmitAfterRejection(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))
	require.NoError(t, fx.review(t, 1, "rejected", "Missing tests"))

	firstFile := fx.fs.pdfUploads[0]

	require.NoError(t, fx.submit(t, 1))

	stored, _ := fx.subs.FindBySlot(context.Background(), fx.user.ID, fx.bootcamp.ID, 1)
	assert.Equal(t, entity.SubmissionPending, stored.Status)
	require.Len(t, fx.fs.pdfUploads, 2)
	assert.Equal(t, fx.fs.pdfUploads[1], stored.FilePublicID)

	// The rejected upload was released from storage
	require.Len(t, fx.fs.destroyedRaw, 1)
	assert.Equal(t, firstFile, fx.fs.destroyedRaw[0])
}

func TestResubmissionWithBothSlotsNotifiesAgain(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))
	require.NoError(t, fx.submit(t, 2))
	assert.Equal(t, 1, fx.notifier.orgSubmissions)

	require.NoError(t, fx.review(t, 1, "rejected", ""))
	require.NoError(t, fx.submit(t, 1))

	// Both slots are populated again, so the notification fires again
	assert.Equal(t, 2, fx.notifier.orgSubmissions)
	assert.Equal(t, 2, fx.notifier.userConfirmations)
}

func TestReviewValidation(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 1))

	err := fx.review(t, 1, "maybe", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestReviewUnknownSubmission(t *testing.T) {
	fx := newSubmissionFixture(t)

	_, err := fx.svc.Review(context.Background(), fx.reviewer.ID.Hex(), bson.NewObjectID().Hex(), &request.ReviewSubmissionRequest{
		Status: "approved",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submission not found")
}

func TestSubmitUnknownBootcamp(t *testing.T) {
	fx := newSubmissionFixture(t)

	_, err := fx.svc.Submit(context.Background(), fx.user.ID.Hex(), bson.NewObjectID().Hex(), 1, testPDF())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootcamp not found")
}

func TestListMySubmissionsOrderedBySlot(t *testing.T) {
	fx := newSubmissionFixture(t)

	require.NoError(t, fx.submit(t, 2))
	require.NoError(t, fx.submit(t, 1))

	items, err := fx.svc.ListMine(context.Background(), fx.user.ID.Hex(), fx.bootcamp.ID.Hex())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ProjectNumber)
	assert.Equal(t, 2, items[1].ProjectNumber)
}
