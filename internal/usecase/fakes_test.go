package usecase

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"bootcamp-platform/internal/data/entity"
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/pkg/storage"
	"bootcamp-platform/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// In-memory repository fakes shared by the service tests. They mirror the
// query semantics of the real repositories, including expiry filters and
// unique-index violations.

func duplicateKeyErr() error {
	return mongo.CommandError{Code: 11000, Message: "E11000 duplicate key error"}
}

// ---------------- user repo ----------------

type fakeUserRepo struct {
	users map[bson.ObjectID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[bson.ObjectID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return duplicateKeyErr()
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id bson.ObjectID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByVerificationToken(_ context.Context, code string) (*entity.User, error) {
	for _, u := range f.users {
		if u.VerificationToken != nil && *u.VerificationToken == code &&
			u.VerificationTokenExpiresAt != nil && u.VerificationTokenExpiresAt.After(time.Now()) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindPendingAdmin(_ context.Context, email, code string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.Role == entity.RoleAdmin && !u.IsAdminVerified &&
			u.VerificationToken != nil && *u.VerificationToken == code &&
			u.VerificationTokenExpiresAt != nil && u.VerificationTokenExpiresAt.After(time.Now()) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByResetToken(_ context.Context, token string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token &&
			u.ResetPasswordExpiresAt != nil && u.ResetPasswordExpiresAt.After(time.Now()) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByBootcamp(_ context.Context, bootcampID bson.ObjectID) ([]*entity.User, error) {
	var result []*entity.User
	for _, u := range f.users {
		for _, id := range u.Bootcamps {
			if id == bootcampID {
				result = append(result, u)
				break
			}
		}
	}
	return result, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) AddBootcamp(_ context.Context, userID, bootcampID bson.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	for _, id := range u.Bootcamps {
		if id == bootcampID {
			return nil
		}
	}
	u.Bootcamps = append(u.Bootcamps, bootcampID)
	return nil
}

// ---------------- bootcamp repo ----------------

type fakeBootcampRepo struct {
	bootcamps map[bson.ObjectID]*entity.Bootcamp
	users     *fakeUserRepo
}

func newFakeBootcampRepo(users *fakeUserRepo) *fakeBootcampRepo {
	return &fakeBootcampRepo{
		bootcamps: make(map[bson.ObjectID]*entity.Bootcamp),
		users:     users,
	}
}

func (f *fakeBootcampRepo) Create(_ context.Context, bootcamp *entity.Bootcamp) error {
	if bootcamp.ID.IsZero() {
		bootcamp.ID = bson.NewObjectID()
	}
	bootcamp.CreatedAt = time.Now()
	bootcamp.UpdatedAt = time.Now()
	f.bootcamps[bootcamp.ID] = bootcamp
	return nil
}

func (f *fakeBootcampRepo) FindByID(_ context.Context, id bson.ObjectID) (*entity.Bootcamp, error) {
	if b, ok := f.bootcamps[id]; ok {
		return b, nil
	}
	return nil, nil
}

func (f *fakeBootcampRepo) FindAllWithCreator(_ context.Context, limit, offset int) ([]*repository.BootcampWithCreator, error) {
	all := make([]*entity.Bootcamp, 0, len(f.bootcamps))
	for _, b := range f.bootcamps {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	result := make([]*repository.BootcampWithCreator, 0, end-offset)
	for _, b := range all[offset:end] {
		item := &repository.BootcampWithCreator{Bootcamp: b}
		if f.users != nil {
			item.Creator = f.users.users[b.CreatedBy]
		}
		result = append(result, item)
	}
	return result, nil
}

func (f *fakeBootcampRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.bootcamps)), nil
}

func (f *fakeBootcampRepo) Update(_ context.Context, bootcamp *entity.Bootcamp) error {
	bootcamp.UpdatedAt = time.Now()
	f.bootcamps[bootcamp.ID] = bootcamp
	return nil
}

func (f *fakeBootcampRepo) Delete(_ context.Context, id bson.ObjectID) error {
	delete(f.bootcamps, id)
	return nil
}

// ---------------- registration repo ----------------

type fakeRegistrationRepo struct {
	registrations map[bson.ObjectID]*entity.Registration
	bootcamps     *fakeBootcampRepo
}

func newFakeRegistrationRepo(bootcamps *fakeBootcampRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: make(map[bson.ObjectID]*entity.Registration),
		bootcamps:     bootcamps,
	}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, registration *entity.Registration) error {
	for _, r := range f.registrations {
		if r.UserID == registration.UserID && r.BootcampID == registration.BootcampID {
			return duplicateKeyErr()
		}
	}
	if registration.ID.IsZero() {
		registration.ID = bson.NewObjectID()
	}
	registration.CreatedAt = time.Now()
	registration.UpdatedAt = time.Now()
	registration.RegisteredAt = time.Now()
	f.registrations[registration.ID] = registration
	return nil
}

func (f *fakeRegistrationRepo) FindByUserAndBootcamp(_ context.Context, userID, bootcampID bson.ObjectID) (*entity.Registration, error) {
	for _, r := range f.registrations {
		if r.UserID == userID && r.BootcampID == bootcampID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrationRepo) FindByUser(_ context.Context, userID bson.ObjectID) ([]*repository.RegistrationWithBootcamp, error) {
	var result []*repository.RegistrationWithBootcamp
	for _, r := range f.registrations {
		if r.UserID != userID {
			continue
		}
		item := &repository.RegistrationWithBootcamp{Registration: r}
		if f.bootcamps != nil {
			item.Bootcamp = f.bootcamps.bootcamps[r.BootcampID]
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Registration.RegisteredAt.After(result[j].Registration.RegisteredAt)
	})
	return result, nil
}

// ---------------- submission repo ----------------

type fakeSubmissionRepo struct {
	submissions map[bson.ObjectID]*entity.ProjectSubmission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[bson.ObjectID]*entity.ProjectSubmission)}
}

func (f *fakeSubmissionRepo) Create(_ context.Context, submission *entity.ProjectSubmission) error {
	for _, s := range f.submissions {
		if s.UserID == submission.UserID && s.BootcampID == submission.BootcampID &&
			s.ProjectNumber == submission.ProjectNumber {
			return duplicateKeyErr()
		}
	}
	if submission.ID.IsZero() {
		submission.ID = bson.NewObjectID()
	}
	submission.CreatedAt = time.Now()
	submission.UpdatedAt = time.Now()
	f.submissions[submission.ID] = submission
	return nil
}

func (f *fakeSubmissionRepo) FindByID(_ context.Context, id bson.ObjectID) (*entity.ProjectSubmission, error) {
	if s, ok := f.submissions[id]; ok {
		return s, nil
	}
	return nil, nil
}

func (f *fakeSubmissionRepo) FindByUserAndBootcamp(_ context.Context, userID, bootcampID bson.ObjectID) ([]*entity.ProjectSubmission, error) {
	var result []*entity.ProjectSubmission
	for _, s := range f.submissions {
		if s.UserID == userID && s.BootcampID == bootcampID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProjectNumber < result[j].ProjectNumber
	})
	return result, nil
}

func (f *fakeSubmissionRepo) FindBySlot(_ context.Context, userID, bootcampID bson.ObjectID, projectNumber int) (*entity.ProjectSubmission, error) {
	for _, s := range f.submissions {
		if s.UserID == userID && s.BootcampID == bootcampID && s.ProjectNumber == projectNumber {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubmissionRepo) Update(_ context.Context, submission *entity.ProjectSubmission) error {
	submission.UpdatedAt = time.Now()
	f.submissions[submission.ID] = submission
	return nil
}

// ---------------- file storage ----------------

type fakeStorage struct {
	mu           sync.Mutex
	imageUploads int
	pdfUploads   []string
	destroyed    []string
	destroyedRaw []string
}

func (f *fakeStorage) UploadImage(_ context.Context, file io.Reader) (*storage.StoredFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageUploads++
	id := bson.NewObjectID().Hex()
	return &storage.StoredFile{
		URL:      "https://cdn.test/images/" + id + ".jpg",
		PublicID: "images/" + id,
	}, nil
}

func (f *fakeStorage) UploadPDF(_ context.Context, file io.Reader, publicID string) (*storage.StoredFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pdfUploads = append(f.pdfUploads, publicID)
	return &storage.StoredFile{
		URL:      "https://cdn.test/raw/" + publicID + ".pdf",
		PublicID: publicID,
	}, nil
}

func (f *fakeStorage) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func (f *fakeStorage) DestroyRaw(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyedRaw = append(f.destroyedRaw, publicID)
	return nil
}

// ---------------- notifier ----------------

// fakeNotifier records calls synchronously so tests can assert on exactly
// which notifications a mutation triggered.
type fakeNotifier struct {
	verificationCodes []string
	approvalRequests  []string
	welcomes          []string
	resetURLs         []string
	resetSuccesses    []string
	registrations     []string
	endedRecipients   []string
	orgSubmissions    int
	userConfirmations int
	approved          []int
	rejectedFeedback  []string
	allApproved       []string
}

func (f *fakeNotifier) SendVerificationEmail(email, code string) {
	f.verificationCodes = append(f.verificationCodes, code)
}

func (f *fakeNotifier) SendAdminApprovalRequest(fullname, email, code string) {
	f.approvalRequests = append(f.approvalRequests, email)
}

func (f *fakeNotifier) SendWelcomeEmail(email, fullname string) {
	f.welcomes = append(f.welcomes, email)
}

func (f *fakeNotifier) SendPasswordResetEmail(email, resetURL string) {
	f.resetURLs = append(f.resetURLs, resetURL)
}

func (f *fakeNotifier) SendResetSuccessEmail(email string) {
	f.resetSuccesses = append(f.resetSuccesses, email)
}

func (f *fakeNotifier) SendRegistrationConfirmation(email, fullname, bootcampTitle string, startDate time.Time, endDate *time.Time) {
	f.registrations = append(f.registrations, email)
}

func (f *fakeNotifier) SendBootcampEndedEmail(email, fullname, bootcampTitle string) {
	f.endedRecipients = append(f.endedRecipients, email)
}

func (f *fakeNotifier) SendOrgProjectSubmission(fullname, email, bootcampTitle string, submissions []*entity.ProjectSubmission) {
	f.orgSubmissions++
}

func (f *fakeNotifier) SendUserProjectConfirmation(email, fullname, bootcampTitle string) {
	f.userConfirmations++
}

func (f *fakeNotifier) SendProjectApprovedEmail(email, fullname, bootcampTitle string, projectNumber int) {
	f.approved = append(f.approved, projectNumber)
}

func (f *fakeNotifier) SendProjectRejectedEmail(email, fullname, bootcampTitle string, projectNumber int, feedback string) {
	f.rejectedFeedback = append(f.rejectedFeedback, feedback)
}

func (f *fakeNotifier) SendAllProjectsApprovedEmail(email, fullname, bootcampTitle string) {
	f.allApproved = append(f.allApproved, email)
}

// ---------------- shared fixtures ----------------

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func testPDF() *utils.UploadedFile {
	return &utils.UploadedFile{
		File:        memFile{bytes.NewReader([]byte("%PDF-1.4 test"))},
		Filename:    "project.pdf",
		ContentType: "application/pdf",
		Size:        13,
	}
}

func testImage() *utils.UploadedFile {
	return &utils.UploadedFile{
		File:        memFile{bytes.NewReader([]byte("fake-image-bytes"))},
		Filename:    "cover.jpg",
		ContentType: "image/jpeg",
		Size:        16,
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Name:      "bootcamp-platform",
			Debug:     true,
			ClientURL: "https://app.test",
		},
		JWT: utils.JWTConfig{
			Secret:      "test-secret-test-secret-test-sec",
			ExpiryHours: 72,
		},
		Verification: utils.VerificationConfig{
			CodeExpiryHours: 24,
			ResetExpiryMins: 60,
			CodeLength:      6,
		},
		Company: utils.CompanyConfig{
			Email: "admissions@company.test",
		},
	}
}

func newTestRepo() (*repository.Repository, *fakeUserRepo, *fakeBootcampRepo, *fakeRegistrationRepo, *fakeSubmissionRepo) {
	users := newFakeUserRepo()
	bootcamps := newFakeBootcampRepo(users)
	registrations := newFakeRegistrationRepo(bootcamps)
	submissions := newFakeSubmissionRepo()

	repo := &repository.Repository{
		User:         users,
		Bootcamp:     bootcamps,
		Registration: registrations,
		Submission:   submissions,
	}
	return repo, users, bootcamps, registrations, submissions
}
