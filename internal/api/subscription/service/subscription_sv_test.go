package subscriptionService

import (
	authRepository "SpendScan/internal/api/auth/repository"
	"SpendScan/internal/api/subscription"
	subscriptionRepository "SpendScan/internal/api/subscription/repository"
	"SpendScan/internal/entity"
	"SpendScan/pkg/utils"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeSubscriptionStore struct {
	requests map[string]entity.SubscriptionRequest
}

func (f *fakeSubscriptionStore) CreateRequest(_ context.Context, request entity.SubscriptionRequest) error {
	f.requests[request.ID] = request
	return nil
}

func (f *fakeSubscriptionStore) GetRequestByID(_ context.Context, id string) (entity.SubscriptionRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return entity.SubscriptionRequest{}, subscription.ErrRequestNotFound
	}
	return request, nil
}

func (f *fakeSubscriptionStore) GetRequestsByUserID(_ context.Context, userID string) ([]entity.SubscriptionRequest, error) {
	var out []entity.SubscriptionRequest
	for _, request := range f.requests {
		if request.UserID == userID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionStore) GetPendingRequests(_ context.Context) ([]entity.SubscriptionRequest, error) {
	var out []entity.SubscriptionRequest
	for _, request := range f.requests {
		if request.IsPending() {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionStore) HasPendingRequest(_ context.Context, userID string) (bool, error) {
	for _, request := range f.requests {
		if request.UserID == userID && request.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubscriptionStore) UpdateRequestStatus(_ context.Context, id string, status string, reviewedBy string, reviewedAt time.Time) error {
	request, ok := f.requests[id]
	if !ok || !request.IsPending() {
		return subscription.ErrRequestAlreadyReviewed
	}
	request.Status = status
	request.ReviewedBy = reviewedBy
	request.ReviewedAt = reviewedAt
	f.requests[id] = request
	return nil
}

type fakeSubscriptionRepo struct {
	store *fakeSubscriptionStore
}

func (f *fakeSubscriptionRepo) NewClient(_ bool) (subscriptionRepository.Client, error) {
	return subscriptionRepository.Client{
		Subscriptions: f.store,
		Commit:        func() error { return nil },
		Rollback:      func() error { return nil },
	}, nil
}

type fakeUserStore struct {
	users map[string]entity.User
}

func (f *fakeUserStore) CreateUser(_ context.Context, user entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return entity.User{}, errors.New("user not found")
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entity.User{}, errors.New("user not found")
}

func (f *fakeUserStore) UpdateUserName(_ context.Context, id string, name string) error {
	user := f.users[id]
	user.Name = name
	f.users[id] = user
	return nil
}

func (f *fakeUserStore) UpdateUserPassword(_ context.Context, email string, password string) error {
	return nil
}

func (f *fakeUserStore) UpdateUserPlan(_ context.Context, id string, plan string, premiumExpiresAt time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	user.Plan = plan
	user.PremiumExpiresAt = premiumExpiresAt
	f.users[id] = user
	return nil
}

func (f *fakeUserStore) UpdateProfilePhoto(_ context.Context, id string, photoURL string) error {
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeAuthRepo struct {
	store *fakeUserStore
}

func (f *fakeAuthRepo) NewClient(_ bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeS3 struct {
	uploads []string
	deletes []string
}

func (f *fakeS3) UploadFile(file *multipart.FileHeader, folder string) (string, error) {
	url := "https://bucket.s3.amazonaws.com/" + folder + "/" + file.Filename
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeS3) PresignUrl(fileUrl string) (string, error) {
	return fileUrl + "?signed", nil
}

func (f *fakeS3) DeleteFile(fileName string) error {
	f.deletes = append(f.deletes, fileName)
	return nil
}

type fakeMailer struct {
	results []bool
}

func (f *fakeMailer) SendOTPMail(_ string, _ string) error {
	return nil
}

func (f *fakeMailer) SendSubscriptionResultMail(_ string, _ string, approved bool) error {
	f.results = append(f.results, approved)
	return nil
}

type fixture struct {
	service ISubscriptionService
	store   *fakeSubscriptionStore
	users   *fakeUserStore
	s3      *fakeS3
	mailer  *fakeMailer
}

func newFixture() *fixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := &fakeSubscriptionStore{requests: make(map[string]entity.SubscriptionRequest)}
	users := &fakeUserStore{users: make(map[string]entity.User)}
	s3Client := &fakeS3{}
	mailer := &fakeMailer{}

	service := NewSubscriptionService(
		log,
		&fakeSubscriptionRepo{store: store},
		&fakeAuthRepo{store: users},
		s3Client,
		mailer,
		utils.New(),
	)

	return &fixture{service: service, store: store, users: users, s3: s3Client, mailer: mailer}
}

func screenshotFile() *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "payment.png",
		Size:     2048,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
	}
}

func TestCreateRequest(t *testing.T) {
	t.Run("creates a pending request with invoice and screenshot URL", func(t *testing.T) {
		f := newFixture()

		request, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "monthly"}, screenshotFile())
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}

		if request.Amount != entity.MonthlyPlanPrice {
			t.Errorf("Amount = %v, want %v", request.Amount, entity.MonthlyPlanPrice)
		}
		if !strings.HasPrefix(request.InvoiceNumber, "INV-") {
			t.Errorf("InvoiceNumber = %q, want INV- prefix", request.InvoiceNumber)
		}
		if request.Status != string(entity.SubscriptionPending) {
			t.Errorf("Status = %q, want pending", request.Status)
		}
		if len(f.s3.uploads) != 1 || !strings.Contains(f.s3.uploads[0], "payment-screenshots") {
			t.Errorf("screenshot not uploaded to payment-screenshots folder: %v", f.s3.uploads)
		}
		if _, ok := f.store.requests[request.ID]; !ok {
			t.Error("request not persisted")
		}
	})

	t.Run("invalid plan", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "weekly"}, screenshotFile())
		if !errors.Is(err, subscription.ErrInvalidPlan) {
			t.Errorf("err = %v, want ErrInvalidPlan", err)
		}
	})

	t.Run("missing screenshot", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "monthly"}, nil)
		if !errors.Is(err, subscription.ErrScreenshotRequired) {
			t.Errorf("err = %v, want ErrScreenshotRequired", err)
		}
	})

	t.Run("non-image screenshot", func(t *testing.T) {
		f := newFixture()

		file := screenshotFile()
		file.Header.Set("Content-Type", "application/pdf")

		_, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "monthly"}, file)
		if !errors.Is(err, subscription.ErrInvalidFileType) {
			t.Errorf("err = %v, want ErrInvalidFileType", err)
		}
	})

	t.Run("second request while one is pending", func(t *testing.T) {
		f := newFixture()

		if _, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "monthly"}, screenshotFile()); err != nil {
			t.Fatalf("first CreateRequest returned error: %v", err)
		}

		_, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "yearly"}, screenshotFile())
		if !errors.Is(err, subscription.ErrPendingRequestExists) {
			t.Errorf("err = %v, want ErrPendingRequestExists", err)
		}
	})
}

func TestApproveRequest(t *testing.T) {
	t.Run("approval upgrades the user and sets expiry from now", func(t *testing.T) {
		f := newFixture()
		f.users.users["u1"] = entity.User{ID: "u1", Email: "u1@mail.com", Plan: string(entity.PlanFree)}

		request, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "monthly"}, screenshotFile())
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}

		before := time.Now()
		approved, err := f.service.ApproveRequest(context.Background(), request.ID, "admin-1")
		if err != nil {
			t.Fatalf("ApproveRequest returned error: %v", err)
		}

		if approved.Status != string(entity.SubscriptionApproved) {
			t.Errorf("Status = %q, want approved", approved.Status)
		}
		if approved.ReviewedBy != "admin-1" {
			t.Errorf("ReviewedBy = %q, want admin-1", approved.ReviewedBy)
		}

		user := f.users.users["u1"]
		if user.Plan != string(entity.PlanPremium) {
			t.Errorf("user plan = %q, want premium", user.Plan)
		}

		wantExpiry := before.Add(entity.MonthlyPlanDuration)
		if user.PremiumExpiresAt.Before(wantExpiry.Add(-time.Minute)) || user.PremiumExpiresAt.After(wantExpiry.Add(time.Minute)) {
			t.Errorf("PremiumExpiresAt = %v, want about %v", user.PremiumExpiresAt, wantExpiry)
		}

		if len(f.mailer.results) != 1 || !f.mailer.results[0] {
			t.Errorf("mailer results = %v, want one approval mail", f.mailer.results)
		}
	})

	t.Run("approval extends an active premium plan from its current expiry", func(t *testing.T) {
		f := newFixture()

		currentExpiry := time.Now().Add(10 * 24 * time.Hour)
		f.users.users["u1"] = entity.User{
			ID:               "u1",
			Email:            "u1@mail.com",
			Plan:             string(entity.PlanPremium),
			PremiumExpiresAt: currentExpiry,
		}

		request, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "monthly"}, screenshotFile())
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}

		if _, err := f.service.ApproveRequest(context.Background(), request.ID, "admin-1"); err != nil {
			t.Fatalf("ApproveRequest returned error: %v", err)
		}

		user := f.users.users["u1"]
		wantExpiry := currentExpiry.Add(entity.MonthlyPlanDuration)
		if !user.PremiumExpiresAt.Equal(wantExpiry) {
			t.Errorf("PremiumExpiresAt = %v, want %v", user.PremiumExpiresAt, wantExpiry)
		}
	})

	t.Run("already reviewed request", func(t *testing.T) {
		f := newFixture()
		f.users.users["u1"] = entity.User{ID: "u1", Email: "u1@mail.com", Plan: string(entity.PlanFree)}

		request, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "monthly"}, screenshotFile())
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}

		if _, err := f.service.ApproveRequest(context.Background(), request.ID, "admin-1"); err != nil {
			t.Fatalf("first ApproveRequest returned error: %v", err)
		}

		if _, err := f.service.ApproveRequest(context.Background(), request.ID, "admin-2"); !errors.Is(err, subscription.ErrRequestAlreadyReviewed) {
			t.Errorf("err = %v, want ErrRequestAlreadyReviewed", err)
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture()

		if _, err := f.service.ApproveRequest(context.Background(), "missing", "admin-1"); !errors.Is(err, subscription.ErrRequestNotFound) {
			t.Errorf("err = %v, want ErrRequestNotFound", err)
		}
	})
}

func TestRejectRequest(t *testing.T) {
	f := newFixture()
	f.users.users["u1"] = entity.User{ID: "u1", Email: "u1@mail.com", Plan: string(entity.PlanFree)}

	request, err := f.service.CreateRequest(context.Background(), "u1", subscription.CreateSubscriptionRequest{PlanType: "yearly"}, screenshotFile())
	if err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}

	rejected, err := f.service.RejectRequest(context.Background(), request.ID, "admin-1")
	if err != nil {
		t.Fatalf("RejectRequest returned error: %v", err)
	}

	if rejected.Status != string(entity.SubscriptionRejected) {
		t.Errorf("Status = %q, want rejected", rejected.Status)
	}

	user := f.users.users["u1"]
	if user.Plan != string(entity.PlanFree) {
		t.Errorf("rejection must not change the user plan, got %q", user.Plan)
	}

	if len(f.mailer.results) != 1 || f.mailer.results[0] {
		t.Errorf("mailer results = %v, want one rejection mail", f.mailer.results)
	}

	if _, err := f.service.RejectRequest(context.Background(), request.ID, "admin-2"); !errors.Is(err, subscription.ErrRequestAlreadyReviewed) {
		t.Errorf("second review err = %v, want ErrRequestAlreadyReviewed", err)
	}
}
