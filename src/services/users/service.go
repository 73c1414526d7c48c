package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"Backend-ShiftFilter/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email address already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account has not yet been approved by an admin")
	ErrCannotDeleteSelf   = errors.New("you cannot delete your own admin account")
	ErrInvalidID          = errors.New("invalid user id")

	// ErrAdminExists is returned by a Store when a second admin would be inserted.
	ErrAdminExists = errors.New("an admin account already exists")
)

// Store persistence ของผู้ใช้
type Store interface {
	Count(ctx context.Context) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	SetApproved(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, approved bool) ([]models.User, error)
}

// Service handles signup, login and the admin approval workflow.
type Service struct {
	store Store
	now   func() time.Time

	signupMu sync.Mutex // Count กับ Insert ต้องไม่สลับกันระหว่าง signup
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Signup creates an account. The very first account becomes an approved
// admin; every later account waits for approval.
func (s *Service) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.signupMu.Lock()
	defer s.signupMu.Unlock()

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	first := count == 0

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      first,
		IsApproved:   first,
		CreatedAt:    s.now(),
	}
	err = s.store.Insert(ctx, user)
	if first && errors.Is(err, ErrAdminExists) {
		// อีก instance สร้าง admin ไปก่อนแล้ว บัญชีนี้ต้องรออนุมัติ
		user.IsAdmin, user.IsApproved = false, false
		first = false
		err = s.store.Insert(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	zap.L().Info("user signed up", zap.String("email", email), zap.Bool("admin", first))
	return user, nil
}

// Authenticate checks the password and refuses accounts still pending approval.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsApproved {
		return nil, ErrNotApproved
	}
	return user, nil
}

// Get โหลดผู้ใช้ตาม id (hex)
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.store.FindByID(ctx, oid)
}

// List คืนรายชื่อผู้ใช้ที่รออนุมัติ (ไม่รวม admin) และที่อนุมัติแล้ว
func (s *Service) List(ctx context.Context) (*models.UserList, error) {
	pending, err := s.store.List(ctx, false)
	if err != nil {
		return nil, err
	}
	approved, err := s.store.List(ctx, true)
	if err != nil {
		return nil, err
	}

	out := &models.UserList{Pending: []models.User{}, Approved: approved}
	for _, u := range pending {
		if !u.IsAdmin {
			out.Pending = append(out.Pending, u)
		}
	}
	if out.Approved == nil {
		out.Approved = []models.User{}
	}
	return out, nil
}

// Approve marks a pending account as approved.
func (s *Service) Approve(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetApproved(ctx, user.ID); err != nil {
		return nil, err
	}
	user.IsApproved = true
	zap.L().Info("user approved", zap.String("email", user.Email))
	return user, nil
}

// Delete removes an account. Admins cannot delete themselves.
func (s *Service) Delete(ctx context.Context, actorID, id string) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID.Hex() == actorID {
		return nil, ErrCannotDeleteSelf
	}
	if err := s.store.Delete(ctx, user.ID); err != nil {
		return nil, err
	}
	zap.L().Info("user deleted", zap.String("email", user.Email))
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
