package users

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/config"
	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
	"github.com/haianhng/cafepos-backend/pkg/security"
)

type stubRepo struct {
	users map[uuid.UUID]*models.User
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: map[uuid.UUID]*models.User{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	s.users[user.ID] = &clone
	return user, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range s.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		out = append(out, *user)
	}
	return out, int64(len(out)), nil
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			user.Name = value.(string)
		case "phone":
			user.Phone = value.(*string)
		case "is_active":
			user.IsActive = value.(bool)
		case "role":
			user.Role = value.(enums.UserRole)
		case "password_hash":
			user.PasswordHash = value.(string)
		}
	}
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) (Service, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	svc, err := NewService(repo, testPasswordConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	return typed.Code()
}

func TestCreateIssuesTempPassword(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Name:  "Mai Tran",
		Email: "Mai@Cafe.Example",
		Role:  enums.UserRoleCashier,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.TempPassword == "" {
		t.Fatal("expected a temporary password")
	}
	if created.User.Email != "mai@cafe.example" {
		t.Fatalf("expected lowercased email, got %q", created.User.Email)
	}
	if !created.User.IsActive {
		t.Fatal("new accounts should start active")
	}

	stored := repo.users[created.User.ID]
	if stored.PasswordHash == created.TempPassword {
		t.Fatal("password must be stored hashed")
	}
	ok, err := security.VerifyPassword(created.TempPassword, stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("temp password should verify against the stored hash, ok=%v err=%v", ok, err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	input := CreateInput{Name: "Mai Tran", Email: "mai@cafe.example", Role: enums.UserRoleStaff}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), input); errCode(t, err) != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"missing name", CreateInput{Email: "x@y.example", Role: enums.UserRoleStaff}},
		{"bad email", CreateInput{Name: "X", Email: "not-an-email", Role: enums.UserRoleStaff}},
		{"bad role", CreateInput{Name: "X", Email: "x@y.example", Role: enums.UserRole("owner")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			if errCode(t, err) != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Name: "Mai Tran", Email: "mai@cafe.example", Role: enums.UserRoleStaff,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inactive := false
	updated, err := svc.Update(context.Background(), UpdateInput{ID: created.User.ID, IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected account deactivated")
	}
	if updated.Name != "Mai Tran" {
		t.Fatalf("name should be untouched, got %q", updated.Name)
	}
}

func TestUpdateRole(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Name: "Mai Tran", Email: "mai@cafe.example", Role: enums.UserRoleStaff,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.UpdateRole(context.Background(), UpdateRoleInput{ID: created.User.ID, Role: enums.UserRoleManager})
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if updated.Role != enums.UserRoleManager {
		t.Fatalf("expected manager, got %s", updated.Role)
	}

	if _, err := svc.UpdateRole(context.Background(), UpdateRoleInput{ID: created.User.ID, Role: enums.UserRole("boss")}); errCode(t, err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Name: "Mai Tran", Email: "mai@cafe.example", Role: enums.UserRoleStaff,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          created.User.ID,
		CurrentPassword: "wrong-password",
		NewPassword:     "a-new-password",
	})
	if errCode(t, err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          created.User.ID,
		CurrentPassword: created.TempPassword,
		NewPassword:     "short",
	})
	if errCode(t, err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          created.User.ID,
		CurrentPassword: created.TempPassword,
		NewPassword:     "a-new-password",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	ok, err := security.VerifyPassword("a-new-password", repo.users[created.User.ID].PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new password should verify, ok=%v err=%v", ok, err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Name: "Mai Tran", Email: "mai@cafe.example", Role: enums.UserRoleStaff,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	reset, err := svc.ResetPassword(context.Background(), created.User.ID)
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if reset.TempPassword == created.TempPassword {
		t.Fatal("reset should mint a fresh password")
	}

	ok, err := security.VerifyPassword(created.TempPassword, repo.users[created.User.ID].PasswordHash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Fatal("old password should no longer verify")
	}
	ok, err = security.VerifyPassword(reset.TempPassword, repo.users[created.User.ID].PasswordHash)
	if err != nil || !ok {
		t.Fatalf("reset password should verify, ok=%v err=%v", ok, err)
	}

	if _, err := svc.ResetPassword(context.Background(), uuid.New()); errCode(t, err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEmailNormalization(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(context.Background(), CreateInput{
		Name: "A", Email: "  Staff@Cafe.Example ", Role: enums.UserRoleStaff,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(context.Background(), CreateInput{
		Name: "B", Email: strings.ToUpper("staff@cafe.example"), Role: enums.UserRoleStaff,
	})
	if errCode(t, err) != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on case-insensitive duplicate, got %v", err)
	}
}
