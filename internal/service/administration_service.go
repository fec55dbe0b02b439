package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/internal/repository"
	"github.com/noah-isme/achievement-console/pkg/arabic"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
	"github.com/noah-isme/achievement-console/pkg/httpclient"
)

// Administration notices.
const (
	NoticeUserCreated   = "تمت الإضافة بنجاح"
	NoticeUserUpdated   = "تم تعديل المستخدم بنجاح"
	NoticeUserDeleted   = "تم حذف المستخدم"
	NoticeStatusUpdated = "تم تحديث الحالة"
	NoticeSectorSaved   = "تم حفظ القطاع"
	NoticeSectorDeleted = "تم حذف القطاع"
)

const minPasswordLength = 8

type administrationRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, payload repository.UserPayload) error
	UpdateUser(ctx context.Context, id string, payload repository.UserPayload) error
	UpdateUserStatus(ctx context.Context, id string, status models.UserStatus) error
	DeleteUser(ctx context.Context, id string) error
	ListSectors(ctx context.Context) ([]models.Sector, error)
	CreateSector(ctx context.Context, name string) error
	UpdateSector(ctx context.Context, id, name string) error
	DeleteSector(ctx context.Context, id string) error
}

// CreateUserRequest is the add-user form.
type CreateUserRequest struct {
	FullName string          `json:"fullname" validate:"required"`
	Username string          `json:"username" validate:"required"`
	Password string          `json:"password" validate:"required,strongpassword"`
	Role     models.UserRole `json:"role" validate:"required,oneof=admin user"`
	Sector   string          `json:"sector" validate:"required"`
}

// UpdateUserRequest is the edit-user form.
type UpdateUserRequest struct {
	FullName string            `json:"fullname" validate:"required"`
	Username string            `json:"username" validate:"required"`
	Role     models.UserRole   `json:"role" validate:"required,oneof=admin user"`
	Sector   string            `json:"sector" validate:"required"`
	Status   models.UserStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

// SectorRequest is the sector form.
type SectorRequest struct {
	Sector string `json:"sector" validate:"required"`
}

// AdministrationView is the administration screen state.
type AdministrationView struct {
	Users      []models.UserView `json:"users"`
	Sectors    []models.Sector   `json:"sectors"`
	TotalUsers int               `json:"totalUsers"`
	Filter     UserFilterView    `json:"filter"`
}

// UserFilterView echoes the applied filters.
type UserFilterView struct {
	Search string `json:"search"`
	Sector string `json:"sector"`
}

// createFieldMessages are checked in form order; the first failing field wins.
var createFieldMessages = map[string]map[string]string{
	"FullName": {"required": "الاسم الكامل مطلوب"},
	"Username": {"required": "اسم المستخدم مطلوب"},
	"Password": {"required": "كلمة المرور مطلوبة", "strongpassword": "كلمة المرور ضعيفة"},
	"Role":     {"required": "اختر الدور", "oneof": "اختر الدور"},
	"Sector":   {"required": "اختر القطاع"},
}

const (
	msgEditIncomplete = "املأ جميع الحقول المطلوبة قبل الحفظ"
	msgSectorRequired = "اسم القطاع مطلوب"
	msgUserNotFound   = "المستخدم غير موجود"
	msgLoadUsers      = "خطأ في جلب المستخدمين"
	msgLoadSectors    = "خطأ في جلب القطاعات"
	msgCreateUser     = "خطأ أثناء الإضافة"
	msgUpdateUser     = "خطأ أثناء تعديل المستخدم"
	msgUpdateStatus   = "خطأ في تحديث الحالة"
	msgDeleteUser     = "خطأ أثناء الحذف"
	msgCreateSector   = "خطأ أثناء إضافة القطاع"
	msgUpdateSector   = "خطأ في تعديل القطاع"
	msgDeleteSector   = "خطأ في الحذف"
	msgPasswordPolicy = "8 أحرف على الأقل، حرف كبير، حرف صغير، رقم، رمز خاص"
)

const strongPasswordTag = "strongpassword"

// AdministrationService backs the administration screen.
type AdministrationService struct {
	repo      administrationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdministrationService creates an AdministrationService. The validator
// gains the strongpassword tag.
func NewAdministrationService(repo administrationRepository, validate *validator.Validate, logger *zap.Logger) (*AdministrationService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if err := validate.RegisterValidation(strongPasswordTag, func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register %s validation: %w", strongPasswordTag, err)
	}
	return &AdministrationService{repo: repo, validator: validate, logger: logger.With(zap.String("component", "administration"))}, nil
}

// StrongPassword reports whether p has at least eight characters including a
// lower case letter, an upper case letter, a digit and a symbol.
func StrongPassword(p string) bool {
	if utf8.RuneCountInString(p) < minPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// Load fetches sectors then users and applies the filter.
func (s *AdministrationService) Load(ctx context.Context, filter models.UserFilter) (*AdministrationView, error) {
	rawSectors, err := s.repo.ListSectors(ctx)
	if err != nil {
		s.logger.Error("failed to load sectors", zap.Error(err))
		return nil, adminFailure(err, msgLoadSectors)
	}
	sectors := NormalizeSectors(rawSectors)

	rawUsers, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to load users", zap.Error(err))
		return nil, adminFailure(err, msgLoadUsers)
	}
	users := NormalizeUsers(rawUsers, sectors)

	return &AdministrationView{
		Users:      FilterUsers(users, filter),
		Sectors:    sectors,
		TotalUsers: len(users),
		Filter:     UserFilterView{Search: filter.Search, Sector: filter.Sector},
	}, nil
}

// NormalizeSectors drops sectors without a name.
func NormalizeSectors(sectors []models.Sector) []models.Sector {
	out := make([]models.Sector, 0, len(sectors))
	for _, sec := range sectors {
		if strings.TrimSpace(sec.Sector) == "" {
			continue
		}
		out = append(out, models.Sector{ID: sec.ID, Sector: sec.Sector})
	}
	return out
}

// NormalizeUsers drops users without a username or full name and resolves
// each sector reference to an id and a display name.
func NormalizeUsers(users []models.User, sectors []models.Sector) []models.UserView {
	names := make(map[string]string, len(sectors))
	for _, sec := range sectors {
		names[sec.ID] = sec.Sector
	}
	out := make([]models.UserView, 0, len(users))
	for _, u := range users {
		if u.Username == "" || u.FullName == "" {
			continue
		}
		sectorName := models.UnknownSectorName
		if u.Sector.Embedded {
			if u.Sector.Name != "" {
				sectorName = u.Sector.Name
			}
		} else if name, ok := names[u.Sector.ID]; ok {
			sectorName = name
		}
		out = append(out, models.UserView{
			ID:         u.ID,
			FullName:   u.FullName,
			Username:   u.Username,
			Role:       u.Role,
			Sector:     u.Sector.ID,
			SectorName: sectorName,
			Status:     u.Status,
		})
	}
	return out
}

// FilterUsers keeps users in the selected sector whose full name contains the
// search term, ignoring case.
func FilterUsers(users []models.UserView, filter models.UserFilter) []models.UserView {
	term := arabic.FoldForSearch(filter.Search)
	out := make([]models.UserView, 0, len(users))
	for _, u := range users {
		if filter.Sector != "" && u.Sector != filter.Sector {
			continue
		}
		if term != "" && !strings.Contains(arabic.FoldForSearch(u.FullName), term) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// CreateUser validates and forwards a new user.
func (s *AdministrationService) CreateUser(ctx context.Context, req CreateUserRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Username = strings.TrimSpace(req.Username)
	req.Sector = strings.TrimSpace(req.Sector)
	if err := s.validator.Struct(req); err != nil {
		return createValidationError(err)
	}
	payload := repository.UserPayload{
		FullName: req.FullName,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Sector:   req.Sector,
	}
	if err := s.repo.CreateUser(ctx, payload); err != nil {
		s.logger.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return adminFailure(err, msgCreateUser)
	}
	s.logger.Info("user created", zap.String("username", req.Username))
	return nil
}

// UpdateUser validates and forwards a user edit.
func (s *AdministrationService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, msgEditIncomplete)
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Username = strings.TrimSpace(req.Username)
	req.Sector = strings.TrimSpace(req.Sector)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgEditIncomplete)
	}
	payload := repository.UserPayload{
		FullName: req.FullName,
		Username: req.Username,
		Role:     req.Role,
		Sector:   req.Sector,
		Status:   req.Status,
	}
	if err := s.repo.UpdateUser(ctx, id, payload); err != nil {
		s.logger.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return adminFailure(err, msgUpdateUser)
	}
	return nil
}

// ToggleStatus flips a user between active and inactive and returns the new
// status.
func (s *AdministrationService) ToggleStatus(ctx context.Context, id string) (models.UserStatus, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return "", adminFailure(err, msgLoadUsers)
	}
	var current *models.User
	for i := range users {
		if users[i].ID == id {
			current = &users[i]
			break
		}
	}
	if id == "" || current == nil {
		return "", appErrors.Clone(appErrors.ErrNotFound, msgUserNotFound)
	}
	next := current.Status.Toggle()
	if err := s.repo.UpdateUserStatus(ctx, id, next); err != nil {
		s.logger.Error("failed to update user status", zap.String("user_id", id), zap.Error(err))
		return "", adminFailure(err, msgUpdateStatus)
	}
	return next, nil
}

// DeleteUser removes a user.
func (s *AdministrationService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrNotFound, msgUserNotFound)
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		s.logger.Error("failed to delete user", zap.String("user_id", id), zap.Error(err))
		return adminFailure(err, msgDeleteUser)
	}
	return nil
}

// ListSectors returns the named sectors.
func (s *AdministrationService) ListSectors(ctx context.Context) ([]models.Sector, error) {
	sectors, err := s.repo.ListSectors(ctx)
	if err != nil {
		s.logger.Error("failed to load sectors", zap.Error(err))
		return nil, adminFailure(err, msgLoadSectors)
	}
	return NormalizeSectors(sectors), nil
}

// CreateSector adds a sector.
func (s *AdministrationService) CreateSector(ctx context.Context, req SectorRequest) error {
	name, err := s.sectorName(req)
	if err != nil {
		return err
	}
	if err := s.repo.CreateSector(ctx, name); err != nil {
		s.logger.Error("failed to create sector", zap.Error(err))
		return adminFailure(err, msgCreateSector)
	}
	return nil
}

// UpdateSector renames a sector and returns the reloaded screen, since user
// rows display sector names.
func (s *AdministrationService) UpdateSector(ctx context.Context, id string, req SectorRequest, filter models.UserFilter) (*AdministrationView, error) {
	name, err := s.sectorName(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSector(ctx, id, name); err != nil {
		s.logger.Error("failed to update sector", zap.String("sector_id", id), zap.Error(err))
		return nil, adminFailure(err, msgUpdateSector)
	}
	return s.Load(ctx, filter)
}

// DeleteSector removes a sector and returns the reloaded screen.
func (s *AdministrationService) DeleteSector(ctx context.Context, id string, filter models.UserFilter) (*AdministrationView, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "القطاع غير موجود")
	}
	if err := s.repo.DeleteSector(ctx, id); err != nil {
		s.logger.Error("failed to delete sector", zap.String("sector_id", id), zap.Error(err))
		return nil, adminFailure(err, msgDeleteSector)
	}
	return s.Load(ctx, filter)
}

func (s *AdministrationService) sectorName(req SectorRequest) (string, error) {
	req.Sector = strings.TrimSpace(req.Sector)
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgSectorRequired)
	}
	return req.Sector, nil
}

func createValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if msg, ok := createFieldMessages[fe.StructField()][fe.Tag()]; ok {
				if fe.Tag() == strongPasswordTag {
					msg += ": " + msgPasswordPolicy
				}
				return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msg)
			}
		}
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid create user payload")
}

// adminFailure keeps the status of err and titles it with the screen's
// message, appending the backend's own wording when it sent one.
func adminFailure(err error, title string) error {
	msg := title
	if detail, ok := httpclient.StructuredMessage(err); ok {
		msg = title + ": " + detail
	} else if errors.Is(err, appErrors.ErrBusiness) {
		if detail := appErrors.Message(err, ""); detail != "" && detail != title {
			msg = title + ": " + detail
		}
	}
	return appErrors.Clone(appErrors.FromError(err), msg)
}
