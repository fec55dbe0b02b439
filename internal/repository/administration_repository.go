package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/pkg/httpclient"
)

// AdministrationRepository proxies user and sector management to the backend.
type AdministrationRepository struct {
	client httpclient.Client
}

// NewAdministrationRepository creates a new instance of AdministrationRepository.
func NewAdministrationRepository(client httpclient.Client) *AdministrationRepository {
	return &AdministrationRepository{client: client}
}

// UserPayload is the body sent when creating or updating a user.
type UserPayload struct {
	FullName string            `json:"fullname"`
	Username string            `json:"username"`
	Password string            `json:"password,omitempty"`
	Role     models.UserRole   `json:"role"`
	Sector   string            `json:"sector"`
	Status   models.UserStatus `json:"status,omitempty"`
}

// ListUsers returns every user. The backend may reply with a bare array, {data} or {users}.
func (r *AdministrationRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, httpclient.Request{Route: routeUsers, Path: routeUsers}, &raw); err != nil {
		return nil, err
	}
	users := make([]models.User, 0)
	if err := unwrapList(raw, &users, "data", "users"); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser adds a user.
func (r *AdministrationRepository) CreateUser(ctx context.Context, payload UserPayload) error {
	return r.mutate(ctx, httpclient.Request{Method: http.MethodPost, Route: routeUsers, Path: routeUsers, Body: payload}, "خطأ أثناء الإضافة")
}

// UpdateUser replaces a user's editable fields.
func (r *AdministrationRepository) UpdateUser(ctx context.Context, id string, payload UserPayload) error {
	return r.mutate(ctx, httpclient.Request{Method: http.MethodPut, Route: routeUser, Path: userPath(id), Body: payload}, "خطأ أثناء تعديل المستخدم")
}

// UpdateUserStatus sets a user's account status.
func (r *AdministrationRepository) UpdateUserStatus(ctx context.Context, id string, status models.UserStatus) error {
	return r.mutate(ctx, httpclient.Request{
		Method: http.MethodPatch,
		Route:  routeUserStatus,
		Path:   userPath(id) + "/status",
		Body:   map[string]models.UserStatus{"status": status},
	}, "خطأ في تحديث الحالة")
}

// DeleteUser removes a user.
func (r *AdministrationRepository) DeleteUser(ctx context.Context, id string) error {
	return r.mutate(ctx, httpclient.Request{Method: http.MethodDelete, Route: routeUser, Path: userPath(id)}, "خطأ أثناء الحذف")
}

// ListSectors returns every sector, bare or under {data}.
func (r *AdministrationRepository) ListSectors(ctx context.Context) ([]models.Sector, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, httpclient.Request{Route: routeSectors, Path: routeSectors}, &raw); err != nil {
		return nil, err
	}
	sectors := make([]models.Sector, 0)
	if err := unwrapList(raw, &sectors, "data", "sectors"); err != nil {
		return nil, err
	}
	return sectors, nil
}

// CreateSector adds a sector.
func (r *AdministrationRepository) CreateSector(ctx context.Context, name string) error {
	return r.mutate(ctx, httpclient.Request{Method: http.MethodPost, Route: routeSectors, Path: routeSectors, Body: models.Sector{Sector: name}}, "خطأ أثناء إضافة القطاع")
}

// UpdateSector renames a sector.
func (r *AdministrationRepository) UpdateSector(ctx context.Context, id, name string) error {
	return r.mutate(ctx, httpclient.Request{Method: http.MethodPut, Route: routeSector, Path: sectorPath(id), Body: map[string]string{"sector": name}}, "خطأ في تعديل القطاع")
}

// DeleteSector removes a sector.
func (r *AdministrationRepository) DeleteSector(ctx context.Context, id string) error {
	return r.mutate(ctx, httpclient.Request{Method: http.MethodDelete, Route: routeSector, Path: sectorPath(id)}, "خطأ في الحذف")
}

func (r *AdministrationRepository) mutate(ctx context.Context, req httpclient.Request, fallback string) error {
	var raw json.RawMessage
	if err := r.client.Do(ctx, req, &raw); err != nil {
		return err
	}
	return businessError(decodeEnvelope(raw), fallback)
}

func userPath(id string) string {
	return routeUsers + "/" + url.PathEscape(id)
}

func sectorPath(id string) string {
	return routeSectors + "/" + url.PathEscape(id)
}
