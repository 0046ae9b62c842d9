package api

import (
	"time"

	"bilemo-backend/internal/model"
	"bilemo-backend/internal/pagination"
)

// The view structs below replace serialization groups: one struct per
// response shape, with explicit mapping from entities. The cache stores
// the marshaled form of these, so any shape change must be paired with a
// cache flush (restart).

// listEnvelope wraps paginated results.
type listEnvelope struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}

func newListEnvelope(p pagination.Pagination, items any, total int64) listEnvelope {
	return listEnvelope{Page: p.Page, PageSize: p.PageSize, Items: items, TotalCount: total}
}

type brandIndexView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DeviceCount int64  `json:"deviceCount"`
}

type brandShowView struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	DeviceCount int               `json:"deviceCount"`
	Devices     []brandDeviceView `json:"devices"`
}

// brandDeviceView is the compact device shape used inside brand responses.
type brandDeviceView struct {
	ID    int64  `json:"id"`
	Model string `json:"model"`
	Type  string `json:"type"`
}

type brandRefView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type deviceIndexView struct {
	ID    int64        `json:"id"`
	Brand brandRefView `json:"brand"`
	Model string       `json:"model"`
	Type  string       `json:"type"`
}

type deviceShowView struct {
	ID          int64        `json:"id"`
	Brand       brandRefView `json:"brand"`
	Model       string       `json:"model"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type userIndexView struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

type customerRefView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userShowView struct {
	ID       int64           `json:"id"`
	Email    string          `json:"email"`
	Fullname string          `json:"fullname"`
	Customer customerRefView `json:"customer"`
}

func newBrandIndexViews(brands []model.Brand, deviceCounts map[int64]int64) []brandIndexView {
	views := make([]brandIndexView, 0, len(brands))
	for _, b := range brands {
		views = append(views, brandIndexView{
			ID:          b.ID,
			Name:        b.Name,
			DeviceCount: deviceCounts[b.ID],
		})
	}
	return views
}

func newBrandShowView(brand *model.Brand) brandShowView {
	devices := make([]brandDeviceView, 0, len(brand.Devices))
	for _, d := range brand.Devices {
		devices = append(devices, newBrandDeviceView(d))
	}
	return brandShowView{
		ID:          brand.ID,
		Name:        brand.Name,
		DeviceCount: len(brand.Devices),
		Devices:     devices,
	}
}

func newBrandDeviceView(d model.Device) brandDeviceView {
	return brandDeviceView{ID: d.ID, Model: d.Model, Type: d.Type}
}

func newBrandDeviceViews(devices []model.Device) []brandDeviceView {
	views := make([]brandDeviceView, 0, len(devices))
	for _, d := range devices {
		views = append(views, newBrandDeviceView(d))
	}
	return views
}

func newDeviceIndexViews(devices []model.Device) []deviceIndexView {
	views := make([]deviceIndexView, 0, len(devices))
	for _, d := range devices {
		views = append(views, deviceIndexView{
			ID:    d.ID,
			Brand: brandRefView{ID: d.Brand.ID, Name: d.Brand.Name},
			Model: d.Model,
			Type:  d.Type,
		})
	}
	return views
}

func newDeviceShowView(d *model.Device) deviceShowView {
	return deviceShowView{
		ID:          d.ID,
		Brand:       brandRefView{ID: d.Brand.ID, Name: d.Brand.Name},
		Model:       d.Model,
		Type:        d.Type,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

func newUserIndexViews(users []model.User) []userIndexView {
	views := make([]userIndexView, 0, len(users))
	for _, u := range users {
		views = append(views, userIndexView{ID: u.ID, Email: u.Email, Fullname: u.Fullname})
	}
	return views
}

func newUserShowView(u *model.User) userShowView {
	return userShowView{
		ID:       u.ID,
		Email:    u.Email,
		Fullname: u.Fullname,
		Customer: customerRefView{ID: u.Customer.ID, Name: u.Customer.Name},
	}
}
