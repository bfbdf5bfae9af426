package post

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateRequest is the draft of a new post. Fields the client may omit are
// pointers so "absent" and "zero" stay distinguishable; validation runs
// before any domain object is constructed.
type CreateRequest struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author,omitempty"`
	Likes  *int   `json:"likes,omitempty"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title missing: title and url are mandatory fields"),
		),
		validation.Field(&r.URL,
			validation.Required.Error("url missing: title and url are mandatory fields"),
		),
		validation.Field(&r.Likes,
			validation.Min(0).Error("likes must not be negative"),
		),
	)
}

// LikesOrDefault applies the documented default: an omitted like count is 0.
func (r CreateRequest) LikesOrDefault() int {
	if r.Likes == nil {
		return 0
	}
	return *r.Likes
}

// UpdateRequest patches title/url/author/likes only; the owner reference is
// not patchable. Nil fields are left unchanged.
type UpdateRequest struct {
	Title  *string `json:"title,omitempty"`
	URL    *string `json:"url,omitempty"`
	Author *string `json:"author,omitempty"`
	Likes  *int    `json:"likes,omitempty"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Required.Error("title must not be empty")),
		),
		validation.Field(&r.URL,
			validation.When(r.URL != nil, validation.Required.Error("url must not be empty")),
		),
		validation.Field(&r.Likes,
			validation.Min(0).Error("likes must not be negative"),
		),
	)
}
