package service

import (
	"context"

	"cert-portfolio/internal/domain"
	"cert-portfolio/internal/repository"
)

// UserSummary is a user with totals recomputed from their certificates.
type UserSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	JoinDate          string  `json:"joinDate"`
	Location          string  `json:"location,omitempty"`
	ProfileImage      string  `json:"profileImage,omitempty"`
	TotalCertificates int     `json:"totalCertificates"`
	TotalHours        float64 `json:"totalHours"`
}

// UserProfile is the full public profile of a user.
type UserProfile struct {
	UserSummary
	Bio         string            `json:"bio,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
}

// UserService describes read access to portfolio owners.
type UserService interface {
	ListUsers(ctx context.Context) ([]UserSummary, error)
	GetUser(ctx context.Context, userID string) (*UserProfile, error)
}

type userService struct {
	reader datasetReader
}

func NewUserService(dataset repository.DatasetProvider) UserService {
	return &userService{reader: newDatasetReader(dataset, nil)}
}

func (s *userService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	ds, err := s.reader.load(ctx)
	if err != nil {
		return nil, err
	}

	users := ds.Users()
	out := make([]UserSummary, len(users))
	for i := range users {
		out[i] = summarize(&users[i])
	}
	return out, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*UserProfile, error) {
	user, err := s.reader.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserProfile{
		UserSummary: summarize(user),
		Bio:         user.Bio,
		SocialLinks: user.SocialLinks,
	}, nil
}

// summarize ignores the dataset's denormalized counters in favour of the
// certificate collection itself.
func summarize(user *domain.User) UserSummary {
	var hours float64
	for _, c := range user.Certificates {
		hours += c.Hours
	}
	return UserSummary{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		JoinDate:          user.JoinDate,
		Location:          user.Location,
		ProfileImage:      user.ProfileImage,
		TotalCertificates: len(user.Certificates),
		TotalHours:        hours,
	}
}
