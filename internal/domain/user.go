package domain

// User represents a portfolio owner as stored in the dataset.
//
// TotalCertificates and TotalHours are denormalized counters copied from the
// dataset; they are advisory only and are recomputed from Certificates
// wherever the API reports totals.
type User struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	JoinDate          string            `json:"joinDate"`
	Bio               string            `json:"bio,omitempty"`
	Location          string            `json:"location,omitempty"`
	ProfileImage      string            `json:"profileImage,omitempty"`
	SocialLinks       map[string]string `json:"socialLinks,omitempty"`
	TotalCertificates int               `json:"totalCertificates"`
	TotalHours        float64           `json:"totalHours"`
	Certificates      []Certificate     `json:"certificates"`
}
